package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// revisionStore implements driven.RevisionRecorder.
type revisionStore struct {
	store *Store
}

var _ driven.RevisionRecorder = (*revisionStore)(nil)

// GetRevision retrieves one exact revision of a document.
func (s *revisionStore) GetRevision(ctx context.Context, documentID, version string) (*domain.DocumentRevision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT previous_version, title, content, tags, comments, objects, author, created_at
		FROM document_revisions
		WHERE document_id = ? AND version = ?
	`, documentID, version)

	rev := &domain.DocumentRevision{
		Ref: domain.DocumentVersionReference{DocumentID: documentID, Version: version},
	}
	var previousVersion, tags, comments, objects, author sql.NullString
	var createdAt string
	if err := row.Scan(&previousVersion, &rev.Title, &rev.Content,
		&tags, &comments, &objects, &author, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning revision: %w", err)
	}

	rev.PreviousVersion = previousVersion.String
	rev.Author = author.String
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &rev.Tags); err != nil {
			return nil, fmt.Errorf("decoding revision tags: %w", err)
		}
	}
	if comments.Valid && comments.String != "" {
		if err := json.Unmarshal([]byte(comments.String), &rev.Comments); err != nil {
			return nil, fmt.Errorf("decoding revision comments: %w", err)
		}
	}
	if objects.Valid && objects.String != "" {
		if err := json.Unmarshal([]byte(objects.String), &rev.Objects); err != nil {
			return nil, fmt.Errorf("decoding revision objects: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rev.CreatedAt = t
	}
	return rev, nil
}

// LatestVersion returns the current head version of a document.
// Heads are found by insertion order: the newest row for the document.
func (s *revisionStore) LatestVersion(ctx context.Context, documentID string) (string, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT version
		FROM document_revisions
		WHERE document_id = ?
		ORDER BY rowid DESC
		LIMIT 1
	`, documentID)

	var version string
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("scanning latest version: %w", err)
	}
	return version, nil
}

// SaveRevision appends a new revision.
func (s *revisionStore) SaveRevision(ctx context.Context, rev *domain.DocumentRevision) error {
	if rev == nil {
		return domain.ErrInvalidInput
	}

	tags, err := marshalOrNil(rev.Tags, len(rev.Tags) == 0)
	if err != nil {
		return fmt.Errorf("encoding revision tags: %w", err)
	}
	comments, err := marshalOrNil(rev.Comments, len(rev.Comments) == 0)
	if err != nil {
		return fmt.Errorf("encoding revision comments: %w", err)
	}
	objects, err := marshalOrNil(rev.Objects, len(rev.Objects) == 0)
	if err != nil {
		return fmt.Errorf("encoding revision objects: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO document_revisions
			(document_id, version, previous_version, title, content, tags, comments, objects, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rev.Ref.DocumentID, rev.Ref.Version, nullString(rev.PreviousVersion),
		rev.Title, rev.Content, tags, comments, objects,
		nullString(rev.Author), rev.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving revision: %w", err)
	}
	return nil
}

// marshalOrNil JSON-encodes v, or returns nil when empty is true.
func marshalOrNil(v interface{}, empty bool) (interface{}, error) {
	if empty {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
