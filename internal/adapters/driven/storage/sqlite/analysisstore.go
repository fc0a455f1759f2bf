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

// analysisStore implements driven.AnalysisStore. Part results are
// serialized to JSON; rows are written once and never updated with
// different content, so racing writers may safely upsert.
type analysisStore struct {
	store *Store
}

var _ driven.AnalysisStore = (*analysisStore)(nil)

// Load retrieves the result for one (revision, query text) key.
func (s *analysisStore) Load(ctx context.Context, ref domain.DocumentVersionReference, queryText string) (*domain.AnalysisResult, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT parts, created_at
		FROM analysis_results
		WHERE document_id = ? AND version = ? AND query_text = ?
	`, ref.DocumentID, ref.Version, queryText)

	var partsJSON, createdAt string
	if err := row.Scan(&partsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning analysis result: %w", err)
	}

	result := &domain.AnalysisResult{
		Ref:   ref,
		Query: queryText,
	}
	if err := json.Unmarshal([]byte(partsJSON), &result.Parts); err != nil {
		return nil, fmt.Errorf("decoding analysis parts: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		result.CreatedAt = t
	}
	return result, nil
}

// Save persists a result. Safe to repeat for the same key.
func (s *analysisStore) Save(ctx context.Context, result *domain.AnalysisResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	partsJSON, err := json.Marshal(result.Parts)
	if err != nil {
		return fmt.Errorf("encoding analysis parts: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO analysis_results (document_id, version, query_text, parts, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(document_id, version, query_text) DO NOTHING
	`, result.Ref.DocumentID, result.Ref.Version, result.Query,
		string(partsJSON), result.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving analysis result: %w", err)
	}
	return nil
}
