package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
)

// NotificationStore persists delivered notifications so the CLI can
// list them later. It is both a sink (write side) and a reader.
type NotificationStore struct {
	store *Store
}

var _ driven.NotificationSink = (*NotificationStore)(nil)
var _ driving.NotificationReader = (*NotificationStore)(nil)

// Notify records one event, assigning its ID.
func (s *NotificationStore) Notify(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return domain.ErrInvalidInput
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	targets, err := json.Marshal(n.Targets)
	if err != nil {
		return fmt.Errorf("encoding notification targets: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO notifications
			(id, kind, targets, query_text, document_id, version, author,
			 is_new, old_occurrences, new_occurrences, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, string(n.Kind), string(targets), n.QueryText,
		n.Document.DocumentID, n.Document.Version, nullString(n.Author),
		boolToInt(n.IsNew), n.OldOccurrences, n.NewOccurrences,
		n.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving notification: %w", err)
	}
	return nil
}

// List returns notifications targeting the user, newest first.
// An empty user returns all notifications. Target filtering happens in
// Go: targets are a JSON array and the lists stay small.
func (s *NotificationStore) List(ctx context.Context, user string, limit int) ([]domain.Notification, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, targets, query_text, document_id, version, author,
		       is_new, old_occurrences, new_occurrences, created_at
		FROM notifications
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification //nolint:prealloc // size unknown from query
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		if user != "" && !targetsUser(n, user) {
			continue
		}
		notifications = append(notifications, *n)
		if limit > 0 && len(notifications) >= limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return notifications, nil
}

// scanNotification scans a notification from *sql.Rows.
func scanNotification(rows *sql.Rows) (*domain.Notification, error) {
	var n domain.Notification
	var kind, targets, createdAt string
	var author sql.NullString
	var isNew int

	if err := rows.Scan(&n.ID, &kind, &targets, &n.QueryText,
		&n.Document.DocumentID, &n.Document.Version, &author,
		&isNew, &n.OldOccurrences, &n.NewOccurrences, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning notification: %w", err)
	}

	n.Kind = domain.NotificationKind(kind)
	n.Author = author.String
	n.IsNew = isNew == 1
	if err := json.Unmarshal([]byte(targets), &n.Targets); err != nil {
		return nil, fmt.Errorf("decoding notification targets: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		n.CreatedAt = t
	}
	return &n, nil
}

// targetsUser reports whether the notification targets the given user.
func targetsUser(n *domain.Notification, user string) bool {
	for _, t := range n.Targets {
		if t == user {
			return true
		}
	}
	return false
}
