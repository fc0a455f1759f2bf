package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// queryStore implements driven.QueryStore.
type queryStore struct {
	store *Store
}

var _ driven.QueryStore = (*queryStore)(nil)

// AddQuery stores a new query, assigning its ID and creation time.
func (s *queryStore) AddQuery(ctx context.Context, query *domain.WordsQuery) error {
	if query == nil {
		return domain.ErrInvalidInput
	}

	var exists int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM words_queries WHERE owner = ? AND text = ?",
		query.Owner, query.Text)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("checking for existing query: %w", err)
	}
	if exists > 0 {
		return domain.ErrAlreadyExists
	}

	query.ID = uuid.New().String()
	query.CreatedAt = time.Now().UTC()

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO words_queries (id, owner, text, created_at)
		VALUES (?, ?, ?, ?)
	`, query.ID, query.Owner, query.Text, query.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting query: %w", err)
	}
	return nil
}

// RemoveQuery deletes a query by owner and text.
func (s *queryStore) RemoveQuery(ctx context.Context, owner, text string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM words_queries WHERE owner = ? AND text = ?", owner, text)
	if err != nil {
		return fmt.Errorf("deleting query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// QueriesForUser returns all queries owned by the user, oldest first.
func (s *queryStore) QueriesForUser(ctx context.Context, owner string) ([]domain.WordsQuery, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner, text, created_at
		FROM words_queries
		WHERE owner = ?
		ORDER BY created_at, id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("querying words queries: %w", err)
	}
	defer rows.Close()

	var queries []domain.WordsQuery //nolint:prealloc // size unknown from query
	for rows.Next() {
		var q domain.WordsQuery
		var createdAt string
		if err := rows.Scan(&q.ID, &q.Owner, &q.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning words query: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			q.CreatedAt = t
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating words queries: %w", err)
	}
	return queries, nil
}

// UsersWithQueries returns every user owning at least one query, sorted.
func (s *queryStore) UsersWithQueries(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT DISTINCT owner FROM words_queries ORDER BY owner")
	if err != nil {
		return nil, fmt.Errorf("querying query owners: %w", err)
	}
	defer rows.Close()

	var users []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scanning query owner: %w", err)
		}
		users = append(users, owner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query owners: %w", err)
	}
	return users, nil
}
