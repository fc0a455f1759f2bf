package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// Ensure QueryStore implements the interface.
var _ driven.QueryStore = (*QueryStore)(nil)

// QueryStore is an in-memory implementation of driven.QueryStore.
type QueryStore struct {
	mu      sync.RWMutex
	queries map[string][]domain.WordsQuery // owner -> queries
}

// NewQueryStore creates a new in-memory query store.
func NewQueryStore() *QueryStore {
	return &QueryStore{
		queries: make(map[string][]domain.WordsQuery),
	}
}

// AddQuery stores a new query, assigning ID and creation time.
func (s *QueryStore) AddQuery(_ context.Context, query *domain.WordsQuery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.queries[query.Owner] {
		if existing.Text == query.Text {
			return domain.ErrAlreadyExists
		}
	}

	query.ID = uuid.New().String()
	query.CreatedAt = time.Now()
	s.queries[query.Owner] = append(s.queries[query.Owner], *query)
	return nil
}

// RemoveQuery deletes a query by owner and text.
func (s *QueryStore) RemoveQuery(_ context.Context, owner, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	queries := s.queries[owner]
	for i, existing := range queries {
		if existing.Text == text {
			s.queries[owner] = append(queries[:i:i], queries[i+1:]...)
			if len(s.queries[owner]) == 0 {
				delete(s.queries, owner)
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// QueriesForUser returns all queries owned by the user.
func (s *QueryStore) QueriesForUser(_ context.Context, owner string) ([]domain.WordsQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queries := make([]domain.WordsQuery, len(s.queries[owner]))
	copy(queries, s.queries[owner])
	return queries, nil
}

// UsersWithQueries returns every user owning at least one query.
func (s *QueryStore) UsersWithQueries(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.queries))
	for owner := range s.queries {
		users = append(users, owner)
	}
	sort.Strings(users)
	return users, nil
}
