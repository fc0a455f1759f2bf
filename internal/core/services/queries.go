package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/match"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryManager = (*QueryService)(nil)

// QueryService manages words queries with an in-memory read cache in
// front of the store. The cache is invalidated synchronously on every
// mutation by the owning user; reads elsewhere may briefly serve stale
// entries, which only delays (never corrupts) notification decisions.
type QueryService struct {
	store driven.QueryStore

	mu      sync.RWMutex
	perUser map[string][]domain.WordsQuery
	users   []string
	usersOK bool
}

// NewQueryService creates a query manager over the given store.
func NewQueryService(store driven.QueryStore) *QueryService {
	return &QueryService{
		store:   store,
		perUser: make(map[string][]domain.WordsQuery),
	}
}

// Add validates, compiles and stores a new query. Compilation errors
// surface synchronously so a user never saves a query that would be
// silently skipped at analysis time.
func (s *QueryService) Add(ctx context.Context, owner, text string) (*domain.WordsQuery, error) {
	query := domain.WordsQuery{Text: text, Owner: owner}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := match.Compile(text); err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", text, err)
	}

	if err := s.store.AddQuery(ctx, &query); err != nil {
		return nil, err
	}

	s.invalidate(owner)
	return &query, nil
}

// Remove deletes a query by owner and text.
func (s *QueryService) Remove(ctx context.Context, owner, text string) error {
	if err := s.store.RemoveQuery(ctx, owner, text); err != nil {
		return err
	}
	s.invalidate(owner)
	return nil
}

// List returns the user's queries, served from cache when warm.
func (s *QueryService) List(ctx context.Context, owner string) ([]domain.WordsQuery, error) {
	s.mu.RLock()
	cached, ok := s.perUser[owner]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	queries, err := s.store.QueriesForUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.perUser[owner] = queries
	s.mu.Unlock()
	return queries, nil
}

// Users returns every user owning at least one query.
func (s *QueryService) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	if s.usersOK {
		users := s.users
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	users, err := s.store.UsersWithQueries(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = users
	s.usersOK = true
	s.mu.Unlock()
	return users, nil
}

// invalidate drops the owner's cached queries and the user list.
func (s *QueryService) invalidate(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.perUser, owner)
	s.users = nil
	s.usersOK = false
}
