// Package memory provides in-memory implementations of the storage
// ports, used in tests and available as a zero-setup backend.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// Ensure AnalysisStore implements the interface.
var _ driven.AnalysisStore = (*AnalysisStore)(nil)

// AnalysisStore is an in-memory implementation of driven.AnalysisStore.
type AnalysisStore struct {
	mu      sync.RWMutex
	results map[string]*domain.AnalysisResult
}

// NewAnalysisStore creates a new in-memory analysis store.
func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{
		results: make(map[string]*domain.AnalysisResult),
	}
}

func analysisKey(ref domain.DocumentVersionReference, queryText string) string {
	return ref.String() + "\x00" + queryText
}

// Load retrieves a stored result.
func (s *AnalysisStore) Load(_ context.Context, ref domain.DocumentVersionReference, queryText string) (*domain.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[analysisKey(ref, queryText)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

// Save persists a result. Entries are write-once in practice; a
// racing duplicate simply overwrites with an equal value.
func (s *AnalysisStore) Save(_ context.Context, result *domain.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[analysisKey(result.Ref, result.Query)] = result
	return nil
}

// Len returns the number of stored results.
func (s *AnalysisStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
