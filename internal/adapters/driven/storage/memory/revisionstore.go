package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// Ensure RevisionStore implements the interface.
var _ driven.RevisionRecorder = (*RevisionStore)(nil)

// RevisionStore is an in-memory implementation of driven.RevisionRecorder.
type RevisionStore struct {
	mu        sync.RWMutex
	revisions map[string]domain.DocumentRevision
	heads     map[string]string
}

// NewRevisionStore creates a new in-memory revision store.
func NewRevisionStore() *RevisionStore {
	return &RevisionStore{
		revisions: make(map[string]domain.DocumentRevision),
		heads:     make(map[string]string),
	}
}

// GetRevision retrieves one exact revision of a document.
func (s *RevisionStore) GetRevision(_ context.Context, documentID, version string) (*domain.DocumentRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref := domain.DocumentVersionReference{DocumentID: documentID, Version: version}
	rev, ok := s.revisions[ref.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rev, nil
}

// LatestVersion returns the current head version of a document.
func (s *RevisionStore) LatestVersion(_ context.Context, documentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	head, ok := s.heads[documentID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return head, nil
}

// SaveRevision appends a new revision and moves the document head.
func (s *RevisionStore) SaveRevision(_ context.Context, rev *domain.DocumentRevision) error {
	if rev == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := rev.Ref.String()
	if _, ok := s.revisions[key]; ok {
		return domain.ErrAlreadyExists
	}
	s.revisions[key] = *rev
	s.heads[rev.Ref.DocumentID] = rev.Ref.Version
	return nil
}

// Len returns the number of stored revisions.
func (s *RevisionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revisions)
}
