package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory implementation of driven.TaskStore.
type TaskStore struct {
	mu      sync.Mutex
	nextSeq int64
	tasks   []domain.WatchTask
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// EnqueueTask appends a pending task and assigns its sequence.
func (s *TaskStore) EnqueueTask(_ context.Context, task *domain.WatchTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	task.Seq = s.nextSeq
	s.tasks = append(s.tasks, *task)
	return nil
}

// NextTask returns the pending task with the lowest sequence.
func (s *TaskStore) NextTask(_ context.Context) (*domain.WatchTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].Status == domain.TaskPending {
			task := s.tasks[i]
			return &task, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CompleteTask removes a finished task.
func (s *TaskStore) CompleteTask(_ context.Context, seq int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].Seq == seq {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// FailTask records a processing failure.
func (s *TaskStore) FailTask(_ context.Context, seq int64, attempts int, lastError string, exhausted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].Seq == seq {
			s.tasks[i].Attempts = attempts
			s.tasks[i].LastError = lastError
			if exhausted {
				s.tasks[i].Status = domain.TaskFailed
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Pending returns the number of pending tasks.
func (s *TaskStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.tasks {
		if s.tasks[i].Status == domain.TaskPending {
			n++
		}
	}
	return n
}
