package driven

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// TaskStore persists the pending watch tasks. The sequence number
// assigned on enqueue gives the FIFO order the change detector relies
// on: revisions of one document are always processed oldest first.
type TaskStore interface {
	// EnqueueTask appends a pending task and assigns its sequence.
	EnqueueTask(ctx context.Context, task *domain.WatchTask) error

	// NextTask returns the pending task with the lowest sequence,
	// or domain.ErrNotFound when the queue is empty.
	NextTask(ctx context.Context) (*domain.WatchTask, error)

	// CompleteTask removes a finished task.
	CompleteTask(ctx context.Context, seq int64) error

	// FailTask records a processing failure. Tasks under the retry
	// limit stay pending; exhausted tasks are marked failed and no
	// longer returned by NextTask.
	FailTask(ctx context.Context, seq int64, attempts int, lastError string, exhausted bool) error
}
