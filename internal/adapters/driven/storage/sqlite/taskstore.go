package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// taskStore implements driven.TaskStore. AUTOINCREMENT on seq gives the
// monotonically increasing order the queue relies on.
type taskStore struct {
	store *Store
}

var _ driven.TaskStore = (*taskStore)(nil)

// EnqueueTask appends a pending task and assigns its sequence.
func (s *taskStore) EnqueueTask(ctx context.Context, task *domain.WatchTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}
	task.Status = domain.TaskPending

	result, err := s.store.db.ExecContext(ctx, `
		INSERT INTO watch_tasks (document_id, version, enqueued_at, attempts, status)
		VALUES (?, ?, ?, 0, ?)
	`, task.Document.DocumentID, task.Document.Version,
		task.EnqueuedAt.Format(time.RFC3339), string(domain.TaskPending))
	if err != nil {
		return fmt.Errorf("enqueuing task: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task sequence: %w", err)
	}
	task.Seq = seq
	return nil
}

// NextTask returns the pending task with the lowest sequence.
func (s *taskStore) NextTask(ctx context.Context) (*domain.WatchTask, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT seq, document_id, version, enqueued_at, attempts, status, last_error
		FROM watch_tasks
		WHERE status = ?
		ORDER BY seq
		LIMIT 1
	`, string(domain.TaskPending))

	var task domain.WatchTask
	var enqueuedAt, status string
	var lastError sql.NullString
	if err := row.Scan(&task.Seq, &task.Document.DocumentID, &task.Document.Version,
		&enqueuedAt, &task.Attempts, &status, &lastError); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, enqueuedAt); err == nil {
		task.EnqueuedAt = t
	}
	task.Status = domain.TaskStatus(status)
	task.LastError = lastError.String
	return &task, nil
}

// CompleteTask removes a finished task.
func (s *taskStore) CompleteTask(ctx context.Context, seq int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM watch_tasks WHERE seq = ?", seq)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	return nil
}

// FailTask records a processing failure.
func (s *taskStore) FailTask(ctx context.Context, seq int64, attempts int, lastError string, exhausted bool) error {
	status := domain.TaskPending
	if exhausted {
		status = domain.TaskFailed
	}

	_, err := s.store.db.ExecContext(ctx, `
		UPDATE watch_tasks
		SET attempts = ?, status = ?, last_error = ?
		WHERE seq = ?
	`, attempts, string(status), nullString(lastError), seq)
	if err != nil {
		return fmt.Errorf("failing task: %w", err)
	}
	return nil
}
