package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// DefaultPollInterval is how often the queue checks for pending tasks.
const DefaultPollInterval = 500 * time.Millisecond

// DefaultMaxAttempts is how many times a task is tried before it is
// marked failed.
const DefaultMaxAttempts = 3

// Queue consumes persisted watch tasks in sequence order and hands
// them to the change watcher. Strict FIFO consumption is what keeps
// revisions of a single document evaluated in order, which the change
// detector's previous-revision comparison depends on. Task processing
// is idempotent (the analysis store absorbs recomputation), so retries
// after a crash or failure are harmless.
type Queue struct {
	store        driven.TaskStore
	watcher      driving.ChangeWatcher
	pollInterval time.Duration
	maxAttempts  int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// wake lets Enqueue nudge the run loop without waiting a tick.
	wake chan struct{}
}

// NewQueue creates a task queue. Zero pollInterval and maxAttempts
// select the defaults.
func NewQueue(store driven.TaskStore, watcher driving.ChangeWatcher, pollInterval time.Duration, maxAttempts int) *Queue {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Queue{
		store:        store,
		watcher:      watcher,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		wake:         make(chan struct{}, 1),
	}
}

// Enqueue persists a task for one (document, revision) pair.
func (q *Queue) Enqueue(ctx context.Context, documentID, version string) error {
	task := &domain.WatchTask{
		Document:   domain.DocumentVersionReference{DocumentID: documentID, Version: version},
		EnqueuedAt: time.Now(),
		Status:     domain.TaskPending,
	}
	if err := q.store.EnqueueTask(ctx, task); err != nil {
		return err
	}

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Start begins the consumer loop. This method blocks until Stop is
// called or the context is cancelled.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return nil // Already running
	}
	q.running = true
	q.stopCh = make(chan struct{})
	q.mu.Unlock()

	q.wg.Add(1)
	defer q.wg.Done()

	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	// Drain anything left over from a previous run before waiting.
	q.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.stopCh:
			return nil
		case <-q.wake:
			q.drain(ctx)
		case <-ticker.C:
			q.drain(ctx)
		}
	}
}

// Stop shuts the consumer down and waits for the in-flight task.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	close(q.stopCh)
	q.mu.Unlock()

	q.wg.Wait()
}

// drain processes pending tasks until the store is empty or a task
// fails with attempts left. The failed task keeps the lowest sequence,
// so ending the pass defers its retry to the next tick or wake instead
// of burning the whole attempt budget back-to-back.
func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.stopCh:
			return
		default:
		}

		task, err := q.store.NextTask(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return
		}
		if err != nil {
			logger.Warn("queue: fetching next task: %v", err)
			return
		}

		if !q.process(ctx, task) {
			return
		}
	}
}

// process runs one task and records its outcome. It reports whether
// the drain pass should keep consuming.
func (q *Queue) process(ctx context.Context, task *domain.WatchTask) bool {
	err := q.watcher.ProcessRevision(ctx, task.Document.DocumentID, task.Document.Version)
	if err == nil {
		if err := q.store.CompleteTask(ctx, task.Seq); err != nil {
			logger.Warn("queue: completing task %d: %v", task.Seq, err)
		}
		return true
	}

	attempts := task.Attempts + 1
	exhausted := attempts >= q.maxAttempts
	if exhausted {
		logger.Error("queue: task %d for %s failed permanently after %d attempts: %v",
			task.Seq, task.Document, attempts, err)
	} else {
		logger.Debug("queue: task %d for %s failed (attempt %d), will retry: %v",
			task.Seq, task.Document, attempts, err)
	}

	if err := q.store.FailTask(ctx, task.Seq, attempts, err.Error(), exhausted); err != nil {
		logger.Warn("queue: recording task failure %d: %v", task.Seq, err)
	}

	// An exhausted task was parked as failed; anything after it may run.
	return exhausted
}
