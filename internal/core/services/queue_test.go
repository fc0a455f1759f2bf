package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// recordingWatcher implements driving.ChangeWatcher and records the
// order revisions were processed in.
type recordingWatcher struct {
	mu        sync.Mutex
	processed []domain.DocumentVersionReference
	attempts  int
	failUntil map[string]int // ref string -> remaining failures
}

func newRecordingWatcher() *recordingWatcher {
	return &recordingWatcher{failUntil: make(map[string]int)}
}

func (w *recordingWatcher) ProcessRevision(_ context.Context, documentID, version string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.attempts++
	ref := domain.DocumentVersionReference{DocumentID: documentID, Version: version}
	if w.failUntil[ref.String()] > 0 {
		w.failUntil[ref.String()]--
		return errors.New("transient failure")
	}
	w.processed = append(w.processed, ref)
	return nil
}

func (w *recordingWatcher) refs() []domain.DocumentVersionReference {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.DocumentVersionReference, len(w.processed))
	copy(out, w.processed)
	return out
}

func (w *recordingWatcher) calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempts
}

func startQueue(t *testing.T, q *Queue) {
	t.Helper()
	go func() {
		_ = q.Start(context.Background())
	}()
	t.Cleanup(q.Stop)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not reached in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// TestQueue_ProcessesInOrder tests FIFO consumption per document.
func TestQueue_ProcessesInOrder(t *testing.T) {
	store := memory.NewTaskStore()
	watcher := newRecordingWatcher()
	q := NewQueue(store, watcher, 10*time.Millisecond, 0)

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, "doc.md", "1"))
	require.NoError(t, q.Enqueue(ctx, "doc.md", "2"))
	require.NoError(t, q.Enqueue(ctx, "doc.md", "3"))

	startQueue(t, q)
	waitFor(t, func() bool { return len(watcher.refs()) == 3 })

	refs := watcher.refs()
	assert.Equal(t, "1", refs[0].Version)
	assert.Equal(t, "2", refs[1].Version)
	assert.Equal(t, "3", refs[2].Version)
	assert.Equal(t, 0, store.Pending())
}

// TestQueue_RetriesTransientFailures tests retry up to the limit.
func TestQueue_RetriesTransientFailures(t *testing.T) {
	store := memory.NewTaskStore()
	watcher := newRecordingWatcher()
	watcher.failUntil["doc.md@1"] = 2 // fails twice, succeeds third time

	q := NewQueue(store, watcher, 10*time.Millisecond, 5)
	require.NoError(t, q.Enqueue(context.Background(), "doc.md", "1"))

	startQueue(t, q)
	waitFor(t, func() bool { return len(watcher.refs()) == 1 })
	assert.Equal(t, 0, store.Pending())
}

// TestQueue_ExhaustedTaskStopsBlockingQueue tests that a permanently
// failing task is parked and later tasks still run.
func TestQueue_ExhaustedTaskStopsBlockingQueue(t *testing.T) {
	store := memory.NewTaskStore()
	watcher := newRecordingWatcher()
	watcher.failUntil["bad.md@1"] = 100

	q := NewQueue(store, watcher, 10*time.Millisecond, 2)
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, "bad.md", "1"))
	require.NoError(t, q.Enqueue(ctx, "good.md", "1"))

	startQueue(t, q)
	waitFor(t, func() bool { return len(watcher.refs()) == 1 })

	assert.Equal(t, "good.md", watcher.refs()[0].DocumentID)
	assert.Equal(t, 0, store.Pending())
}

// TestQueue_FailedTaskWaitsForNextPass tests that a task failing with
// attempts left ends the drain pass instead of being refetched
// immediately, so retries are spaced by the poll interval.
func TestQueue_FailedTaskWaitsForNextPass(t *testing.T) {
	store := memory.NewTaskStore()
	watcher := newRecordingWatcher()
	watcher.failUntil["doc.md@1"] = 1

	q := NewQueue(store, watcher, time.Hour, 5)
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, "doc.md", "1"))

	// One pass: the task fails once and stays pending, untouched again.
	q.drain(ctx)
	assert.Equal(t, 1, watcher.calls())
	assert.Equal(t, 1, store.Pending())

	// The next pass retries the failed task first, then the new one.
	require.NoError(t, q.Enqueue(ctx, "other.md", "1"))
	q.drain(ctx)
	require.Len(t, watcher.refs(), 2)
	assert.Equal(t, "doc.md", watcher.refs()[0].DocumentID)
	assert.Equal(t, "other.md", watcher.refs()[1].DocumentID)
	assert.Equal(t, 0, store.Pending())
}

// TestQueue_EnqueueWakesConsumer tests the wake path (no tick wait).
func TestQueue_EnqueueWakesConsumer(t *testing.T) {
	store := memory.NewTaskStore()
	watcher := newRecordingWatcher()
	// Long poll interval: only the wake signal can explain fast delivery.
	q := NewQueue(store, watcher, time.Hour, 0)

	startQueue(t, q)
	require.NoError(t, q.Enqueue(context.Background(), "doc.md", "1"))

	waitFor(t, func() bool { return len(watcher.refs()) == 1 })
}
