package domain

import "time"

// TaskStatus is the lifecycle state of a queued watch task.
type TaskStatus string

const (
	// TaskPending means the task awaits processing (or retry).
	TaskPending TaskStatus = "pending"

	// TaskFailed means the task exhausted its retries.
	TaskFailed TaskStatus = "failed"
)

// WatchTask is one queued unit of work: analyze one revision of one
// document and notify watchers. Tasks for a single document must be
// processed in enqueue order so each revision is compared against the
// immediately preceding one; the store's sequence number provides that
// order. Processing is idempotent (the analysis cache absorbs retries).
type WatchTask struct {
	// Seq is the store-assigned, monotonically increasing sequence.
	Seq int64

	// Document identifies the revision to process.
	Document DocumentVersionReference

	// EnqueuedAt is when the task was submitted.
	EnqueuedAt time.Time

	// Attempts counts processing attempts so far.
	Attempts int

	// Status is pending or failed.
	Status TaskStatus

	// LastError records the most recent processing failure.
	LastError string
}
