package driving

import "context"

// ChangeWatcher is the single entry point of the watch pipeline,
// invoked once per recorded document revision by the task queue.
type ChangeWatcher interface {
	// ProcessRevision analyzes one revision for every authorized
	// watching user's queries and emits mention/removal notifications
	// where occurrence counts changed against the previous revision.
	// An error means no meaningful result could be computed at all and
	// the task is eligible for retry; partial failures degrade
	// gracefully and are only logged.
	ProcessRevision(ctx context.Context, documentID, version string) error
}
