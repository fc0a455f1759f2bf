package driven

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// NotificationSink receives mention/removal events. All downstream
// rendering and delivery is the sink's responsibility; the watcher
// treats delivery as best-effort and only logs sink failures.
type NotificationSink interface {
	// Notify delivers one event.
	Notify(ctx context.Context, n *domain.Notification) error
}
