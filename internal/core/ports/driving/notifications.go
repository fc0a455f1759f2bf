package driving

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// NotificationReader exposes recorded notifications to the CLI.
// Implemented by sinks that persist what they deliver.
type NotificationReader interface {
	// List returns notifications targeting the user, newest first.
	// An empty user returns all notifications.
	List(ctx context.Context, user string, limit int) ([]domain.Notification, error)
}
