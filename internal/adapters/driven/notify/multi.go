package notify

import (
	"context"
	"errors"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// MultiSink delivers each event to every wrapped sink. All sinks are
// attempted even when one fails; the errors are joined.
type MultiSink struct {
	sinks []driven.NotificationSink
}

var _ driven.NotificationSink = (*MultiSink)(nil)

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...driven.NotificationSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Notify fans the event out to all sinks.
func (s *MultiSink) Notify(ctx context.Context, n *domain.Notification) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
