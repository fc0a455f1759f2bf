package notify

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// DefaultRate is the sustained notification delivery rate.
// A bulk import touching hundreds of documents should trickle out
// instead of flooding whatever the wrapped sink delivers to.
const (
	DefaultRate  = 5.0
	DefaultBurst = 10
)

// RateLimitedSink wraps a sink with a token-bucket rate limiter.
type RateLimitedSink struct {
	next    driven.NotificationSink
	limiter *rate.Limiter
}

var _ driven.NotificationSink = (*RateLimitedSink)(nil)

// NewRateLimitedSink wraps next with a limiter of perSecond sustained
// events and the given burst. Non-positive values select the defaults.
func NewRateLimitedSink(next driven.NotificationSink, perSecond float64, burst int) *RateLimitedSink {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimitedSink{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Notify blocks until the limiter admits the event, then delivers it.
func (s *RateLimitedSink) Notify(ctx context.Context, n *domain.Notification) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for delivery slot: %w", err)
	}
	return s.next.Notify(ctx, n)
}
