package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// countingSink counts deliveries and optionally fails.
type countingSink struct {
	mu    sync.Mutex
	count int
	err   error
}

func (s *countingSink) Notify(_ context.Context, _ *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return s.err
}

func (s *countingSink) delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func mentionNotification() *domain.Notification {
	return &domain.Notification{
		Kind:           domain.NotificationMention,
		Targets:        []string{"alice"},
		QueryText:      "foo",
		Document:       domain.DocumentVersionReference{DocumentID: "doc.md", Version: "2"},
		Author:         "bob",
		OldOccurrences: 1,
		NewOccurrences: 3,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestConsoleSink_Notify(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	require.NoError(t, sink.Notify(context.Background(), mentionNotification()))

	out := buf.String()
	assert.Contains(t, out, "[mention]")
	assert.Contains(t, out, `"foo"`)
	assert.Contains(t, out, "doc.md@2")
	assert.Contains(t, out, "edited by bob")
	assert.Contains(t, out, "alice")
}

func TestFormatLine_Variants(t *testing.T) {
	n := mentionNotification()

	n.IsNew = true
	n.OldOccurrences = 0
	assert.Contains(t, FormatLine(n), "new document")

	n.IsNew = false
	n.OldOccurrences = 1
	n.Kind = domain.NotificationRemoval
	line := FormatLine(n)
	assert.Contains(t, line, "[removal]")
	assert.Contains(t, line, "from 1 to 3")
}

func TestRateLimitedSink_DelaysBeyondBurst(t *testing.T) {
	inner := &countingSink{}
	// 20/s with burst 2: the third delivery must wait ~50ms.
	sink := NewRateLimitedSink(inner, 20, 2)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Notify(ctx, mentionNotification()))
	}

	assert.Equal(t, 3, inner.delivered())
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRateLimitedSink_CancelledContext(t *testing.T) {
	inner := &countingSink{}
	sink := NewRateLimitedSink(inner, 0.001, 1)
	ctx := context.Background()

	require.NoError(t, sink.Notify(ctx, mentionNotification()))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := sink.Notify(cancelled, mentionNotification())
	assert.Error(t, err)
	assert.Equal(t, 1, inner.delivered())
}

func TestMultiSink_DeliversToAll(t *testing.T) {
	a := &countingSink{}
	b := &countingSink{}
	sink := NewMultiSink(a, b)

	require.NoError(t, sink.Notify(context.Background(), mentionNotification()))
	assert.Equal(t, 1, a.delivered())
	assert.Equal(t, 1, b.delivered())
}

func TestMultiSink_FailureDoesNotStopOthers(t *testing.T) {
	failing := &countingSink{err: errors.New("down")}
	ok := &countingSink{}
	sink := NewMultiSink(failing, ok)

	err := sink.Notify(context.Background(), mentionNotification())
	assert.Error(t, err)
	assert.Equal(t, 1, ok.delivered())
}
