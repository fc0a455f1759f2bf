package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
)

// ConsoleSink renders notifications as human-readable lines.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

var _ driven.NotificationSink = (*ConsoleSink)(nil)

// NewConsoleSink creates a sink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

// Notify writes one line per event.
func (s *ConsoleSink) Notify(_ context.Context, n *domain.Notification) error {
	if n == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.out, FormatLine(n))
	if err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// FormatLine renders one notification the way the console sink prints
// it. Shared with the CLI notification listing.
func FormatLine(n *domain.Notification) string {
	var b strings.Builder

	switch {
	case n.IsNew:
		fmt.Fprintf(&b, "[mention] %q appears %d time(s) in new document %s",
			n.QueryText, n.NewOccurrences, n.Document.DocumentID)
	case n.Kind == domain.NotificationMention:
		fmt.Fprintf(&b, "[mention] %q went from %d to %d occurrence(s) in %s",
			n.QueryText, n.OldOccurrences, n.NewOccurrences, n.Document.String())
	default:
		fmt.Fprintf(&b, "[removal] %q went from %d to %d occurrence(s) in %s",
			n.QueryText, n.OldOccurrences, n.NewOccurrences, n.Document.String())
	}

	if n.Author != "" {
		fmt.Fprintf(&b, " (edited by %s)", n.Author)
	}
	if len(n.Targets) > 0 {
		fmt.Fprintf(&b, " -> %s", strings.Join(n.Targets, ", "))
	}
	return b.String()
}
