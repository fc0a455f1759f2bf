package domain

import (
	"strings"
	"time"
)

// WordsQuery is one saved watch expression for one user.
// Equality is by value: two queries are the same watch if both
// text and owner match.
type WordsQuery struct {
	// ID is the unique identifier assigned at creation.
	ID string

	// Text is the watched word or phrase. Supports `*` and `?`
	// wildcards and `\` escapes.
	Text string

	// Owner is the user the query belongs to.
	Owner string

	// CreatedAt is when the query was stored.
	CreatedAt time.Time
}

// Validate checks that the query is well formed.
func (q WordsQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuery
	}
	if q.Owner == "" {
		return ErrInvalidInput
	}
	return nil
}

// Same reports whether two queries denote the same watch,
// ignoring ID and creation time.
func (q WordsQuery) Same(other WordsQuery) bool {
	return q.Text == other.Text && q.Owner == other.Owner
}
