package analyzers

import (
	"fmt"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// CommentsHint identifies the comments analyzer.
const CommentsHint = "comments"

// Comments scans the text of every comment. Each comment is its own
// element so localizations point at the individual comment.
type Comments struct{}

// NewComments creates the comments analyzer.
func NewComments() *Comments {
	return &Comments{}
}

// Hint returns the analyzer name.
func (a *Comments) Hint() string {
	return CommentsHint
}

// Extract returns one element per comment, anchored by comment index.
func (a *Comments) Extract(rev *domain.DocumentRevision) ([]Element, error) {
	elements := make([]Element, 0, len(rev.Comments))
	for i, comment := range rev.Comments {
		elements = append(elements, Element{
			Ref: domain.ElementReference{
				DocumentID: rev.Ref.DocumentID,
				Anchor:     fmt.Sprintf("comment/%d", i),
			},
			Fragments: []string{comment.Text},
		})
	}
	return elements, nil
}
