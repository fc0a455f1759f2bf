package analyzers

import (
	"strings"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// ContentHint identifies the full-content analyzer.
const ContentHint = "content"

// Content scans the whole document text, line by line.
type Content struct{}

// NewContent creates the content analyzer.
func NewContent() *Content {
	return &Content{}
}

// Hint returns the analyzer name.
func (a *Content) Hint() string {
	return ContentHint
}

// Extract splits the document content into lines. Localizations
// produced from it carry the line index as their position.
func (a *Content) Extract(rev *domain.DocumentRevision) ([]Element, error) {
	return []Element{{
		Ref:       domain.ElementReference{DocumentID: rev.Ref.DocumentID},
		Fragments: strings.Split(rev.Content, "\n"),
	}}, nil
}
