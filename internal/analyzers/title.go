package analyzers

import "github.com/custodia-labs/wordwatch/internal/core/domain"

// TitleHint identifies the title analyzer.
const TitleHint = "title"

// Title scans the document title as a single fragment.
type Title struct{}

// NewTitle creates the title analyzer.
func NewTitle() *Title {
	return &Title{}
}

// Hint returns the analyzer name.
func (a *Title) Hint() string {
	return TitleHint
}

// Extract returns the title as the single fragment of the document element.
func (a *Title) Extract(rev *domain.DocumentRevision) ([]Element, error) {
	return []Element{{
		Ref:       domain.ElementReference{DocumentID: rev.Ref.DocumentID},
		Fragments: []string{rev.Title},
	}}, nil
}
