package analyzers

import "github.com/custodia-labs/wordwatch/internal/core/domain"

// TagsHint identifies the tags analyzer.
const TagsHint = "tags"

// Tags scans the document's tag list, one fragment per tag.
type Tags struct{}

// NewTags creates the tags analyzer.
func NewTags() *Tags {
	return &Tags{}
}

// Hint returns the analyzer name.
func (a *Tags) Hint() string {
	return TagsHint
}

// Extract returns the tag list as the fragments of the document element,
// so a localization's position is the tag index.
func (a *Tags) Extract(rev *domain.DocumentRevision) ([]Element, error) {
	return []Element{{
		Ref:       domain.ElementReference{DocumentID: rev.Ref.DocumentID},
		Fragments: rev.Tags,
	}}, nil
}
