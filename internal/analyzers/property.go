package analyzers

import (
	"fmt"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// Property scans one named string property across all instances of a
// repeating object kind. Hosts register one Property analyzer per
// (kind, property) binding they care about; no other code changes.
type Property struct {
	kind     string
	property string
}

// NewProperty creates a property analyzer for the given object kind
// and property name.
func NewProperty(kind, property string) *Property {
	return &Property{kind: kind, property: property}
}

// Hint returns the analyzer name, unique per binding.
func (a *Property) Hint() string {
	return fmt.Sprintf("property/%s/%s", a.kind, a.property)
}

// Extract returns one element per matching object instance. An
// instance lacking the property is an extraction failure for that
// instance only and is skipped.
func (a *Property) Extract(rev *domain.DocumentRevision) ([]Element, error) {
	var elements []Element
	for i, obj := range rev.Objects {
		if obj.Kind != a.kind {
			continue
		}
		value, ok := obj.Properties[a.property]
		if !ok {
			continue
		}
		elements = append(elements, Element{
			Ref: domain.ElementReference{
				DocumentID: rev.Ref.DocumentID,
				Anchor:     fmt.Sprintf("object/%s/%d", a.kind, i),
			},
			Fragments: []string{value},
		})
	}
	return elements, nil
}
