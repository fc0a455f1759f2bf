// Package analyzers provides the pluggable part analyzers: one per kind
// of document content (full content, title, tags, comments, object
// properties). Each analyzer only supplies fragment extraction; the
// whole-token scan itself is shared and lives in core/match.
package analyzers

import (
	"fmt"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/match"
)

// Element is one extracted sub-part of a revision: the reference that
// identifies it plus its ordered text fragments.
type Element struct {
	Ref       domain.ElementReference
	Fragments []string
}

// Analyzer extracts the text fragments of one kind of document content.
// New content kinds are supported by adding an Analyzer implementation;
// the scan algorithm never changes.
type Analyzer interface {
	// Hint names the analyzer. At most one part result per hint
	// appears in an aggregate.
	Hint() string

	// Extract returns the elements of the revision this analyzer
	// covers, each with its ordered fragment list.
	Extract(rev *domain.DocumentRevision) ([]Element, error)
}

// Run applies the shared whole-token scan to everything the analyzer
// extracts from the revision and collects the matches into a single
// part result.
func Run(a Analyzer, rev *domain.DocumentRevision, pattern *match.Pattern) (domain.PartAnalysisResult, error) {
	result := domain.PartAnalysisResult{AnalyzerHint: a.Hint()}

	elements, err := a.Extract(rev)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %v", domain.ErrAnalyzerFailed, a.Hint(), err)
	}

	for _, element := range elements {
		result.Regions = append(result.Regions, match.Scan(pattern, element.Ref, element.Fragments)...)
	}

	return result, nil
}

// Registry holds the registered analyzers in registration order.
// The occurrence total of an aggregate is independent of that order;
// keeping it stable makes results reproducible field by field.
type Registry struct {
	analyzers []Analyzer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an analyzer. A second analyzer with an already
// registered hint replaces the first.
func (r *Registry) Register(a Analyzer) {
	for i, existing := range r.analyzers {
		if existing.Hint() == a.Hint() {
			r.analyzers[i] = a
			return
		}
	}
	r.analyzers = append(r.analyzers, a)
}

// All returns the analyzers in registration order.
func (r *Registry) All() []Analyzer {
	return r.analyzers
}

// NewDefaultRegistry returns a registry with the standard analyzers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewContent())
	r.Register(NewTitle())
	r.Register(NewTags())
	r.Register(NewComments())
	return r
}
