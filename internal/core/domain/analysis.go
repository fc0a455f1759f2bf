package domain

import "time"

// Localization is one concrete whole-token match: which element it was
// found in, which fragment of that element, and the token's offsets
// within the (case-folded) fragment.
type Localization struct {
	// Element identifies the scanned sub-part of the document.
	Element ElementReference `json:"element"`

	// Position is the index of the fragment within the element's
	// fragment list (e.g. the line number for content).
	Position int `json:"position"`

	// Start is the byte offset of the token within the fragment.
	Start int `json:"start"`

	// End is the byte offset just past the token.
	End int `json:"end"`
}

// PartAnalysisResult is one analyzer's output for one (revision, query).
type PartAnalysisResult struct {
	// AnalyzerHint names the analyzer that produced this result
	// ("content", "title", "tags", "comments", or a property hint).
	AnalyzerHint string `json:"analyzer_hint"`

	// Regions are the matches, in fragment order then offset order.
	Regions []Localization `json:"regions,omitempty"`
}

// Occurrences returns the number of matches found by this analyzer.
func (p PartAnalysisResult) Occurrences() int64 {
	return int64(len(p.Regions))
}

// AnalysisResult is the aggregate of all part analyzers for one
// (document revision, query text). It is created at most once per key,
// persisted, and never mutated: a revision's content never changes,
// which is what makes sharing results across users with the same
// query text safe.
type AnalysisResult struct {
	// Ref identifies the analyzed revision.
	Ref DocumentVersionReference

	// Query is the watched text (not tied to an owner: identical
	// query texts share one result per revision).
	Query string

	// CreatedAt is when the analysis was computed.
	CreatedAt time.Time

	// Parts holds one result per analyzer, at most one per hint.
	Parts []PartAnalysisResult
}

// Occurrences returns the total match count across all parts.
func (r *AnalysisResult) Occurrences() int64 {
	var total int64
	for _, p := range r.Parts {
		total += p.Occurrences()
	}
	return total
}

// Part returns the result for the given analyzer hint, if present.
func (r *AnalysisResult) Part(hint string) (PartAnalysisResult, bool) {
	for _, p := range r.Parts {
		if p.AnalyzerHint == hint {
			return p, true
		}
	}
	return PartAnalysisResult{}, false
}
