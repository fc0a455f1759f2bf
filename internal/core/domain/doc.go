// Package domain defines the core business entities for wordwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - WordsQuery: A user's saved watch expression
//   - DocumentRevision: One immutable version of a watched document
//   - AnalysisResult: The aggregated scan outcome for one (revision, query)
//   - Notification: A mention/removal event produced by the change detector
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
