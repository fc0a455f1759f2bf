package driven

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// AnalysisStore persists aggregated analysis results, keyed by
// (document version reference, query text). Entries are immutable once
// written; the store is append-only. Saving the same key twice is legal
// (racing computations produce semantically equal values) and the store
// may keep either.
type AnalysisStore interface {
	// Load retrieves the result for one (revision, query text) key.
	// Returns domain.ErrNotFound on a miss.
	Load(ctx context.Context, ref domain.DocumentVersionReference, queryText string) (*domain.AnalysisResult, error)

	// Save persists a result. Safe to repeat for the same key.
	Save(ctx context.Context, result *domain.AnalysisResult) error
}
