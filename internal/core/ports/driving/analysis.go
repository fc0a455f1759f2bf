package driving

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// AnalysisService computes aggregated analysis results.
type AnalysisService interface {
	// GetOrCompute returns the aggregate for (revision, query text),
	// serving it from the analysis store when present and computing,
	// persisting and returning it otherwise. Idempotent: at most one
	// computation per key under normal operation, and racing
	// computations produce equal values.
	GetOrCompute(ctx context.Context, rev *domain.DocumentRevision, queryText string) (*domain.AnalysisResult, error)

	// Probe scans arbitrary text fragments with a query, without
	// touching any store. Backs the interactive query tester.
	Probe(queryText string, fragments []string) ([]domain.Localization, error)
}
