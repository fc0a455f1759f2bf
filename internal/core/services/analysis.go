package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/wordwatch/internal/analyzers"
	"github.com/custodia-labs/wordwatch/internal/core/domain"
	"github.com/custodia-labs/wordwatch/internal/core/match"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driven"
	"github.com/custodia-labs/wordwatch/internal/core/ports/driving"
	"github.com/custodia-labs/wordwatch/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService is the aggregator: it runs every registered part
// analyzer for a (revision, query text) pair, serving already computed
// aggregates from the analysis store. Results computed for one user's
// query are shared with every other user watching the same text.
type AnalysisService struct {
	store    driven.AnalysisStore
	registry *analyzers.Registry
}

// NewAnalysisService creates an aggregator over the given store and
// analyzer registry.
func NewAnalysisService(store driven.AnalysisStore, registry *analyzers.Registry) *AnalysisService {
	return &AnalysisService{
		store:    store,
		registry: registry,
	}
}

// GetOrCompute returns the aggregate for (rev, queryText), computing
// and persisting it on a store miss.
//
// Store failures never fail the computation: a read error is treated
// as a miss (recomputation is always possible from the revision) and a
// write error only costs the cache entry. Two racing computations for
// the same key both succeed; analyzers are deterministic so the values
// are equal and the store may keep either.
func (s *AnalysisService) GetOrCompute(
	ctx context.Context,
	rev *domain.DocumentRevision,
	queryText string,
) (*domain.AnalysisResult, error) {
	cached, err := s.store.Load(ctx, rev.Ref, queryText)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("analysis store read failed for %s %q, recomputing: %v", rev.Ref, queryText, err)
	}

	result, err := s.compute(rev, queryText)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, result); err != nil {
		logger.Warn("analysis store write failed for %s %q: %v", rev.Ref, queryText, err)
	}

	return result, nil
}

// compute runs every registered analyzer against the revision.
// A single failing analyzer is logged and contributes zero occurrences;
// only a failed pattern compilation aborts the aggregate.
func (s *AnalysisService) compute(rev *domain.DocumentRevision, queryText string) (*domain.AnalysisResult, error) {
	pattern, err := match.Compile(queryText)
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", queryText, err)
	}

	result := &domain.AnalysisResult{
		Ref:       rev.Ref,
		Query:     queryText,
		CreatedAt: time.Now(),
	}

	for _, analyzer := range s.registry.All() {
		part, err := analyzers.Run(analyzer, rev, pattern)
		if err != nil {
			logger.Warn("analyzer %s failed on %s: %v", analyzer.Hint(), rev.Ref, err)
		}
		result.Parts = append(result.Parts, part)
	}

	return result, nil
}

// Probe scans arbitrary fragments with a query, bypassing all stores.
func (s *AnalysisService) Probe(queryText string, fragments []string) ([]domain.Localization, error) {
	pattern, err := match.Compile(queryText)
	if err != nil {
		return nil, err
	}
	return match.Scan(pattern, domain.ElementReference{}, fragments), nil
}
