package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordwatch/internal/analyzers"
	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// countingAnalyzer wraps an analyzer and counts Extract calls.
type countingAnalyzer struct {
	inner analyzers.Analyzer
	calls int
}

func (c *countingAnalyzer) Hint() string { return c.inner.Hint() }

func (c *countingAnalyzer) Extract(rev *domain.DocumentRevision) ([]analyzers.Element, error) {
	c.calls++
	return c.inner.Extract(rev)
}

// failingExtractAnalyzer always fails extraction.
type failingExtractAnalyzer struct{}

func (failingExtractAnalyzer) Hint() string { return "broken" }

func (failingExtractAnalyzer) Extract(*domain.DocumentRevision) ([]analyzers.Element, error) {
	return nil, errors.New("field unreadable")
}

func sampleRevision(version, previous, content string) *domain.DocumentRevision {
	return &domain.DocumentRevision{
		Ref:             domain.DocumentVersionReference{DocumentID: "doc.md", Version: version},
		PreviousVersion: previous,
		Title:           "untitled",
		Content:         content,
		Author:          "editor",
	}
}

// TestAnalysisService_Compute tests a cold computation across analyzers.
func TestAnalysisService_Compute(t *testing.T) {
	registry := analyzers.NewRegistry()
	registry.Register(analyzers.NewContent())
	registry.Register(analyzers.NewTitle())

	svc := NewAnalysisService(memory.NewAnalysisStore(), registry)
	rev := sampleRevision("1", "", "foo here\nand foo there")
	rev.Title = "all about foo"

	result, err := svc.GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Occurrences())
	require.Len(t, result.Parts, 2)

	content, ok := result.Part(analyzers.ContentHint)
	require.True(t, ok)
	assert.Equal(t, int64(2), content.Occurrences())

	title, ok := result.Part(analyzers.TitleHint)
	require.True(t, ok)
	assert.Equal(t, int64(1), title.Occurrences())
}

// TestAnalysisService_CacheIdempotence tests at-most-one computation per key.
func TestAnalysisService_CacheIdempotence(t *testing.T) {
	counting := &countingAnalyzer{inner: analyzers.NewContent()}
	registry := analyzers.NewRegistry()
	registry.Register(counting)

	svc := NewAnalysisService(memory.NewAnalysisStore(), registry)
	rev := sampleRevision("1", "", "foo")

	first, err := svc.GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)
	second, err := svc.GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)

	assert.Equal(t, 1, counting.calls)
	assert.Equal(t, first.Occurrences(), second.Occurrences())
	assert.Equal(t, first.Parts, second.Parts)
}

// TestAnalysisService_DistinctQueriesDistinctKeys tests that the query
// text keys the cache: distinct texts compute, repeats are served.
func TestAnalysisService_DistinctQueriesDistinctKeys(t *testing.T) {
	counting := &countingAnalyzer{inner: analyzers.NewContent()}
	registry := analyzers.NewRegistry()
	registry.Register(counting)

	svc := NewAnalysisService(memory.NewAnalysisStore(), registry)
	rev := sampleRevision("1", "", "foo bar")

	_, err := svc.GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)
	_, err = svc.GetOrCompute(context.Background(), rev, "bar")
	require.NoError(t, err)
	_, err = svc.GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)

	assert.Equal(t, 2, counting.calls)
}

// TestAnalysisService_AdditivityIndependentOfOrder tests that the
// occurrence total does not depend on registration order.
func TestAnalysisService_AdditivityIndependentOfOrder(t *testing.T) {
	rev := sampleRevision("1", "", "foo\nfoo")
	rev.Title = "foo"
	rev.Tags = []string{"foo", "other"}

	forward := analyzers.NewRegistry()
	forward.Register(analyzers.NewContent())
	forward.Register(analyzers.NewTitle())
	forward.Register(analyzers.NewTags())

	backward := analyzers.NewRegistry()
	backward.Register(analyzers.NewTags())
	backward.Register(analyzers.NewTitle())
	backward.Register(analyzers.NewContent())

	a, err := NewAnalysisService(memory.NewAnalysisStore(), forward).
		GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)
	b, err := NewAnalysisService(memory.NewAnalysisStore(), backward).
		GetOrCompute(context.Background(), rev, "foo")
	require.NoError(t, err)

	assert.Equal(t, int64(4), a.Occurrences())
	assert.Equal(t, a.Occurrences(), b.Occurrences())
}

// TestAnalysisService_FailingAnalyzerContributesZero tests graceful
// degradation of one broken analyzer.
func TestAnalysisService_FailingAnalyzerContributesZero(t *testing.T) {
	registry := analyzers.NewRegistry()
	registry.Register(failingExtractAnalyzer{})
	registry.Register(analyzers.NewContent())

	svc := NewAnalysisService(memory.NewAnalysisStore(), registry)
	result, err := svc.GetOrCompute(context.Background(), sampleRevision("1", "", "foo"), "foo")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Occurrences())

	broken, ok := result.Part("broken")
	require.True(t, ok)
	assert.Equal(t, int64(0), broken.Occurrences())
}

// TestAnalysisService_EmptyQueryRejected tests compilation errors surface.
func TestAnalysisService_EmptyQueryRejected(t *testing.T) {
	svc := NewAnalysisService(memory.NewAnalysisStore(), analyzers.NewDefaultRegistry())

	_, err := svc.GetOrCompute(context.Background(), sampleRevision("1", "", "text"), "")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

// TestAnalysisService_Probe tests the store-free scan path.
func TestAnalysisService_Probe(t *testing.T) {
	svc := NewAnalysisService(memory.NewAnalysisStore(), analyzers.NewDefaultRegistry())

	regions, err := svc.Probe("wor*", []string{"hello world", "nothing"})
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, 0, regions[0].Position)
	assert.Equal(t, 6, regions[0].Start)
}
