package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// TestQueryService_AddValidates tests validation and compilation on add.
func TestQueryService_AddValidates(t *testing.T) {
	svc := NewQueryService(memory.NewQueryStore())
	ctx := context.Background()

	query, err := svc.Add(ctx, "alice", "foo*")
	require.NoError(t, err)
	assert.NotEmpty(t, query.ID)
	assert.Equal(t, "alice", query.Owner)

	_, err = svc.Add(ctx, "alice", "")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)

	_, err = svc.Add(ctx, "alice", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)

	_, err = svc.Add(ctx, "", "foo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Add(ctx, "alice", "foo*")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// TestQueryService_CacheInvalidation tests that mutations refresh reads.
func TestQueryService_CacheInvalidation(t *testing.T) {
	store := memory.NewQueryStore()
	svc := NewQueryService(store)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "foo")
	require.NoError(t, err)

	// Warm the caches.
	queries, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, queries, 1)
	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)

	// Mutations invalidate synchronously.
	_, err = svc.Add(ctx, "alice", "bar")
	require.NoError(t, err)
	queries, err = svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, queries, 2)

	require.NoError(t, svc.Remove(ctx, "alice", "foo"))
	require.NoError(t, svc.Remove(ctx, "alice", "bar"))

	queries, err = svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, queries)
	users, err = svc.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

// TestQueryService_CacheServesWithoutStore tests that a warm cache is
// served without another store round trip.
func TestQueryService_CacheServesWithoutStore(t *testing.T) {
	store := memory.NewQueryStore()
	svc := NewQueryService(store)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "foo")
	require.NoError(t, err)

	first, err := svc.List(ctx, "alice")
	require.NoError(t, err)

	// Mutate the store behind the service's back; the cached value
	// is intentionally served until the next invalidation.
	require.NoError(t, store.AddQuery(ctx, &domain.WordsQuery{Text: "sneaky", Owner: "alice"}))

	second, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Remove through the service: invalidation exposes the new row.
	require.NoError(t, svc.Remove(ctx, "alice", "foo"))
	third, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Equal(t, "sneaky", third[0].Text)
}

// TestQueryService_RemoveUnknown tests removal of a missing query.
func TestQueryService_RemoveUnknown(t *testing.T) {
	svc := NewQueryService(memory.NewQueryStore())
	err := svc.Remove(context.Background(), "alice", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
