package driven

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// QueryStore persists users' words queries.
// The query service layers an invalidating cache on top of it, so
// implementations do not need to cache.
type QueryStore interface {
	// AddQuery stores a new query, assigning its ID and creation
	// time. Returns domain.ErrAlreadyExists if the owner already
	// watches the same text.
	AddQuery(ctx context.Context, query *domain.WordsQuery) error

	// RemoveQuery deletes a query by owner and text.
	// Returns domain.ErrNotFound if no such query exists.
	RemoveQuery(ctx context.Context, owner, text string) error

	// QueriesForUser returns all queries owned by the user.
	QueriesForUser(ctx context.Context, owner string) ([]domain.WordsQuery, error)

	// UsersWithQueries returns every user owning at least one query.
	UsersWithQueries(ctx context.Context) ([]string, error)
}
