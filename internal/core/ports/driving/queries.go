package driving

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// QueryManager manages users' words queries.
type QueryManager interface {
	// Add stores a new query after validating and compiling it.
	Add(ctx context.Context, owner, text string) (*domain.WordsQuery, error)

	// Remove deletes a query by owner and text.
	Remove(ctx context.Context, owner, text string) error

	// List returns the user's queries.
	List(ctx context.Context, owner string) ([]domain.WordsQuery, error)

	// Users returns every user owning at least one query.
	Users(ctx context.Context) ([]string, error)
}
