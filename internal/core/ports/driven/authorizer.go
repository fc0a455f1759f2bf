package driven

import "context"

// Authorizer answers view-permission checks. Users without view rights
// on a document are skipped entirely before any of their queries are
// evaluated: a privacy boundary, not an optimization.
type Authorizer interface {
	// CanView reports whether the user may see the document.
	CanView(ctx context.Context, user, documentID string) (bool, error)
}
