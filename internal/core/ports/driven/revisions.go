package driven

import (
	"context"

	"github.com/custodia-labs/wordwatch/internal/core/domain"
)

// RevisionProvider loads document revisions.
// Revisions are immutable once recorded.
type RevisionProvider interface {
	// GetRevision retrieves one exact revision of a document.
	// Returns domain.ErrNotFound if the revision is unknown.
	GetRevision(ctx context.Context, documentID, version string) (*domain.DocumentRevision, error)

	// LatestVersion returns the current head version of a document,
	// or domain.ErrNotFound if the document has no revisions.
	LatestVersion(ctx context.Context, documentID string) (string, error)
}

// RevisionRecorder additionally records new revisions. The document
// source (e.g. the filesystem watcher) appends through it; the watcher
// core only ever reads.
type RevisionRecorder interface {
	RevisionProvider

	// SaveRevision appends a new revision. The revision's version must
	// not already exist for the document.
	SaveRevision(ctx context.Context, rev *domain.DocumentRevision) error
}
