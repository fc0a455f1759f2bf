package domain

import "time"

// NotificationKind distinguishes the two events the change detector emits.
type NotificationKind string

const (
	// NotificationMention fires when the occurrence count increased.
	NotificationMention NotificationKind = "mention"

	// NotificationRemoval fires when the occurrence count decreased.
	NotificationRemoval NotificationKind = "removal"
)

// Notification is one mention/removal event for one user's query.
// Delivery and rendering are the sink's concern.
type Notification struct {
	// ID is the unique identifier assigned at creation.
	ID string

	// Kind is mention or removal.
	Kind NotificationKind

	// Targets are the users to notify.
	Targets []string

	// QueryText is the watched text that matched.
	QueryText string

	// Document identifies the revision that triggered the event.
	Document DocumentVersionReference

	// Author is the user whose change triggered the event.
	Author string

	// IsNew marks a mention in a document's first revision.
	IsNew bool

	// OldOccurrences is the count in the previous revision (0 if new).
	OldOccurrences int64

	// NewOccurrences is the count in the triggering revision.
	NewOccurrences int64

	// CreatedAt is when the event was produced.
	CreatedAt time.Time
}
