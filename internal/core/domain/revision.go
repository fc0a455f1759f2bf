package domain

import "time"

// DocumentRevision is one immutable version of a watched document.
// Revisions never change once recorded; everything derived from them
// (analysis results) is therefore safe to cache forever.
type DocumentRevision struct {
	// Ref identifies this exact revision.
	Ref DocumentVersionReference

	// PreviousVersion is the identifier of the immediately preceding
	// revision, or empty for the first revision of a document.
	PreviousVersion string

	// Title is the document title.
	Title string

	// Content is the full document text.
	Content string

	// Tags are the document's tags, in order.
	Tags []string

	// Comments are the document's comments, in order.
	Comments []Comment

	// Objects are instances of repeating sub-structures attached to
	// the document, scanned by configured property analyzers.
	Objects []ObjectInstance

	// Author is the user who produced this revision. Notifications
	// are attributed to the revision author.
	Author string

	// CreatedAt is when the revision was recorded.
	CreatedAt time.Time
}

// IsFirstVersion reports whether this is the document's first revision.
func (r *DocumentRevision) IsFirstVersion() bool {
	return r.PreviousVersion == ""
}

// PreviousRef returns the reference of the preceding revision.
// Only meaningful when IsFirstVersion is false.
func (r *DocumentRevision) PreviousRef() DocumentVersionReference {
	return DocumentVersionReference{
		DocumentID: r.Ref.DocumentID,
		Version:    r.PreviousVersion,
	}
}

// Comment is one comment attached to a document revision.
type Comment struct {
	// Author is the comment author.
	Author string

	// Text is the comment body.
	Text string
}

// ObjectInstance is one instance of a repeating sub-structure
// (the generalization of the original wiki's typed objects).
type ObjectInstance struct {
	// Kind names the structure type.
	Kind string

	// Properties holds the instance's named string fields.
	Properties map[string]string
}
