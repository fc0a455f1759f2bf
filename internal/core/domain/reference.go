package domain

import "fmt"

// DocumentVersionReference is the immutable identity of one exact
// revision of one document. It is half of every analysis-store key.
type DocumentVersionReference struct {
	// DocumentID identifies the document (for the filesystem source,
	// the path relative to the watched root).
	DocumentID string

	// Version is the revision identifier. Versions of one document
	// are totally ordered by the revision provider.
	Version string
}

// String returns the serialized form used in composite storage keys.
func (r DocumentVersionReference) String() string {
	return fmt.Sprintf("%s@%s", r.DocumentID, r.Version)
}

// ElementReference identifies the sub-part of a document an analyzer
// scanned: the document itself for content and title, or one instance
// of a repeating structure (a comment, an object) addressed by Anchor.
type ElementReference struct {
	// DocumentID identifies the containing document.
	DocumentID string

	// Anchor addresses the sub-part within the document. Empty for
	// the document body/title, "comment/N" for the Nth comment,
	// "object/<kind>/N" for object instances.
	Anchor string
}

// String returns the serialized form of the element reference.
func (r ElementReference) String() string {
	if r.Anchor == "" {
		return r.DocumentID
	}
	return r.DocumentID + "#" + r.Anchor
}
