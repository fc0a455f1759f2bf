package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a words query with no text.
	// Empty queries would match nothing and are rejected at the edge.
	ErrEmptyQuery = errors.New("empty query")

	// ErrRevisionUnavailable indicates a document revision could not be loaded.
	// For previous revisions the watcher degrades to new-document semantics
	// instead of failing the task.
	ErrRevisionUnavailable = errors.New("revision unavailable")

	// ErrAnalyzerFailed indicates a part analyzer could not extract its target.
	// The failing analyzer contributes zero occurrences; the aggregate proceeds.
	ErrAnalyzerFailed = errors.New("analyzer failed")
)
