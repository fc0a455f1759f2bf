// Package filesystem turns a directory tree into a watched wiki: each
// file is a document, and every observed write is recorded as a new
// immutable revision and enqueued for analysis.
package filesystem
