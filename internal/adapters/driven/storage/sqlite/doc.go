// Package sqlite provides SQLite-backed implementations of the storage
// ports: words queries, document revisions, analysis results, the
// watch-task queue and the notification outbox all live in one
// database file with embedded schema migrations.
package sqlite
