// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RevisionProvider: Loads document revisions (sources also record through RevisionRecorder)
//   - AnalysisStore: Persists aggregated analysis results (append-only)
//   - QueryStore: Persists users' words queries
//   - TaskStore: Persists the pending watch-task queue
//   - NotificationSink: Receives mention/removal events for delivery
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Authorizer: View-permission checks. Without one, every watching
//     user is evaluated (single-user installations).
//
// # Import Rules
//
//   - Can Import: domain, standard library
//   - Cannot Import: services, adapters, any external dependency
package driven
