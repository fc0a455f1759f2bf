// Package notify provides notification sink adapters: a console sink
// for interactive watch sessions, a token-bucket rate limiter so a
// burst of edits cannot flood a delivery channel, and a fan-out
// combinator for delivering through several sinks at once.
package notify
