// Package jobs implements background job processing for divisions.
//
// The jobs package contains scheduled tasks that run independently of
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - ChatFlusher: drains buffered division chat to day-bucketed logs
//
// # Lifecycle
//
// Jobs start with Start() and stop gracefully with Stop(), which waits
// for the in-flight run to finish.
//
// # Error Handling
//
// Jobs log errors but don't crash the application.
package jobs
