// Package service implements the business logic layer for divisions.
//
// DivisionService is the store: it owns the cached division set, the
// per-division locks, and every operation that mutates a division. Each
// mutating operation validates, updates the aggregate in memory, records
// an audit entry, publishes an event, and re-persists synchronously.
//
// # Persistence Failures
//
// A persistence failure during a mutation is logged and swallowed; the
// in-memory state keeps the mutation. The next successful save writes
// the full aggregate, so nothing is lost while the process lives.
//
// # Cache
//
// The full division set is cached after the first scan and invalidated
// on create and remove. Concurrent cache misses collapse into a single
// scan. When directory watching is enabled, external edits to the data
// root also invalidate the cache.
//
// # Events
//
// Collaborators observe mutations through the Publisher and Broadcaster
// interfaces. A Publisher may override the initiator recorded in the
// audit entry that follows the event. Both default to no-ops.
package service
