// Package sqlite provides the SQLite-backed conversation history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. History persistence is an
// optional collaborator of the pipeline: the live session state stays in
// memory, and this store only records sessions and completed turns for later
// review.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory, applied in filename order on open.
//
// # Data Location
//
// By default, the database is stored at ~/.juribot/data/history.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
