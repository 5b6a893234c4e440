// Package sqlite provides a SQLite-based implementation of the quiz store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Questions and diagnostics are stored as JSON columns on the quizzes table.
//
// # Data Location
//
// By default, the database is stored at ~/.lessonquiz/data/quizzes.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
