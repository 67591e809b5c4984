// Package sqlite provides a unified SQLite-based implementation of the
// driven store interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It implements
// both store interfaces through a single database connection:
//
//   - DocumentStore: Document rows and their index lifecycle
//   - GroupStore: Group rows with detach-on-delete semantics
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files. The group_id foreign key carries ON DELETE SET NULL
// so deleting a group detaches its members rather than deleting them.
//
// # Data Location
//
// By default, the database is stored at ~/.folio/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; every mutation is a single statement,
// so readers always observe fully applied updates.
package sqlite
