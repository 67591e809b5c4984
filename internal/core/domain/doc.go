// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A tracked PDF file and its indexing/read state
//   - Group: A user-defined category documents may belong to
//   - IndexJob: The ephemeral unit of work for one extraction
//   - ProgressSnapshot: A point-in-time summary of pipeline progress
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
