package mcp

import (
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query provides search, listing, and statistics.
	Query driving.Query

	// Library resolves individual documents and groups. Optional; the
	// document resources degrade gracefully without it.
	Library driving.Library
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
