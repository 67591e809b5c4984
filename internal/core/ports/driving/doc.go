// Package driving defines the interfaces the core offers to consuming
// surfaces (CLI, MCP server, a future viewer).
//
// Driving ports are called INTO the core. Services under
// internal/core/services implement them; surfaces only issue commands
// and queries through these interfaces and render the results.
package driving
