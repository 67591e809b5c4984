// Package driven defines the interfaces the core requires from
// infrastructure adapters (storage, extraction).
//
// Driven ports are called BY the core. Adapters under
// internal/adapters/driven and internal/extractors implement them.
package driven
