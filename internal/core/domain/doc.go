// Package domain defines the core business entities for Genedex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - GeneRecord: The resolved knowledge about one gene symbol
//   - CacheEntry: A persisted GeneRecord plus bookkeeping
//   - Resolution: The per-symbol outcome handed to the presentation layer
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
