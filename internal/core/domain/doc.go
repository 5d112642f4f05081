// Package domain defines the core business entities for Mediapull.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A remote hypermedia document with typed attributes
//   - Record: A local content or file record produced by a pull
//   - FileRecord: Stored metadata for a materialised enclosure
//   - Term: A taxonomy term within a vocabulary
//   - MappingConfig: Attribute-to-field mapping for one profile
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
