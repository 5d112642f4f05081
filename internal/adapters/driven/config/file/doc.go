// Package file provides the TOML-backed pull configuration store.
//
// One TOML file declares everything the engine needs to know about a
// deployment: the pull actor, storage schemes, profile attribute
// declarations, profile-to-bundle targets with their field mappings,
// and per-bundle field definitions with default values.
package file
