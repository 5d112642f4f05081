// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocClient: Fetches hypermedia documents from the remote API
//   - MappingResolver: Profile-to-bundle targets and field mappings
//   - EntityStore: Local record persistence and GUID lookup
//   - TaxonomyService: Term lookup and lazy creation
//   - FileStore: File metadata persistence and enclosure download
//   - FormatResolver: Default text format per pull actor
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
