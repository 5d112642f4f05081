package domain

// FileRecord is the stored metadata for a materialised enclosure.
// FileRecords are deduplicated by storage URI: a second enclosure
// resolving to the same URI updates the first record in place.
type FileRecord struct {
	// ID is assigned by the file store on first save.
	ID string

	// URI is the storage URI. Either a scheme URI for locally
	// materialised files or the remote URL itself.
	URI string

	// Filename is the stored file name, empty for remote-referenced
	// enclosures.
	Filename string

	// MIMEType is the declared media type, empty for remote-referenced
	// enclosures.
	MIMEType string

	// Size is the downloaded byte size, zero for remote-referenced
	// enclosures.
	Size int64

	// GUID is the owning document's remote identifier.
	GUID string

	// Owner is the pull actor.
	Owner string

	// Status is the file's publish state.
	Status int

	// Pulled marks the file as remotely sourced so it is never pushed.
	Pulled bool
}
