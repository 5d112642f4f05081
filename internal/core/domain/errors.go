package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. None of them is fatal
// to a batch: a single document's failure is reported and the batch
// continues.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFetchFailed indicates the remote fetch errored or returned no
	// documents. The affected document is skipped.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnmappedProfile indicates no mapping configuration exists for a
	// document's profile. The document is not synchronised and no record
	// is produced.
	ErrUnmappedProfile = errors.New("profile not mapped to any bundle")

	// ErrRelatedDocNotFound indicates an embedded item's full document
	// could not be fetched. The item is skipped, the parent continues.
	ErrRelatedDocNotFound = errors.New("related document not found")
)
