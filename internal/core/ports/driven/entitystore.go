package driven

import (
	"context"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// EntityStore persists local records and resolves remote identifiers.
type EntityStore interface {
	// LookupIDByGUID resolves an existing record ID from a remote GUID.
	// ok is false when no record has been created for the GUID.
	LookupIDByGUID(ctx context.Context, guid string) (string, bool, error)

	// Load retrieves a record by category and ID.
	// Returns domain.ErrNotFound when absent.
	Load(ctx context.Context, category domain.Category, id string) (*domain.Record, error)

	// Save stores or updates a record, assigning an ID on first save.
	// The stored record is returned; last write wins.
	Save(ctx context.Context, rec *domain.Record) (*domain.Record, error)
}
