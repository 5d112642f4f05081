package driven

import (
	"context"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// DocClient fetches hypermedia documents from the remote
// content-distribution API. Implementations own transport concerns
// (auth, timeouts, rate limits); the core imposes none of its own.
type DocClient interface {
	// FetchOne fetches a single document by GUID.
	// Returns domain.ErrFetchFailed (wrapped) on transport errors or
	// when no document exists for the GUID.
	FetchOne(ctx context.Context, guid string) (*domain.Document, error)

	// FetchMany fetches a batch of documents matching the query.
	// Returns domain.ErrFetchFailed (wrapped) on transport errors; an
	// empty result is not an error.
	FetchMany(ctx context.Context, q domain.Query) ([]domain.Document, error)
}
