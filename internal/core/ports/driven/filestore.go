package driven

import (
	"context"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// FileStore persists file metadata and materialises enclosures.
// Download is a blocking call; the core imposes no timeout of its own.
type FileStore interface {
	// FindByURI retrieves file metadata by storage URI.
	// Returns domain.ErrNotFound when absent.
	FindByURI(ctx context.Context, uri string) (*domain.FileRecord, error)

	// Download fetches the remote URL into the destination URI,
	// replacing any file already there. Returns the final storage URI
	// and the downloaded byte size.
	Download(ctx context.Context, url, dest string) (string, int64, error)

	// Save stores or updates file metadata, assigning an ID on first
	// save. The stored record is returned.
	Save(ctx context.Context, f *domain.FileRecord) (*domain.FileRecord, error)
}
