package driving

import (
	"context"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// Puller drives single- and batch-pull synchronisation.
type Puller interface {
	// PullOne fetches one document by GUID and synchronises it.
	// A fetch failure or unmapped profile is reported as a warning and
	// yields a nil record with a nil error; callers must check for
	// absence. A non-nil error means the save itself failed.
	PullOne(ctx context.Context, guid string) (*domain.Record, error)

	// PullMany fetches a batch and synchronises each document whose
	// GUID does not already resolve to an existing record. The pullCtx
	// value is attached to every synchronised record. Failed documents
	// are reported and skipped; the batch continues.
	PullMany(ctx context.Context, q domain.Query, pullCtx any) ([]*domain.Record, error)
}
