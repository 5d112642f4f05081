package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
	"github.com/custodia-labs/mediapull/internal/core/ports/driving"
	"github.com/custodia-labs/mediapull/internal/logger"
)

// Ensure PullService implements the interface.
var _ driving.Puller = (*PullService)(nil)

// PullService drives single- and batch-pull entry points. It filters
// already-synchronised documents, threads the optional context value,
// and runs each remaining document through the synchroniser.
type PullService struct {
	client       driven.DocClient
	entities     driven.EntityStore
	sync         *Synchronizer
	prepareHooks []driven.DocPrepareHook
}

// NewPullService creates a pull service. The prepareHooks filter or
// transform fetched documents before synchronisation, in the given
// order.
func NewPullService(
	client driven.DocClient,
	entities driven.EntityStore,
	sync *Synchronizer,
	prepareHooks ...driven.DocPrepareHook,
) *PullService {
	return &PullService{
		client:       client,
		entities:     entities,
		sync:         sync,
		prepareHooks: prepareHooks,
	}
}

// PullOne fetches one document by GUID and synchronises it. A fetch
// failure, empty result or unmapped profile is reported as a warning
// and yields no record; callers must check for absence.
func (p *PullService) PullOne(ctx context.Context, guid string) (*domain.Record, error) {
	doc, err := p.client.FetchOne(ctx, guid)
	if err != nil || doc == nil {
		logger.Warn("No doc could be found with GUID %s: %v", guid, err)
		return nil, nil
	}

	p.prepare([]*domain.Document{doc})

	rec, err := p.sync.Synchronize(ctx, doc)
	if err != nil {
		if errors.Is(err, domain.ErrUnmappedProfile) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// PullMany fetches a batch and synchronises each document whose GUID
// is not already mapped to a record. Updates of existing records are a
// separate concern; excluding them here keeps initial synchronisation
// at-most-once. A failed document is skipped and the batch continues.
func (p *PullService) PullMany(ctx context.Context, q domain.Query, pullCtx any) ([]*domain.Record, error) {
	fetched, err := p.client.FetchMany(ctx, q)
	if err != nil || len(fetched) == 0 {
		logger.Warn("No collection could be found for the query: %v", err)
		return nil, nil
	}

	docs := make([]*domain.Document, 0, len(fetched))
	for i := range fetched {
		doc := &fetched[i]
		_, exists, err := p.entities.LookupIDByGUID(ctx, doc.GUID)
		if err != nil {
			return nil, fmt.Errorf("lookup guid %s: %w", doc.GUID, err)
		}
		if exists {
			logger.Debug("Doc %s already pulled, skipping", doc.GUID)
			continue
		}
		doc.Context = pullCtx
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	p.prepare(docs)

	var records []*domain.Record
	for _, doc := range docs {
		rec, err := p.sync.Synchronize(ctx, doc)
		if err != nil {
			logger.Debug("Skipping doc %s: %v", doc.GUID, err)
			continue
		}
		records = append(records, rec)
	}

	logger.Info("Pulled %d of %d documents", len(records), len(docs))
	return records, nil
}

// prepare runs the registered prepare hooks over the batch, in order.
func (p *PullService) prepare(docs []*domain.Document) {
	for _, hook := range p.prepareHooks {
		hook(docs)
	}
}
