package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
	"github.com/custodia-labs/mediapull/internal/logger"
)

// Synchronizer turns remote hypermedia documents into local records.
// It performs the idempotent upsert, field mapping, enclosure and item
// resolution, and default back-fill for a single document.
//
// Execution is fully synchronous: fetches, downloads and saves are
// blocking calls to the injected ports, with no retry or rollback.
// Concurrent synchronisation of the same GUID by two callers can race
// past the existing-record check and produce duplicates; callers that
// need stronger guarantees must serialise.
type Synchronizer struct {
	client   driven.DocClient
	resolver driven.MappingResolver
	entities driven.EntityStore
	taxonomy driven.TaxonomyService
	files    driven.FileStore
	formats  driven.FormatResolver

	cfg          Config
	defaultHooks []driven.DefaultValueHook

	// now is stubbed in tests.
	now func() time.Time
}

// NewSynchronizer creates a synchroniser. The defaultHooks transform
// default field values before back-fill, in the given order.
func NewSynchronizer(
	client driven.DocClient,
	resolver driven.MappingResolver,
	entities driven.EntityStore,
	taxonomy driven.TaxonomyService,
	files driven.FileStore,
	formats driven.FormatResolver,
	cfg Config,
	defaultHooks ...driven.DefaultValueHook,
) *Synchronizer {
	return &Synchronizer{
		client:       client,
		resolver:     resolver,
		entities:     entities,
		taxonomy:     taxonomy,
		files:        files,
		formats:      formats,
		cfg:          cfg,
		defaultHooks: defaultHooks,
		now:          time.Now,
	}
}

// Synchronize creates or updates the local record for one document.
// Returns domain.ErrUnmappedProfile (wrapped) when the document's
// profile has no configured target; no record is produced in that case.
func (s *Synchronizer) Synchronize(ctx context.Context, doc *domain.Document) (*domain.Record, error) {
	doc.Profile = doc.DeriveProfile()

	target, ok := s.resolver.Resolve(doc.Profile)
	if !ok {
		logger.Warn("Unable to pull doc %s: profile %q is not mapped to any bundle", doc.GUID, doc.Profile)
		return nil, fmt.Errorf("doc %s profile %q: %w", doc.GUID, doc.Profile, domain.ErrUnmappedProfile)
	}

	b, err := s.upsert(ctx, doc, target)
	if err != nil {
		return nil, err
	}

	// The publish time becomes the creation time for content-like
	// records and the timestamp for file-like records.
	if target.Category == domain.CategoryFile {
		b.Timestamp(doc.Published)
	} else {
		b.CreatedAt(doc.Published)
	}

	if w, ok := doc.Window(); ok {
		b.Window(w.From, w.To)
	}

	// Resolve the enclosure before field mapping so the mapping pass
	// can override any enclosure-supplied value.
	if len(doc.Enclosures) > 0 {
		f, err := s.resolveEnclosure(ctx, doc.Enclosures[0], doc.Profile, doc.GUID)
		if err != nil {
			return nil, fmt.Errorf("resolve enclosure: %w", err)
		}
		b.MergeFile(f)
	}

	if target.Category != domain.CategoryFile {
		if doc.Valid(s.now()) {
			b.Status(domain.StatusPublished)
		} else {
			b.Status(domain.StatusUnpublished)
		}
	}

	mapping := s.resolver.FieldMapping(target.Category, target.Bundle, doc.Profile)
	fields := s.resolver.BundleFields(target.Category, target.Bundle)

	s.mapFields(ctx, b, doc, mapping, fields, target.Label)
	s.addItems(ctx, b, doc, mapping, fields)
	s.fillDefaults(b, fields)

	if doc.Context != nil {
		b.Context(doc.Context)
	}

	rec, err := s.entities.Save(ctx, b.Build())
	if err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	logger.Debug("Synchronised doc %s into %s/%s record %s", doc.GUID, rec.Category, rec.Bundle, rec.ID)
	return rec, nil
}

// upsert loads the existing record for the document's GUID, or starts
// a fresh one attributed to the pull actor. A previously pulled GUID is
// never re-created, only updated.
func (s *Synchronizer) upsert(ctx context.Context, doc *domain.Document, target domain.Target) (*domain.RecordBuilder, error) {
	id, ok, err := s.entities.LookupIDByGUID(ctx, doc.GUID)
	if err != nil {
		return nil, fmt.Errorf("lookup guid %s: %w", doc.GUID, err)
	}
	if ok {
		rec, err := s.entities.Load(ctx, target.Category, id)
		if err != nil {
			return nil, fmt.Errorf("load record %s: %w", id, err)
		}
		return domain.BuildFrom(rec), nil
	}

	return domain.NewRecordBuilder(target.Category, target.Bundle).
		Owner(s.cfg.PullActor).
		GUID(doc.GUID).
		Pulled(), nil
}
