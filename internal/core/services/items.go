package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/logger"
)

// itemProfiles are the embedded profiles eligible for item resolution.
var itemProfiles = map[string]bool{
	"image": true,
	"audio": true,
	"video": true,
}

// addItems resolves embedded sub-documents into reference fields.
// Recursion is bounded at depth one: a document fetched as an item has
// its guard set and its own items are never processed. A failed item is
// reported and skipped; the parent's synchronisation continues.
func (s *Synchronizer) addItems(
	ctx context.Context,
	b *domain.RecordBuilder,
	doc *domain.Document,
	mapping domain.MappingConfig,
	fields map[string]domain.FieldDefinition,
) {
	if len(doc.Items) == 0 || doc.Recursed {
		return
	}

	for i := range doc.Items {
		item := &doc.Items[i]
		profile := item.DeriveProfile()

		local, ok := mapping.Field(domain.ItemFieldKey(profile))
		if !ok || !itemProfiles[profile] {
			continue
		}

		full, err := s.client.FetchOne(ctx, item.GUID)
		if err != nil || full == nil {
			err = fmt.Errorf("%w: %s: %v", domain.ErrRelatedDocNotFound, item.GUID, err)
			logger.Warn("Skipping item: %v", err)
			continue
		}

		full.Recursed = true
		full.Pulled = true
		rec, err := s.Synchronize(ctx, full)
		if err != nil {
			logger.Warn("Skipping item %s: %v", item.GUID, err)
			continue
		}

		// Shape the reference per the target field's capability.
		var ref domain.FieldValue
		switch fields[local].Kind {
		case domain.FieldFileRef:
			ref = domain.FileReference{TargetID: rec.ID, Display: true}
		case domain.FieldEntityRef:
			ref = domain.EntityReference{TargetID: rec.ID}
		default:
			logger.Debug("Field %s cannot hold references, skipping item %s", local, item.GUID)
			continue
		}

		// A field never references the same target twice.
		if b.References(local, rec.ID) {
			continue
		}
		b.AppendField(local, ref)
	}
}
