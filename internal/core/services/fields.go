package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/logger"
)

// maxLabelLength is the hard storage limit for label fields. Longer
// label sources are truncated before assignment.
const maxLabelLength = 255

// mapFields runs the attribute-to-field mapping pass. Item entries and
// attributes declared as items are skipped here; item resolution owns
// them. The attribute feeding the bundle's label field gets truncation
// instead of regular mapping.
func (s *Synchronizer) mapFields(
	ctx context.Context,
	b *domain.RecordBuilder,
	doc *domain.Document,
	mapping domain.MappingConfig,
	fields map[string]domain.FieldDefinition,
	label string,
) {
	labelAttr := ""
	if label != "" {
		for attr, field := range mapping.Fields {
			if field == label {
				labelAttr = attr
				break
			}
		}
	}

	for attr := range mapping.Fields {
		if strings.HasPrefix(attr, domain.ItemFieldPrefix) {
			continue
		}
		local, ok := mapping.Field(attr)
		if !ok {
			continue
		}
		if s.resolver.AttributeKind(doc.Profile, attr) == domain.KindItem {
			continue
		}
		value, present := doc.Attr(attr)
		if !present {
			continue
		}

		if attr == labelAttr {
			s.mapLabel(b, label, value)
			continue
		}
		s.mapAttribute(ctx, b, local, value, fields)
	}
}

// mapLabel assigns a truncated label value. Label columns have a hard
// 255-character limit, so truncate here to prevent all sorts of issues
// downstream.
func (s *Synchronizer) mapLabel(b *domain.RecordBuilder, label string, value domain.AttrValue) {
	text := attrString(value)
	if runes := []rune(text); len(runes) > maxLabelLength {
		text = string(runes[:maxLabelLength])
	}
	b.SetField(label, domain.StringValue(text))
}

// mapAttribute translates one typed attribute value into a field value.
func (s *Synchronizer) mapAttribute(
	ctx context.Context,
	b *domain.RecordBuilder,
	local string,
	value domain.AttrValue,
	fields map[string]domain.FieldDefinition,
) {
	switch v := value.(type) {
	case domain.ListValue:
		def := fields[local]
		if def.Kind == domain.FieldTermReference {
			b.SetField(local, s.termRefs(ctx, v, def.Vocabulary)...)
			return
		}
		b.SetField(local, domain.StringValue(strings.Join(v, ", ")))

	case domain.ScalarValue:
		b.SetField(local, domain.TextValue{
			Value:  string(v),
			Format: s.formats.DefaultFormat(s.cfg.PullActor),
		})

	case domain.WindowValue:
		// Validity windows map onto the record's own window fields, not
		// onto configured fields.
	}
}

// termRefs resolves list elements to taxonomy term references,
// creating missing terms in the vocabulary. An element resolves to an
// existing term before a new one is created, so the engine never
// duplicates a name within a vocabulary.
func (s *Synchronizer) termRefs(ctx context.Context, names domain.ListValue, vocabulary string) []domain.FieldValue {
	refs := make([]domain.FieldValue, 0, len(names))
	for _, name := range names {
		term, err := s.taxonomy.FindTerm(ctx, name, vocabulary)
		if errors.Is(err, domain.ErrNotFound) {
			term, err = s.taxonomy.CreateTerm(ctx, name, vocabulary)
		}
		if err != nil {
			logger.Warn("Term %q in vocabulary %q: %v", name, vocabulary, err)
			continue
		}
		refs = append(refs, domain.TermRef{TermID: term.ID})
	}
	return refs
}

// attrString flattens an attribute value to plain text.
func attrString(value domain.AttrValue) string {
	switch v := value.(type) {
	case domain.ScalarValue:
		return string(v)
	case domain.ListValue:
		return strings.Join(v, ", ")
	default:
		return ""
	}
}
