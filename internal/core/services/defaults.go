package services

import "github.com/custodia-labs/mediapull/internal/core/domain"

// fillDefaults back-fills configured default values into every bundle
// field still unset after mapping and item resolution. A mapped value
// is never overwritten. Each field's default value set runs through the
// default-value hooks, in order, before assignment.
func (s *Synchronizer) fillDefaults(b *domain.RecordBuilder, fields map[string]domain.FieldDefinition) {
	for name, def := range fields {
		if !b.FieldEmpty(name) {
			continue
		}

		values := append([]domain.FieldValue(nil), def.Default...)
		for _, hook := range s.defaultHooks {
			values = hook(name, values)
		}
		if len(values) > 0 {
			b.SetField(name, values...)
		}
	}
}
