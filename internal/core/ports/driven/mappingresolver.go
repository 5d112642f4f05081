package driven

import "github.com/custodia-labs/mediapull/internal/core/domain"

// MappingResolver supplies the profile-to-bundle mapping configuration.
// Typically backed by the TOML config file; an admin surface for editing
// mappings is outside this system.
type MappingResolver interface {
	// Resolve returns the target record type for a profile.
	// ok is false when the profile has no configured target.
	Resolve(profile string) (domain.Target, bool)

	// FieldMapping returns the attribute-to-field mapping for a
	// (category, bundle, profile) triple. An empty mapping is valid.
	FieldMapping(category domain.Category, bundle, profile string) domain.MappingConfig

	// AttributeKind returns the declared type of a profile attribute.
	// Defaults to the scalar kind for undeclared attributes.
	AttributeKind(profile, attr string) domain.AttrKind

	// BundleFields returns the field definitions configured on a bundle,
	// keyed by field name.
	BundleFields(category domain.Category, bundle string) map[string]domain.FieldDefinition
}
