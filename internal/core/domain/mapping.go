package domain

// FieldUnmapped is the sentinel mapping target that explicitly disables
// a field: the attribute is recognised but deliberately not mapped.
const FieldUnmapped = "-"

// ItemFieldPrefix keys item-reference mapping entries by embedded
// profile, e.g. "item-image".
const ItemFieldPrefix = "item-"

// ItemFieldKey returns the mapping key for an item-reference field.
func ItemFieldKey(profile string) string {
	return ItemFieldPrefix + profile
}

// Target identifies the local record type a profile maps to.
type Target struct {
	// Category is the record kind.
	Category Category

	// Bundle is the named sub-type within the category.
	Bundle string

	// Label is the bundle's label field name (e.g. "title"), empty if
	// the bundle has no label.
	Label string
}

// MappingConfig is the attribute-to-field mapping for one
// (category, bundle, profile) triple.
type MappingConfig struct {
	// Fields maps attribute names (or item-<profile> keys) to local
	// field names. A FieldUnmapped value disables the entry.
	Fields map[string]string
}

// Field returns the mapped local field for an attribute or item key.
// ok is false when the entry is absent or explicitly disabled.
func (m MappingConfig) Field(key string) (string, bool) {
	field, ok := m.Fields[key]
	if !ok || field == "" || field == FieldUnmapped {
		return "", false
	}
	return field, true
}

// AttrKind is the declared type of a profile attribute.
type AttrKind string

const (
	// KindScalar is a single text attribute.
	KindScalar AttrKind = "scalar"

	// KindList is an ordered list attribute.
	KindList AttrKind = "list"

	// KindWindow is a validity window attribute.
	KindWindow AttrKind = "window"

	// KindItem marks an attribute handled by item resolution, never by
	// field mapping.
	KindItem AttrKind = "item"
)

// FieldKind is the capability of a local field.
type FieldKind string

const (
	// FieldText holds formatted or plain text values.
	FieldText FieldKind = "text"

	// FieldTermReference holds taxonomy term references.
	FieldTermReference FieldKind = "term_reference"

	// FieldFileRef holds file-shaped references ({id, display}).
	FieldFileRef FieldKind = "file_reference"

	// FieldEntityRef holds generic record references ({id}).
	FieldEntityRef FieldKind = "entity_reference"
)

// FieldDefinition describes one field configured on a bundle.
type FieldDefinition struct {
	// Name is the field name.
	Name string

	// Kind is the field capability.
	Kind FieldKind

	// Vocabulary is the taxonomy vocabulary for term-reference fields.
	Vocabulary string

	// Default is the configured default value set, applied to fields
	// still unset after mapping. Nil means no default.
	Default []FieldValue
}
