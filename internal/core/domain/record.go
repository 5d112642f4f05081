package domain

import "time"

// Category is the broad record kind. It dictates which timestamp and
// publish-status rules apply during synchronisation.
type Category string

const (
	// CategoryContent is a content-like record (gets a created time and
	// a publish status).
	CategoryContent Category = "content"

	// CategoryFile is a file-like record (gets a timestamp, no publish
	// status).
	CategoryFile Category = "file"
)

// StatusPublished and StatusUnpublished are the publish states for
// content-like records.
const (
	StatusUnpublished = 0
	StatusPublished   = 1
)

// Record is a local content or file record produced by a pull.
// A remote GUID maps to at most one Record; later pulls update the
// existing record in place.
type Record struct {
	// ID is assigned by the entity store on first save.
	ID string

	// Category is the record kind (content or file).
	Category Category

	// Bundle is the named sub-type within the category.
	Bundle string

	// Owner is the pull actor the record is attributed to.
	Owner string

	// CreatedAt is the remote publish time for content-like records.
	CreatedAt time.Time

	// Timestamp is the remote publish time for file-like records.
	Timestamp time.Time

	// ValidFrom and ValidTo bound the record's validity window.
	// Nil means open on that side.
	ValidFrom *time.Time
	ValidTo   *time.Time

	// Status is the publish state (content-like records only).
	Status int

	// Fields maps field names to their values. Fields are multi-valued;
	// a missing or empty slice means the field is unset.
	Fields map[string][]FieldValue

	// File holds enclosure-derived attributes, populated when the
	// document carried an enclosure.
	File FileAttrs

	// GUID is the originating remote identifier.
	GUID string

	// Pulled marks the record as remotely sourced. A pulled record is
	// never re-created, only updated, by later passes.
	Pulled bool

	// Context is the optional caller-supplied value from the pull.
	Context any
}

// FileAttrs are the enclosure-derived attributes of a record.
type FileAttrs struct {
	URI      string
	Filename string
	MIMEType string
	Size     int64
}

// Field returns the values of a named field. Nil when unset.
func (r *Record) Field(name string) []FieldValue {
	return r.Fields[name]
}

// FieldEmpty reports whether a named field has no values.
func (r *Record) FieldEmpty(name string) bool {
	return len(r.Fields[name]) == 0
}

// FieldValue is one value slot of a record field.
// Exactly five kinds exist; fields are ordered lists of values.
type FieldValue interface {
	isFieldValue()
}

// TextValue is a formatted-text value (scalar attributes).
type TextValue struct {
	Value  string
	Format string
}

// StringValue is a plain string value (labels, joined lists).
type StringValue string

// TermRef references a taxonomy term by identifier.
type TermRef struct {
	TermID string
}

// FileReference references a file-like record, file-field shaped.
type FileReference struct {
	TargetID string
	Display  bool
}

// EntityReference references a record by identifier.
type EntityReference struct {
	TargetID string
}

func (TextValue) isFieldValue()       {}
func (StringValue) isFieldValue()     {}
func (TermRef) isFieldValue()         {}
func (FileReference) isFieldValue()   {}
func (EntityReference) isFieldValue() {}

// ReferenceTarget returns the referenced record identifier for
// reference-kind values, and ok=false for every other kind.
func ReferenceTarget(v FieldValue) (string, bool) {
	switch ref := v.(type) {
	case FileReference:
		return ref.TargetID, true
	case EntityReference:
		return ref.TargetID, true
	default:
		return "", false
	}
}
