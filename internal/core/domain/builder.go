package domain

import "time"

// RecordBuilder accumulates field values and record attributes, then
// produces a snapshot handed to the entity store in a single save.
// It replaces ad hoc incremental mutation of a half-built record.
type RecordBuilder struct {
	rec Record
}

// NewRecordBuilder starts a builder for a fresh record.
func NewRecordBuilder(category Category, bundle string) *RecordBuilder {
	return &RecordBuilder{
		rec: Record{
			Category: category,
			Bundle:   bundle,
			Fields:   make(map[string][]FieldValue),
		},
	}
}

// BuildFrom starts a builder seeded from an existing record, for
// update-in-place synchronisation. The existing field map is copied so
// the source record is not mutated.
func BuildFrom(rec *Record) *RecordBuilder {
	b := &RecordBuilder{rec: *rec}
	b.rec.Fields = make(map[string][]FieldValue, len(rec.Fields))
	for name, values := range rec.Fields {
		b.rec.Fields[name] = append([]FieldValue(nil), values...)
	}
	return b
}

// Owner sets the owning pull actor.
func (b *RecordBuilder) Owner(owner string) *RecordBuilder {
	b.rec.Owner = owner
	return b
}

// GUID sets the originating remote identifier.
func (b *RecordBuilder) GUID(guid string) *RecordBuilder {
	b.rec.GUID = guid
	return b
}

// Pulled marks the record as remotely sourced.
func (b *RecordBuilder) Pulled() *RecordBuilder {
	b.rec.Pulled = true
	return b
}

// CreatedAt sets the content-like creation time.
func (b *RecordBuilder) CreatedAt(t time.Time) *RecordBuilder {
	b.rec.CreatedAt = t
	return b
}

// Timestamp sets the file-like timestamp.
func (b *RecordBuilder) Timestamp(t time.Time) *RecordBuilder {
	b.rec.Timestamp = t
	return b
}

// Window sets the validity window bounds.
func (b *RecordBuilder) Window(from, to *time.Time) *RecordBuilder {
	b.rec.ValidFrom = from
	b.rec.ValidTo = to
	return b
}

// Status sets the publish state.
func (b *RecordBuilder) Status(status int) *RecordBuilder {
	b.rec.Status = status
	return b
}

// Context attaches the caller-supplied context value.
func (b *RecordBuilder) Context(ctx any) *RecordBuilder {
	b.rec.Context = ctx
	return b
}

// SetField replaces a field's values.
func (b *RecordBuilder) SetField(name string, values ...FieldValue) *RecordBuilder {
	b.rec.Fields[name] = values
	return b
}

// AppendField appends one value to a field.
func (b *RecordBuilder) AppendField(name string, v FieldValue) *RecordBuilder {
	b.rec.Fields[name] = append(b.rec.Fields[name], v)
	return b
}

// Field returns the current values of a field. Nil when unset.
func (b *RecordBuilder) Field(name string) []FieldValue {
	return b.rec.Fields[name]
}

// FieldEmpty reports whether a field currently has no values.
func (b *RecordBuilder) FieldEmpty(name string) bool {
	return len(b.rec.Fields[name]) == 0
}

// References reports whether a field already contains a reference to
// the given target identifier.
func (b *RecordBuilder) References(field, targetID string) bool {
	for _, v := range b.rec.Fields[field] {
		if id, ok := ReferenceTarget(v); ok && id == targetID {
			return true
		}
	}
	return false
}

// MergeFile overlays enclosure-derived attributes onto the record:
// values already set on the record win, the file supplies the rest.
func (b *RecordBuilder) MergeFile(f *FileRecord) *RecordBuilder {
	if b.rec.File.URI == "" {
		b.rec.File.URI = f.URI
	}
	if b.rec.File.Filename == "" {
		b.rec.File.Filename = f.Filename
	}
	if b.rec.File.MIMEType == "" {
		b.rec.File.MIMEType = f.MIMEType
	}
	if b.rec.File.Size == 0 {
		b.rec.File.Size = f.Size
	}
	if b.rec.Owner == "" {
		b.rec.Owner = f.Owner
	}
	if b.rec.GUID == "" {
		b.rec.GUID = f.GUID
	}
	if b.rec.Status == 0 {
		b.rec.Status = f.Status
	}
	return b
}

// Build returns the assembled record snapshot.
func (b *RecordBuilder) Build() *Record {
	rec := b.rec
	rec.Fields = make(map[string][]FieldValue, len(b.rec.Fields))
	for name, values := range b.rec.Fields {
		rec.Fields[name] = append([]FieldValue(nil), values...)
	}
	return &rec
}
