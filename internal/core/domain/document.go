package domain

import (
	"path"
	"strings"
	"time"
)

// Document represents a remote hypermedia document as fetched from the
// content-distribution API. Documents are ephemeral: they exist for the
// duration of one pull and are discarded after synchronisation.
type Document struct {
	// GUID is the globally unique identifier assigned by the remote API.
	GUID string

	// ProfileHref is the document's profile link. The profile name is the
	// final path segment.
	ProfileHref string

	// Profile is the schema identifier derived from ProfileHref.
	// Populated by the synchroniser; empty on a freshly decoded document.
	Profile string

	// Attributes maps attribute names to typed values.
	// Absence of a key means the attribute was not present remotely.
	Attributes map[string]AttrValue

	// Published is when the document was published remotely.
	Published time.Time

	// Enclosures are the document's attached media links, if any.
	Enclosures []Enclosure

	// Items are embedded sub-documents, in remote order.
	Items []Document

	// Context is an optional caller-supplied value carried through to the
	// resulting record.
	Context any

	// Recursed marks a document that was itself fetched as an embedded
	// item. Its own items are never processed.
	Recursed bool

	// Pulled marks the document as remotely sourced so the resulting
	// record is never pushed back.
	Pulled bool
}

// DeriveProfile returns the profile name encoded in the profile link
// (its final path segment). Returns empty string if there is no link.
func (d *Document) DeriveProfile() string {
	if d.ProfileHref == "" {
		return ""
	}
	return path.Base(strings.TrimSuffix(d.ProfileHref, "/"))
}

// Attr returns the named attribute value and whether it was present.
func (d *Document) Attr(name string) (AttrValue, bool) {
	v, ok := d.Attributes[name]
	return v, ok
}

// Window returns the document's validity window attribute, if declared.
func (d *Document) Window() (WindowValue, bool) {
	v, ok := d.Attributes[AttrValid]
	if !ok {
		return WindowValue{}, false
	}
	w, ok := v.(WindowValue)
	return w, ok
}

// Valid reports whether the document's validity window contains now.
// A document with no window, or no upper bound, is considered valid.
func (d *Document) Valid(now time.Time) bool {
	w, ok := d.Window()
	if !ok {
		return true
	}
	if w.From != nil && now.Before(*w.From) {
		return false
	}
	if w.To != nil && now.After(*w.To) {
		return false
	}
	return true
}

// AttrValid is the attribute name carrying the validity window.
const AttrValid = "valid"

// AttrValue is a typed document attribute value.
// Exactly three kinds exist: scalar, list and validity window.
type AttrValue interface {
	isAttrValue()
}

// ScalarValue is a single text attribute value.
type ScalarValue string

// ListValue is an ordered list attribute value.
type ListValue []string

// WindowValue is a validity window attribute value.
// Nil bounds mean the window is open on that side.
type WindowValue struct {
	From *time.Time
	To   *time.Time
}

func (ScalarValue) isAttrValue() {}
func (ListValue) isAttrValue()   {}
func (WindowValue) isAttrValue() {}

// Enclosure is a document's attached media link.
type Enclosure struct {
	// Href is the remote URL of the media.
	Href string

	// MIMEType is the declared media type.
	MIMEType string
}

// Query holds remote query options for a batch pull.
// Zero-value fields are omitted from the remote query.
type Query struct {
	// Profile restricts results to one profile.
	Profile string

	// Tag restricts results to documents carrying a tag.
	Tag string

	// Text is a free-text search term.
	Text string

	// Limit caps the number of returned documents. Zero means the
	// remote default.
	Limit int
}
