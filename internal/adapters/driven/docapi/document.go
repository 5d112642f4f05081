package docapi

import (
	"encoding/json"
	"time"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// wireCollection is a batch query response.
type wireCollection struct {
	Items []wireDoc `json:"items"`
}

// wireDoc is one document on the wire.
type wireDoc struct {
	Attributes map[string]json.RawMessage `json:"attributes"`
	Links      wireLinks                  `json:"links"`
	Items      []wireDoc                  `json:"items"`
}

type wireLinks struct {
	Profile   []wireLink `json:"profile"`
	Enclosure []wireLink `json:"enclosure"`
}

type wireLink struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

// wireWindow is the validity window attribute shape.
type wireWindow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// toDomain converts a wire document into the domain model. Attribute
// values decode into the typed union: strings become scalars, string
// arrays become lists, from/to objects become windows. The guid and
// published attributes are lifted out; anything undecodable is dropped.
func (w wireDoc) toDomain() domain.Document {
	doc := domain.Document{
		Attributes: make(map[string]domain.AttrValue, len(w.Attributes)),
	}

	if len(w.Links.Profile) > 0 {
		doc.ProfileHref = w.Links.Profile[0].Href
	}
	for _, enc := range w.Links.Enclosure {
		doc.Enclosures = append(doc.Enclosures, domain.Enclosure{
			Href:     enc.Href,
			MIMEType: enc.Type,
		})
	}

	for name, raw := range w.Attributes {
		switch name {
		case "guid":
			var guid string
			if json.Unmarshal(raw, &guid) == nil {
				doc.GUID = guid
			}
			continue
		case "published":
			var published string
			if json.Unmarshal(raw, &published) == nil {
				if t, err := time.Parse(time.RFC3339, published); err == nil {
					doc.Published = t
				}
			}
			continue
		}

		if value, ok := decodeAttr(raw); ok {
			doc.Attributes[name] = value
		}
	}

	for _, item := range w.Items {
		doc.Items = append(doc.Items, item.toDomain())
	}

	return doc
}

// decodeAttr decodes one raw attribute into the value union.
func decodeAttr(raw json.RawMessage) (domain.AttrValue, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return domain.ScalarValue(s), true
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return domain.ListValue(list), true
	}

	var w wireWindow
	if err := json.Unmarshal(raw, &w); err == nil && (w.From != "" || w.To != "") {
		return parseWindow(w), true
	}

	return nil, false
}

func parseWindow(w wireWindow) domain.WindowValue {
	var window domain.WindowValue
	if t, err := time.Parse(time.RFC3339, w.From); err == nil && w.From != "" {
		window.From = &t
	}
	if t, err := time.Parse(time.RFC3339, w.To); err == nil && w.To != "" {
		window.To = &t
	}
	return window
}
