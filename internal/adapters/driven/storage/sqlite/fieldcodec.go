package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/mediapull/internal/core/domain"
)

// fieldJSON is the stored representation of one field value.
// The kind tag discriminates the domain value union.
type fieldJSON struct {
	Kind     string `json:"kind"`
	Value    string `json:"value,omitempty"`
	Format   string `json:"format,omitempty"`
	TermID   string `json:"term_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	Display  bool   `json:"display,omitempty"`
}

const (
	kindText      = "text"
	kindString    = "string"
	kindTerm      = "term"
	kindFileRef   = "file_ref"
	kindEntityRef = "entity_ref"
)

// encodeFields serialises a record's field map to JSON.
func encodeFields(fields map[string][]domain.FieldValue) (string, error) {
	out := make(map[string][]fieldJSON, len(fields))
	for name, values := range fields {
		encoded := make([]fieldJSON, 0, len(values))
		for _, v := range values {
			switch fv := v.(type) {
			case domain.TextValue:
				encoded = append(encoded, fieldJSON{Kind: kindText, Value: fv.Value, Format: fv.Format})
			case domain.StringValue:
				encoded = append(encoded, fieldJSON{Kind: kindString, Value: string(fv)})
			case domain.TermRef:
				encoded = append(encoded, fieldJSON{Kind: kindTerm, TermID: fv.TermID})
			case domain.FileReference:
				encoded = append(encoded, fieldJSON{Kind: kindFileRef, TargetID: fv.TargetID, Display: fv.Display})
			case domain.EntityReference:
				encoded = append(encoded, fieldJSON{Kind: kindEntityRef, TargetID: fv.TargetID})
			default:
				return "", fmt.Errorf("field %s: unknown value kind %T", name, v)
			}
		}
		out[name] = encoded
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshalling fields: %w", err)
	}
	return string(data), nil
}

// decodeFields restores a record's field map from JSON.
func decodeFields(data string) (map[string][]domain.FieldValue, error) {
	if data == "" {
		return map[string][]domain.FieldValue{}, nil
	}

	var raw map[string][]fieldJSON
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}

	fields := make(map[string][]domain.FieldValue, len(raw))
	for name, encoded := range raw {
		values := make([]domain.FieldValue, 0, len(encoded))
		for _, e := range encoded {
			switch e.Kind {
			case kindText:
				values = append(values, domain.TextValue{Value: e.Value, Format: e.Format})
			case kindString:
				values = append(values, domain.StringValue(e.Value))
			case kindTerm:
				values = append(values, domain.TermRef{TermID: e.TermID})
			case kindFileRef:
				values = append(values, domain.FileReference{TargetID: e.TargetID, Display: e.Display})
			case kindEntityRef:
				values = append(values, domain.EntityReference{TargetID: e.TargetID})
			default:
				return nil, fmt.Errorf("field %s: unknown stored kind %q", name, e.Kind)
			}
		}
		fields[name] = values
	}
	return fields, nil
}
