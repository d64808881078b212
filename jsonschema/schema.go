// Package jsonschema provides a typed representation of the schema nodes the
// validator understands. Build a *Schema in Go and pass it to
// jsvalid.ParseSchema, or call Map to obtain the untyped form.
package jsonschema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is one schema node. Zero-valued fields are omitted.
type Schema struct {
	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
	Enum   []any  `json:"enum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// Ptr returns a pointer to v, for the optional bound fields.
func Ptr[T any](v T) *T { return &v }

// Map converts the schema into the map form walked by the validator. Enum
// values are normalized through JSON so typed Go values compare like decoded
// ones. A non-nil empty Enum is kept (it matches nothing).
func (s *Schema) Map() (map[string]any, error) {
	if s == nil {
		return map[string]any{}, nil
	}
	m := make(map[string]any)
	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Format != "" {
		m["format"] = s.Format
	}
	if s.Enum != nil {
		enum, err := normalize(s.Enum)
		if err != nil {
			return nil, fmt.Errorf("enum: %w", err)
		}
		m["enum"] = enum
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, child := range s.Properties {
			cm, err := child.Map()
			if err != nil {
				return nil, fmt.Errorf("properties.%s: %w", name, err)
			}
			props[name] = cm
		}
		m["properties"] = props
	}
	if s.Required != nil {
		req := make([]any, len(s.Required))
		for i, r := range s.Required {
			req[i] = r
		}
		m["required"] = req
	}
	if s.Items != nil {
		im, err := s.Items.Map()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		m["items"] = im
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	if s.MinLength != nil {
		m["minLength"] = float64(*s.MinLength)
	}
	if s.MaxLength != nil {
		m["maxLength"] = float64(*s.MaxLength)
	}
	if s.Pattern != "" {
		m["pattern"] = s.Pattern
	}
	return m, nil
}

func normalize(v []any) ([]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}
