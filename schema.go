package jsvalid

import (
	"errors"
	"io"

	eng "github.com/reoring/jsvalid/internal/engine"
	"github.com/reoring/jsvalid/internal/stream"
	"github.com/reoring/jsvalid/internal/yamlconv"
	"github.com/reoring/jsvalid/jsonschema"
)

// ParseSchema resolves a schema argument into the map form and checks its
// structure. Accepted inputs are JSON text (string or []byte), an already
// decoded map[string]any and *jsonschema.Schema. Other inputs yield a
// *SchemaTypeError; invalid JSON yields a *SchemaParseError.
func ParseSchema(v any) (map[string]any, error) {
	var parsed any
	switch s := v.(type) {
	case string:
		node, err := decodeSchemaJSON([]byte(s))
		if err != nil {
			return nil, err
		}
		parsed = node
	case []byte:
		node, err := decodeSchemaJSON(s)
		if err != nil {
			return nil, err
		}
		parsed = node
	case map[string]any:
		if s == nil {
			return nil, &SchemaTypeError{Got: v}
		}
		parsed = s
	case *jsonschema.Schema:
		if s == nil {
			return nil, &SchemaTypeError{Got: v}
		}
		m, err := s.Map()
		if err != nil {
			return nil, &SchemaParseError{Err: err}
		}
		parsed = m
	default:
		return nil, &SchemaTypeError{Got: v}
	}

	if err := fromStructureIssue(eng.CheckStructure(parsed)); err != nil {
		return nil, err
	}
	// CheckStructure rejects anything that is not a mapping.
	return parsed.(map[string]any), nil
}

// ParseSchemaYAML resolves a YAML schema document.
func ParseSchemaYAML(data []byte) (map[string]any, error) {
	node, err := yamlconv.Decode(data)
	if err != nil {
		return nil, &SchemaParseError{Err: err}
	}
	if err := fromStructureIssue(eng.CheckStructure(node)); err != nil {
		return nil, err
	}
	return node.(map[string]any), nil
}

// CheckSchemaStructure verifies keyword shapes (properties, items, required,
// enum, numeric and length bounds, pattern) and returns a
// *SchemaStructureError for the first problem found.
func CheckSchemaStructure(node map[string]any) error {
	if node == nil {
		// same as a JSON null
		return fromStructureIssue(eng.CheckStructure(nil))
	}
	return fromStructureIssue(eng.CheckStructure(node))
}

func decodeSchemaJSON(data []byte) (any, error) {
	node, err := stream.DecodeBytes(data, stream.Options{})
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &SchemaParseError{Err: err}
	}
	return node, nil
}
