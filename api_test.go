package jsvalid_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsvalid"
	"github.com/reoring/jsvalid/jsonschema"
)

func TestValidate_CollectsViolationsInOrder(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"name", "email"},
		"properties": map[string]any{
			"email": map[string]any{"type": "string", "format": "email"},
			"age":   map[string]any{"type": "integer", "minimum": 0.0},
		},
	}

	res := jsvalid.Validate(map[string]any{"email": "bad", "age": -1.0}, schema)

	assert.False(t, res.IsValid)
	assert.Equal(t, jsvalid.Violations{
		{Path: "name", Code: jsvalid.CodeRequired, Message: "Missing required property 'name'"},
		{Path: "age", Code: jsvalid.CodeTooSmall, Message: "Value -1 is less than minimum 0"},
		{Path: "email", Code: jsvalid.CodeInvalidFormat, Message: "Value does not match format: email"},
	}, res.Errors)
	assert.Error(t, res.Err())
}

func TestValidate_PropertyOrderFromSchemaText(t *testing.T) {
	schema, err := jsvalid.ParseSchema(`{"properties":{
		"zeta": {"type": "string"},
		"10":   {"type": "string"},
		"alpha":{"type": "string"},
		"2":    {"type": "string"}
	}}`)
	require.NoError(t, err)

	res := jsvalid.Validate(map[string]any{"zeta": 1.0, "10": 1.0, "alpha": 1.0, "2": 1.0}, schema)

	paths := make([]string, 0, len(res.Errors))
	for _, v := range res.Errors {
		paths = append(paths, v.Path)
	}
	assert.Equal(t, []string{"2", "10", "alpha", "zeta"}, paths)
}

func TestValidate_ValidResultEncodesEmptyErrors(t *testing.T) {
	res := jsvalid.Validate("x", map[string]any{"type": "string"})
	require.True(t, res.IsValid)
	require.NoError(t, res.Err())

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid":true,"errors":[]}`, string(b))
}

func TestValidate_MaxDepth(t *testing.T) {
	schema := map[string]any{"properties": map[string]any{
		"a": map[string]any{"properties": map[string]any{"b": map[string]any{"type": "string"}}},
	}}
	data := map[string]any{"a": map[string]any{"b": 1.0}}

	res := jsvalid.Validate(data, schema, jsvalid.Options{MaxDepth: 1})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, jsvalid.CodeTooDeep, res.Errors[0].Code)
	assert.Equal(t, "a.b", res.Errors[0].Path)

	res = jsvalid.Validate(data, schema)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Expected type string, got number", res.Errors[0].Message)
}

func TestValidateSource(t *testing.T) {
	res, err := jsvalid.ValidateSource(`{"type":"array","items":{"type":"number","minimum":0}}`, []any{1.0, -2.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, jsvalid.Violations{
		{Path: "[1]", Code: jsvalid.CodeTooSmall, Message: "Value -2 is less than minimum 0"},
	}, res.Errors)

	typed := &jsonschema.Schema{Type: "string", MinLength: jsonschema.Ptr(3), MaxLength: jsonschema.Ptr(5)}
	res, err = jsvalid.ValidateSource(typed, "ab")
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "String length 2 is less than minLength 3", res.Errors[0].Message)

	_, err = jsvalid.ValidateSource(`{"minimum":"0"}`, 1.0)
	assert.True(t, jsvalid.IsSchemaError(err))
}

func TestCheck(t *testing.T) {
	schema := `{"type":"object","required":["name","email"],"properties":{"email":{"type":"string","format":"email"}}}`

	tests := []struct {
		name   string
		schema any
		data   any
		want   jsvalid.Outcome
	}{
		{"valid", schema, map[string]any{"name": "x", "email": "a@b.co"}, jsvalid.Outcome{Valid: true}},
		{"violations joined", schema, map[string]any{"email": "bad"}, jsvalid.Outcome{
			Error: "name: Missing required property 'name',email: Value does not match format: email",
		}},
		{"nil data", schema, nil, jsvalid.Outcome{Error: "Data is required"}},
		{"zero data", `{"type":"number"}`, 0.0, jsvalid.Outcome{Error: "Data is required"}},
		{"empty string data", `{}`, "", jsvalid.Outcome{Error: "Data is required"}},
		{"false data", `{}`, false, jsvalid.Outcome{Error: "Data is required"}},
		{"empty object is present", `{"type":"object"}`, map[string]any{}, jsvalid.Outcome{Valid: true}},
		{"schema of wrong type", 42, "x", jsvalid.Outcome{Error: "Schema must be a valid JSON object or string"}},
		{"malformed schema checked before data", `{"required":"name"}`, nil, jsvalid.Outcome{Error: "Required at root must be an array"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, jsvalid.Check(tc.schema, tc.data))
		})
	}
}

func TestCheck_InvalidSchemaJSON(t *testing.T) {
	out := jsvalid.Check(`{"type":`, "x")
	assert.False(t, out.Valid)
	assert.Contains(t, out.Error, "Invalid schema JSON: ")
}

func TestViolations_ErrorSummary(t *testing.T) {
	vs := jsvalid.Violations{
		{Path: "a", Message: "m1"},
		{Path: "b", Message: "m2"},
		{Path: "c", Message: "m3"},
		{Path: "d", Message: "m4"},
	}
	assert.Equal(t, "a: m1; b: m2; c: m3; ... (total 4)", vs.Error())

	got, ok := jsvalid.AsViolations(error(vs))
	require.True(t, ok)
	assert.Len(t, got, 4)

	_, ok = jsvalid.AsViolations(nil)
	assert.False(t, ok)
}
