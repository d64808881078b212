package yamlconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`
type: object
required: [name]
properties:
  name:
    type: string
    minLength: 2
  tags:
    type: array
    items: {type: string}
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 2.0},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}, v)
}

func TestDecode_Scalars(t *testing.T) {
	v, err := Decode([]byte(`[1, 2.5, true, null, "x", 2024-01-02]`))
	require.NoError(t, err)

	arr, ok := v.([]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, arr[0])
	assert.Equal(t, 2.5, arr[1])
	assert.Equal(t, true, arr[2])
	assert.Nil(t, arr[3])
	assert.Equal(t, "x", arr[4])
	assert.IsType(t, "", arr[5])
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(""))
	assert.Error(t, err)

	_, err = Decode([]byte("a: 1\n---\nb: 2\n"))
	assert.ErrorContains(t, err, "multiple documents")

	_, err = Decode([]byte("{1: a}"))
	assert.ErrorContains(t, err, "non-string key")

	_, err = Decode([]byte("a: [1"))
	assert.Error(t, err)
}
