package kubeopenapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsvalid"
	"github.com/reoring/jsvalid/kubeopenapi"
)

const bundle = `
apiVersion: v1
kind: ConfigMap
metadata:
  name: unrelated
---
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: widgets.demo.example.com
spec:
  names:
    kind: Widget
  versions:
    - name: v1alpha1
      served: false
      schema:
        openAPIV3Schema:
          type: object
    - name: v1
      served: true
      schema:
        openAPIV3Schema:
          type: object
          required: [spec]
          properties:
            spec:
              type: object
              required: [name]
              additionalProperties: false
              properties:
                name:
                  type: string
                  minLength: 1
                  maxLength: 63
                  pattern: '^[a-z0-9-]+$'
                  description: widget name
                replicas:
                  type: integer
                  format: int32
                  minimum: 0
                  exclusiveMaximum: true
                  maximum: 10
                note:
                  type: string
                  nullable: true
                tags:
                  type: array
                  x-kubernetes-list-type: set
                  items:
                    type: string
                    enum: [a, b]
`

func TestImportYAMLForCRDKind(t *testing.T) {
	schema, diag, err := kubeopenapi.ImportYAMLForCRDKind([]byte(bundle), "Widget", kubeopenapi.Options{})
	require.NoError(t, err)
	require.NoError(t, jsvalid.CheckSchemaStructure(schema))

	assert.Equal(t, []string{
		"spec.note: nullable; type check dropped",
		"spec.replicas: unsupported keywords dropped: exclusiveMaximum",
		"spec: unsupported keywords dropped: additionalProperties",
	}, diag.Warnings())

	ok := map[string]any{"spec": map[string]any{"name": "w-1", "replicas": 3.0, "note": nil, "tags": []any{"a"}}}
	assert.True(t, jsvalid.Validate(ok, schema).IsValid)

	bad := map[string]any{"spec": map[string]any{"name": "W", "replicas": 11.0, "tags": []any{"c"}}}
	res := jsvalid.Validate(bad, schema)
	assert.Equal(t, []string{
		"spec.name: String does not match pattern: ^[a-z0-9-]+$",
		"spec.replicas: Value 11 is greater than maximum 10",
		"spec.tags[0]: Value must be one of the enum values: [\"a\",\"b\"]",
	}, res.Errors.Messages())
}

func TestImportYAMLForCRDName_Version(t *testing.T) {
	schema, _, err := kubeopenapi.ImportYAMLForCRDName([]byte(bundle), "widgets.demo.example.com", kubeopenapi.Options{Version: "v1alpha1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "object"}, schema)

	_, _, err = kubeopenapi.ImportYAMLForCRDName([]byte(bundle), "widgets.demo.example.com", kubeopenapi.Options{Version: "v2"})
	assert.ErrorContains(t, err, `version "v2" not found`)

	_, _, err = kubeopenapi.ImportYAMLForCRDKind([]byte(bundle), "Gadget", kubeopenapi.Options{})
	assert.ErrorContains(t, err, "CRD not found")
}

func TestImport_KeepTypeWhenNullable(t *testing.T) {
	schema, diag, err := kubeopenapi.Import(map[string]any{
		"openAPIV3Schema": map[string]any{"type": "string", "nullable": true},
	}, kubeopenapi.Options{KeepTypeWhenNullable: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "string"}, schema)
	assert.False(t, diag.HasWarnings())
}

func TestImport_JSONBytes(t *testing.T) {
	schema, diag, err := kubeopenapi.Import([]byte(`{"type":"object","properties":{"a":{"oneOf":[{"type":"string"}]}}}`), kubeopenapi.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "object", "properties": map[string]any{"a": map[string]any{}}}, schema)
	assert.Equal(t, []string{"a: unsupported keywords dropped: oneOf"}, diag.Warnings())

	_, _, err = kubeopenapi.Import(nil, kubeopenapi.Options{})
	assert.Error(t, err)
	_, _, err = kubeopenapi.Import([]byte(`{`), kubeopenapi.Options{})
	assert.Error(t, err)
}
