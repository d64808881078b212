package kubeopenapi

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsvalid/internal/yamlconv"
)

// ImportYAMLForCRDKind scans a multi-document YAML (e.g., CRD bundle) and imports
// the first CustomResourceDefinition matching the given spec.names.kind.
func ImportYAMLForCRDKind(data []byte, kind string, opts Options) (map[string]any, Diag, error) {
	return importYAMLWhere(data, opts, func(crd map[string]any) bool {
		spec, _ := crd["spec"].(map[string]any)
		names, _ := spec["names"].(map[string]any)
		k, _ := names["kind"].(string)
		return k == kind
	})
}

// ImportYAMLForCRDName scans a multi-document YAML and imports the CRD
// with given metadata.name.
func ImportYAMLForCRDName(data []byte, name string, opts Options) (map[string]any, Diag, error) {
	return importYAMLWhere(data, opts, func(crd map[string]any) bool {
		meta, _ := crd["metadata"].(map[string]any)
		n, _ := meta["name"].(string)
		return n == name
	})
}

func importYAMLWhere(data []byte, opts Options, match func(map[string]any) bool) (map[string]any, Diag, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &simpleDiag{}, err
		}
		nv, err := yamlconv.Normalize(node)
		if err != nil {
			return nil, &simpleDiag{}, err
		}
		m, _ := nv.(map[string]any)
		if m == nil {
			continue
		}
		if k, _ := m["kind"].(string); k != "CustomResourceDefinition" {
			continue
		}
		if match(m) {
			return Import(m, opts)
		}
	}
	return nil, &simpleDiag{}, errors.New("kubeopenapi: CRD not found in YAML bundle")
}
