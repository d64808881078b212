// Package kubeopenapi imports Kubernetes OpenAPI v3 schemas (for example the
// openAPIV3Schema of a CustomResourceDefinition) as jsvalid schema nodes.
// Keywords the validator does not understand are dropped and reported as
// warnings.
package kubeopenapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/jsvalid/internal/path"
)

// kept lists the keywords carried over verbatim.
var kept = map[string]bool{
	"type": true, "format": true, "enum": true, "required": true,
	"minimum": true, "maximum": true, "minLength": true, "maxLength": true, "pattern": true,
}

// silent lists annotations dropped without a warning.
var silent = map[string]bool{
	"description": true, "title": true, "default": true, "example": true, "nullable": true,
	"x-kubernetes-preserve-unknown-fields": true, "x-kubernetes-embedded-resource": true,
	"x-kubernetes-int-or-string": true, "x-kubernetes-list-type": true, "x-kubernetes-list-map-keys": true,
	"x-kubernetes-map-type": true,
}

// Import projects an OpenAPI v3 schema onto the validator's keyword set. The
// input can be a decoded map[string]any or raw JSON bytes holding a bare
// schema, an object with openAPIV3Schema, or a whole CRD.
func Import(schema any, opts Options) (map[string]any, Diag, error) {
	d := &simpleDiag{}
	if schema == nil {
		return nil, d, errors.New("kubeopenapi: nil schema")
	}
	var root map[string]any
	switch t := schema.(type) {
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, d, fmt.Errorf("kubeopenapi: invalid JSON: %w", err)
		}
	case map[string]any:
		root = t
	default:
		return nil, d, fmt.Errorf("kubeopenapi: unsupported input %T", schema)
	}

	// Accept direct schema (openAPIV3Schema) or unwrap CRD root (spec.versions[].schema.openAPIV3Schema)
	if spec, ok := root["openAPIV3Schema"].(map[string]any); ok {
		root = spec
	} else if unwrapped, err := unwrapCRDSchema(root, opts.Version); err != nil {
		return nil, d, err
	} else if unwrapped != nil {
		root = unwrapped
	}

	return project(root, "", opts, d), d, nil
}

// unwrapCRDSchema extracts openAPIV3Schema from a CRD document. It looks for
// spec.versions[].schema.openAPIV3Schema (preferring served=true), then falls
// back to spec.validation.openAPIV3Schema for legacy CRDs.
func unwrapCRDSchema(root map[string]any, version string) (map[string]any, error) {
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return nil, nil
	}
	if vers, ok := spec["versions"].([]any); ok {
		var firstFound map[string]any
		for _, v := range vers {
			vm, _ := v.(map[string]any)
			if vm == nil {
				continue
			}
			oas := versionSchema(vm)
			if oas == nil {
				continue
			}
			if version != "" {
				if name, _ := vm["name"].(string); name == version {
					return oas, nil
				}
				continue
			}
			served := true
			if sv, ok := vm["served"].(bool); ok {
				served = sv
			}
			if served {
				return oas, nil
			}
			if firstFound == nil {
				firstFound = oas
			}
		}
		if version != "" {
			return nil, fmt.Errorf("kubeopenapi: version %q not found", version)
		}
		if firstFound != nil {
			return firstFound, nil
		}
	}
	// legacy: spec.validation.openAPIV3Schema
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas, nil
		}
	}
	return nil, nil
}

func versionSchema(vm map[string]any) map[string]any {
	sch, _ := vm["schema"].(map[string]any)
	oas, _ := sch["openAPIV3Schema"].(map[string]any)
	return oas
}

func project(doc map[string]any, p string, opts Options, d *simpleDiag) map[string]any {
	out := make(map[string]any)
	var dropped []string
	for _, k := range sortedKeys(doc) {
		v := doc[k]
		switch {
		case kept[k]:
			out[k] = v
		case k == "properties":
			props, ok := v.(map[string]any)
			if !ok {
				dropped = append(dropped, k)
				continue
			}
			pm := make(map[string]any, len(props))
			for _, name := range sortedKeys(props) {
				child := props[name]
				cm, ok := child.(map[string]any)
				if !ok {
					d.warnf("%s: property schema is not an object; using {}", path.OrRoot(path.Field(p, name)))
					cm = map[string]any{}
				}
				pm[name] = project(cm, path.Field(p, name), opts, d)
			}
			out[k] = pm
		case k == "items":
			im, ok := v.(map[string]any)
			if !ok {
				dropped = append(dropped, k)
				continue
			}
			out[k] = project(im, path.Field(p, "items"), opts, d)
		case silent[k]:
		default:
			dropped = append(dropped, k)
		}
	}
	if nullable, _ := doc["nullable"].(bool); nullable && !opts.KeepTypeWhenNullable {
		if _, ok := out["type"]; ok {
			delete(out, "type")
			d.warnf("%s: nullable; type check dropped", path.OrRoot(p))
		}
	}
	if len(dropped) > 0 {
		sort.Strings(dropped)
		d.warnf("%s: unsupported keywords dropped: %s", path.OrRoot(p), strings.Join(dropped, ", "))
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
