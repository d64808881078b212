package kubeopenapi

import "fmt"

// Options controls import behavior for Kubernetes OpenAPI v3 schemas.
type Options struct {
	// Version selects spec.versions[].name when unwrapping a CRD. Empty picks
	// the first served version.
	Version string
	// KeepTypeWhenNullable keeps "type" on nodes marked nullable: true. By
	// default the type is dropped so that null passes.
	KeepTypeWhenNullable bool
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
