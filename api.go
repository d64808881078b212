package jsvalid

import (
	"strings"

	eng "github.com/reoring/jsvalid/internal/engine"
)

// Result is the outcome of one validation call.
type Result struct {
	IsValid bool       `json:"isValid"`
	Errors  Violations `json:"errors"`
}

// Err returns the violations as an error, or nil when the value is valid.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return r.Errors
}

// Validate checks data against an already resolved schema node. It never
// fails: malformed keywords are ignored and unknown types and formats
// match. Callers that need keyword shapes enforced should resolve the schema
// with ParseSchema first.
//
// Sibling properties are checked in JavaScript key order over the map:
// integer-like names ascending, then the remaining names sorted. Declaration
// order in schema text is not kept, so violations for {"b":..,"a":..} list
// "a" before "b".
func Validate(data any, schema map[string]any, opts ...Options) Result {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	vs := fromEngineViolations(eng.Validate(data, schema, eng.Options{MaxDepth: opt.MaxDepth}))
	return Result{IsValid: len(vs) == 0, Errors: vs}
}

// ValidateSource resolves and checks the schema, then validates data. Schema
// problems are returned as errors; data violations are in the Result.
func ValidateSource(schema, data any, opts ...Options) (Result, error) {
	node, err := ParseSchema(schema)
	if err != nil {
		return Result{}, err
	}
	return Validate(data, node, opts...), nil
}

// Outcome is the collapsed pass/fail form returned by Check.
type Outcome struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Check resolves the schema, rejects absent data and validates. Every failure
// is flattened into one message; violations are rendered "<path>: <message>"
// and joined with ",".
func Check(schema, data any) Outcome {
	node, err := ParseSchema(schema)
	if err != nil {
		return Outcome{Error: err.Error()}
	}
	if !eng.Truthy(data) {
		return Outcome{Error: "Data is required"}
	}
	res := Validate(data, node)
	if !res.IsValid {
		return Outcome{Error: strings.Join(res.Errors.Messages(), ",")}
	}
	return Outcome{Valid: true}
}
