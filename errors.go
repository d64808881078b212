package jsvalid

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/reoring/jsvalid/internal/engine"
	"github.com/reoring/jsvalid/internal/path"
)

// Violation codes (exported consts for IDE completion and type safety).
const (
	CodeInvalidType   = eng.CodeInvalidType
	CodeRequired      = eng.CodeRequired
	CodeInvalidEnum   = eng.CodeInvalidEnum
	CodeTooSmall      = eng.CodeTooSmall
	CodeTooBig        = eng.CodeTooBig
	CodeTooShort      = eng.CodeTooShort
	CodeTooLong       = eng.CodeTooLong
	CodePattern       = eng.CodePattern
	CodeInvalidFormat = eng.CodeInvalidFormat
	CodeTooDeep       = eng.CodeTooDeep
	// Decoding
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Violation is a single failed constraint.
type Violation struct {
	// Path addresses the offending value, e.g. "items[2].price". Node-level
	// violations at the top are reported at "root"; missing top-level
	// properties use the bare property name.
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Violations is an ordered collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", vs[i].Path, vs[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages renders each violation as "<path>: <message>".
func (vs Violations) Messages() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Path + ": " + v.Message
	}
	return out
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

func fromEngineViolations(in []eng.Violation) Violations {
	out := make(Violations, len(in))
	for i, v := range in {
		out[i] = Violation{Path: v.Path, Code: v.Code, Message: v.Message}
	}
	return out
}

// ---- schema errors ----

// SchemaParseError reports schema text that is not valid JSON (or YAML).
type SchemaParseError struct {
	Err error
}

func (e *SchemaParseError) Error() string { return "Invalid schema JSON: " + e.Err.Error() }
func (e *SchemaParseError) Unwrap() error { return e.Err }

// SchemaTypeError reports a schema argument that is neither text nor an
// object.
type SchemaTypeError struct {
	Got any
}

func (e *SchemaTypeError) Error() string { return "Schema must be a valid JSON object or string" }

// SchemaStructureError reports the first malformed keyword found in a schema.
type SchemaStructureError struct {
	// Path is the schema location in dotted form ("" for the root,
	// "user.items" for the items schema of property user).
	Path    string
	Keyword string
	Reason  string
	msg     string
}

func (e *SchemaStructureError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("%s at %s: %s", e.Keyword, path.OrRoot(e.Path), e.Reason)
}

func fromStructureIssue(si *eng.StructureIssue) error {
	if si == nil {
		return nil
	}
	return &SchemaStructureError{Path: si.Path, Keyword: si.Keyword, Reason: si.Reason, msg: si.Message}
}

// IsSchemaError reports whether err means validation could not be attempted
// because the schema itself was unusable.
func IsSchemaError(err error) bool {
	var pe *SchemaParseError
	var te *SchemaTypeError
	var se *SchemaStructureError
	return errors.As(err, &pe) || errors.As(err, &te) || errors.As(err, &se)
}
