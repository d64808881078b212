package engine

import (
	"bytes"
	"fmt"

	"github.com/dlclark/regexp2"
	json "github.com/goccy/go-json"

	"github.com/reoring/jsvalid/internal/path"
)

// Violation codes.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidEnum   = "invalid_enum"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeTooDeep       = "too_deep"
)

// Violation is one failed constraint at a data path.
type Violation struct {
	Path    string
	Code    string
	Message string
}

// Options controls a walk.
type Options struct {
	// MaxDepth bounds schema recursion. Zero means unbounded.
	MaxDepth int
}

// Validate walks data against the schema node and returns violations in
// keyword-check order, depth first.
func Validate(data any, node map[string]any, opt Options) []Violation {
	w := &walker{opt: opt}
	w.validate(data, node, "", 0)
	return w.out
}

// walker owns the accumulator for one Validate call.
type walker struct {
	opt      Options
	out      []Violation
	patterns map[string]*regexp2.Regexp
}

func (w *walker) add(at, code, msg string) {
	w.out = append(w.out, Violation{Path: at, Code: code, Message: msg})
}

// validate checks one node and reports whether it added no violation.
func (w *walker) validate(data any, node map[string]any, p string, depth int) bool {
	start := len(w.out)
	at := path.OrRoot(p)

	if w.opt.MaxDepth > 0 && depth > w.opt.MaxDepth {
		w.add(at, CodeTooDeep, fmt.Sprintf("Maximum validation depth %d exceeded", w.opt.MaxDepth))
		return false
	}

	// type gates everything below
	rawType := node["type"]
	typeName, _ := rawType.(string)
	if truthy(rawType) && !MatchesType(data, typeName) {
		w.add(at, CodeInvalidType, fmt.Sprintf("Expected type %s, got %s", jsString(rawType), typeofName(data)))
		return false
	}

	if req, ok := node["required"]; ok && kindOf(req) == kindArray {
		for i, n := 0, seqLen(req); i < n; i++ {
			name := jsString(seqAt(req, i))
			if kindOf(data) == kindNull || !hasKey(data, name) {
				w.add(path.Field(p, name), CodeRequired, fmt.Sprintf("Missing required property '%s'", name))
			}
		}
	}

	if props, ok := node["properties"].(map[string]any); ok && truthy(data) {
		for _, name := range orderedKeys(props) {
			child, present := lookup(data, name)
			if !present {
				continue
			}
			w.validate(child, asNode(props[name]), path.Field(p, name), depth+1)
		}
	}

	if typeName == "array" && kindOf(data) == kindArray {
		if items, ok := node["items"]; ok && truthy(items) {
			itemNode := asNode(items)
			for i, n := 0, seqLen(data); i < n; i++ {
				w.validate(seqAt(data, i), itemNode, path.Index(p, i), depth+1)
			}
		}
	}

	if enum, ok := node["enum"]; ok && kindOf(enum) == kindArray && !containsEqual(enum, data) {
		w.add(at, CodeInvalidEnum, "Value must be one of the enum values: "+stringify(enum))
	}

	switch typeName {
	case "number", "integer":
		w.checkBounds(data, node, at)
	case "string":
		w.checkString(data, node, at)
	}

	if f, ok := node["format"]; ok && truthy(f) && typeName == "string" {
		format := jsString(f)
		if !MatchesFormat(data, format) {
			w.add(at, CodeInvalidFormat, "Value does not match format: "+format)
		}
	}

	return len(w.out) == start
}

func (w *walker) checkBounds(data any, node map[string]any, at string) {
	d, ok := toNumber(data)
	if !ok {
		return
	}
	if m, ok := numberKeyword(node, "minimum"); ok && d < m {
		w.add(at, CodeTooSmall, fmt.Sprintf("Value %s is less than minimum %s", formatNumber(d), formatNumber(m)))
	}
	if m, ok := numberKeyword(node, "maximum"); ok && d > m {
		w.add(at, CodeTooBig, fmt.Sprintf("Value %s is greater than maximum %s", formatNumber(d), formatNumber(m)))
	}
}

func (w *walker) checkString(data any, node map[string]any, at string) {
	s := toString(data)
	n := utf16Len(s)
	if m, ok := numberKeyword(node, "minLength"); ok && float64(n) < m {
		w.add(at, CodeTooShort, fmt.Sprintf("String length %d is less than minLength %s", n, formatNumber(m)))
	}
	if m, ok := numberKeyword(node, "maxLength"); ok && float64(n) > m {
		w.add(at, CodeTooLong, fmt.Sprintf("String length %d is greater than maxLength %s", n, formatNumber(m)))
	}
	if raw, ok := node["pattern"]; ok && truthy(raw) {
		src := jsString(raw)
		if re := w.pattern(src); re != nil && !matchRegexp(re, s) {
			w.add(at, CodePattern, "String does not match pattern: "+src)
		}
	}
}

// pattern compiles src once per walk. Sources that do not compile are skipped;
// rejecting them is the structure checker's job.
func (w *walker) pattern(src string) *regexp2.Regexp {
	if re, ok := w.patterns[src]; ok {
		return re
	}
	re, err := CompilePattern(src)
	if err != nil {
		re = nil
	}
	if w.patterns == nil {
		w.patterns = make(map[string]*regexp2.Regexp)
	}
	w.patterns[src] = re
	return re
}

// asNode treats anything that is not a mapping as an empty schema.
func asNode(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func numberKeyword(node map[string]any, key string) (float64, bool) {
	v, ok := node[key]
	if !ok || kindOf(v) != kindNumber {
		return 0, false
	}
	return toNumber(v)
}

// stringify renders a value as compact JSON without HTML escaping.
func stringify(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
