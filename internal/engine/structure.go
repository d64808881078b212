package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/reoring/jsvalid/internal/path"
)

// StructureIssue describes the first malformed keyword found by
// CheckStructure.
type StructureIssue struct {
	Path    string // dotted schema path, "" at the root
	Keyword string // "" when the node itself is not a mapping
	Reason  string
	Message string
}

// CheckStructure verifies keyword shapes depth first and stops at the first
// problem. A nil result means the schema is usable.
func CheckStructure(node any) *StructureIssue {
	return checkNode(node, "")
}

func checkNode(v any, p string) *StructureIssue {
	node, ok := v.(map[string]any)
	if !ok {
		return structureIssue(p, "", "must be an object")
	}

	if props, ok := node["properties"]; ok && truthy(props) {
		m, ok := props.(map[string]any)
		if !ok {
			return structureIssue(p, "properties", "must be an object")
		}
		for _, name := range orderedKeys(m) {
			if si := checkNode(m[name], path.Field(p, name)); si != nil {
				return si
			}
		}
	}

	if items, ok := node["items"]; ok && truthy(items) {
		if si := checkNode(items, path.Field(p, "items")); si != nil {
			return si
		}
	}

	if req, ok := node["required"]; ok {
		if kindOf(req) != kindArray {
			return structureIssue(p, "required", "must be an array")
		}
		for i, n := 0, seqLen(req); i < n; i++ {
			if kindOf(seqAt(req, i)) != kindString {
				si := structureIssue(p, "required", "items must be strings")
				si.Message = "Required items at " + path.OrRoot(p) + " must be strings"
				return si
			}
		}
	}

	if enum, ok := node["enum"]; ok && kindOf(enum) != kindArray {
		return structureIssue(p, "enum", "must be an array")
	}

	for _, kw := range []string{"minimum", "maximum"} {
		if bound, ok := node[kw]; ok && kindOf(bound) != kindNumber {
			return structureIssue(p, kw, "must be a number")
		}
	}

	for _, kw := range []string{"minLength", "maxLength"} {
		if n, ok := node[kw]; ok && !isNonNegativeInteger(n) {
			return structureIssue(p, kw, "must be a non-negative integer")
		}
	}

	if raw, ok := node["pattern"]; ok {
		src, isString := raw.(string)
		if !isString {
			return structureIssue(p, "pattern", "must be a string")
		}
		if _, err := CompilePattern(src); err != nil {
			si := structureIssue(p, "pattern", err.Error())
			si.Message = fmt.Sprintf("Invalid regex pattern at %s: %s", path.OrRoot(p), src)
			return si
		}
	}

	return nil
}

func structureIssue(p, keyword, reason string) *StructureIssue {
	label := "Schema"
	if keyword != "" {
		label = strings.ToUpper(keyword[:1]) + keyword[1:]
	}
	return &StructureIssue{
		Path:    p,
		Keyword: keyword,
		Reason:  reason,
		Message: fmt.Sprintf("%s at %s %s", label, path.OrRoot(p), reason),
	}
}

func isNonNegativeInteger(v any) bool {
	if kindOf(v) != kindNumber {
		return false
	}
	f, ok := toNumber(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return f == math.Trunc(f) && f >= 0
}
