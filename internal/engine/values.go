package engine

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	json "github.com/goccy/go-json"
)

// valueKind classifies Go values by the JSON shape they stand for.
type valueKind int

const (
	kindNull valueKind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
	kindOther
)

// kindOf has fast paths for what the decoders produce and falls back to
// reflection for typed slices, maps and named scalar types.
func kindOf(v any) valueKind {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case string:
		return kindString
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return kindNumber
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	}
	rv, ok := indirect(v)
	if !ok {
		return kindNull
	}
	switch rv.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.String:
		return kindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.Slice, reflect.Array:
		return kindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindObject
		}
	}
	return kindOther
}

// indirect steps through pointers and interfaces. It reports false for nil.
func indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

// toNumber converts any numeric value (or json.Number) to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	}
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	rv, ok := indirect(v)
	return ok && rv.Kind() == reflect.Bool && rv.Bool()
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	rv, ok := indirect(v)
	if ok && rv.Kind() == reflect.String {
		return rv.String()
	}
	return ""
}

// truthy mirrors JavaScript truthiness for JSON values.
func truthy(v any) bool {
	switch kindOf(v) {
	case kindNull:
		return false
	case kindBool:
		return toBool(v)
	case kindNumber:
		f, _ := toNumber(v)
		return f != 0 && !math.IsNaN(f)
	case kindString:
		return toString(v) != ""
	}
	return true
}

// Truthy reports whether v counts as present for the thin pass/fail wrapper:
// nil, false, zero, NaN and "" do not.
func Truthy(v any) bool { return truthy(v) }

// typeofName is the JavaScript typeof result for a JSON value; sequences are
// reported as "array".
func typeofName(v any) string {
	switch kindOf(v) {
	case kindBool:
		return "boolean"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindArray:
		return "array"
	}
	return "object"
}

// utf16Len counts UTF-16 code units, which is what string length bounds use.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ---- sequences ----

func seqLen(v any) int {
	if a, ok := v.([]any); ok {
		return len(a)
	}
	rv, ok := indirect(v)
	if !ok || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return 0
	}
	return rv.Len()
}

func seqAt(v any, i int) any {
	if a, ok := v.([]any); ok {
		return a[i]
	}
	rv, _ := indirect(v)
	return rv.Index(i).Interface()
}

// arrayIndex parses a canonical array index key ("0", "17", never "01").
func arrayIndex(key string) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

// ---- own properties ----

// lookup reads an own data property. Sequences expose their indices and
// "length"; strings expose UTF-16 code units and "length". Scalars have none.
func lookup(v any, key string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		val, ok := m[key]
		return val, ok
	}
	switch kindOf(v) {
	case kindObject:
		rv, _ := indirect(v)
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case kindArray:
		n := seqLen(v)
		if key == "length" {
			return float64(n), true
		}
		if i, ok := arrayIndex(key); ok && i < n {
			return seqAt(v, i), true
		}
	case kindString:
		units := utf16.Encode([]rune(toString(v)))
		if key == "length" {
			return float64(len(units)), true
		}
		if i, ok := arrayIndex(key); ok && i < len(units) {
			return string(utf16.Decode(units[i : i+1])), true
		}
	}
	return nil, false
}

// hasKey is the membership test behind required: mappings by key, sequences
// by index or "length". Scalars never contain a key.
func hasKey(v any, key string) bool {
	switch kindOf(v) {
	case kindObject, kindArray:
		_, ok := lookup(v, key)
		return ok
	}
	return false
}

// ownKeys lists the enumerable own keys of a mapping or sequence. Sequence
// keys are their indices; "length" is not enumerable.
func ownKeys(v any) []string {
	switch kindOf(v) {
	case kindArray:
		n := seqLen(v)
		keys := make([]string, n)
		for i := 0; i < n; i++ {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case kindObject:
		if m, ok := v.(map[string]any); ok {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			return keys
		}
		rv, _ := indirect(v)
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		return keys
	}
	return nil
}

// orderedKeys returns mapping keys in JavaScript property order as far as it
// survives decoding: canonical integer keys ascending, then the rest sorted.
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aInt := arrayIndex(keys[i])
		b, bInt := arrayIndex(keys[j])
		switch {
		case aInt && bInt:
			return a < b
		case aInt != bInt:
			return aInt
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ---- rendering ----

// formatNumber renders a float the way JavaScript's Number#toString does.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// jsString is string interpolation of a JSON value: sequences join with ",",
// mappings become "[object Object]".
func jsString(v any) string {
	switch kindOf(v) {
	case kindNull:
		return "null"
	case kindBool:
		return strconv.FormatBool(toBool(v))
	case kindNumber:
		f, _ := toNumber(v)
		return formatNumber(f)
	case kindString:
		return toString(v)
	case kindArray:
		n := seqLen(v)
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			if e := seqAt(v, i); e != nil {
				parts[i] = jsString(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}
