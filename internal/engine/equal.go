package engine

import (
	"reflect"
	"slices"
)

// DeepEqual compares two JSON values the way enum membership needs: identical
// primitives are equal, and two mappings or sequences are equal when they have
// the same own-key set and every key's values are DeepEqual.
//
// Sequences are not special-cased. Their keys are their indices, so a
// sequence can equal a mapping with keys "0".."n-1".
func DeepEqual(a, b any) bool {
	if strictEqual(a, b) {
		return true
	}
	if !objectLike(a) || !objectLike(b) {
		return false
	}
	keysA := ownKeys(a)
	keysB := ownKeys(b)
	if len(keysA) != len(keysB) {
		return false
	}
	for _, k := range keysA {
		if !slices.Contains(keysB, k) {
			return false
		}
		va, _ := lookup(a, k)
		vb, _ := lookup(b, k)
		if !DeepEqual(va, vb) {
			return false
		}
	}
	return true
}

func objectLike(v any) bool {
	k := kindOf(v)
	return k == kindObject || k == kindArray
}

// strictEqual is identity: equal primitives, or the same mapping/sequence.
func strictEqual(a, b any) bool {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case kindNull:
		return true
	case kindBool:
		return toBool(a) == toBool(b)
	case kindNumber:
		fa, _ := toNumber(a)
		fb, _ := toNumber(b)
		return fa == fb
	case kindString:
		return toString(a) == toString(b)
	case kindObject, kindArray:
		return sameReference(a, b)
	}
	return false
}

func sameReference(a, b any) bool {
	ra, okA := indirect(a)
	rb, okB := indirect(b)
	if !okA || !okB || ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map:
		return ra.UnsafePointer() == rb.UnsafePointer()
	case reflect.Slice:
		return ra.Len() == rb.Len() && ra.UnsafePointer() == rb.UnsafePointer()
	}
	return false
}

// containsEqual reports whether any element of the sequence enum is DeepEqual
// to v.
func containsEqual(enum any, v any) bool {
	for i, n := 0, seqLen(enum); i < n; i++ {
		if DeepEqual(seqAt(enum, i), v) {
			return true
		}
	}
	return false
}
