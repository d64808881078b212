// Package stream turns JSON text into the any-trees the validator walks,
// enforcing duplicate-key and nesting limits while tokens are read.
package stream

import (
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface the decoder needs.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// NumberMode dictates how number literals are materialized.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // float64, like JavaScript numbers.
	NumberJSONNumber                   // json.Number, literal text preserved.
)

type numberConv func(string) (any, error)

func floatConv(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	// out-of-range literals become ±Inf, as JSON.parse does
	return f, nil
}

func jsonNumberConv(s string) (any, error) { return json.Number(s), nil }

// DecodeAny builds an any value from the next complete value in src.
func DecodeAny(src TokenSource, mode NumberMode) (any, error) {
	conv := floatConv
	if mode == NumberJSONNumber {
		conv = jsonNumberConv
	}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok, conv)
}

func decodeValue(src TokenSource, tok Token, conv numberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, conv)
	case KindBeginArray:
		return decodeArray(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, conv numberConv) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		v, err := decodeValue(src, vt, conv)
		if err != nil {
			return nil, err
		}
		// last occurrence wins, like JSON.parse
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, conv numberConv) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func eofIsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
