package stream

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// source adapts a go-json Decoder to TokenSource, telling object keys apart
// from string values.
type source struct {
	dec   *json.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into a TokenSource backed by go-json.
func NewReader(r io.Reader) TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a TokenSource backed by go-json.
func NewBytes(b []byte) TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return Token{Kind: KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: -1}, nil
		case ']':
			s.pop()
			return Token{Kind: KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return Token{Kind: KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: -1}, nil
	case json.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.valueDone()
	return Token{Kind: KindNull, Offset: -1}, nil
}

// pop closes a container; the enclosing object then expects a key again.
func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return -1 }
