package stream

import (
	"errors"
	"io"

	"github.com/reoring/jsvalid/internal/path"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a lightweight decode issue.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// Options controls Decode.
type Options struct {
	OnDuplicate DuplicateStrictness
	// MaxDepth caps container nesting; zero disables the check.
	MaxDepth   int
	NumberMode NumberMode
	// IssueSink receives non-fatal issues (duplicate keys in warn mode).
	IssueSink func(SimpleIssue)
}

// Decode reads exactly one JSON value from src under the given limits.
// Trailing data after the value is an error.
func Decode(src TokenSource, opt Options) (any, error) {
	enforced := WrapWithEnforcement(src, opt)
	v, err := DecodeAny(enforced, opt.NumberMode)
	if err != nil {
		return nil, err
	}
	if _, err := enforced.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, IssueError{SimpleIssue{Code: "parse_error", Path: path.Root, Message: "unexpected data after top-level value"}}
	}
	return v, nil
}

type enforceFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces the duplicate key
// policy and maximum nesting depth. Issue paths use the validator's dotted
// notation.
func WrapWithEnforcement(inner TokenSource, opt Options) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   Options
	stack []enforceFrame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	p := e.pathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := enforceFrame{kind: kindArray, path: p}
		if tok.Kind == KindBeginObject {
			f = enforceFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: p}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail(SimpleIssue{Code: "parse_error", Path: path.OrRoot(p), Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
					si := SimpleIssue{Code: "duplicate_key", Path: p, Message: "key '" + tok.String + "' duplicated"}
					if e.opt.OnDuplicate == DupError {
						return Token{}, e.fail(si)
					}
					e.report(si)
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	return tok, nil
}

func (e *enforcingTokenSource) report(si SimpleIssue) {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
}

func (e *enforcingTokenSource) fail(si SimpleIssue) error {
	e.report(si)
	return IssueError{si}
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

// pathForToken computes the address of the value a token starts (or the key
// it names) relative to the document root.
func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return path.Field(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := path.Index(top.path, top.nextIndex)
			top.nextIndex++
			return p
		}
		return path.Field(top.path, top.pendingKey)
	}
	return top.path
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
