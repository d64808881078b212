package stream

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/jsvalid/internal/path"
)

// DecodeBytes is Decode over an in-memory document. The document must be
// syntactically valid JSON before any token is consumed, since the go-json
// token reader does not check where colons and commas go.
func DecodeBytes(b []byte, opt Options) (any, error) {
	if !json.Valid(b) {
		return nil, syntaxError(b)
	}
	return Decode(NewBytes(b), opt)
}

// DecodeReader buffers r and decodes it with DecodeBytes.
func DecodeReader(r io.Reader, opt Options) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b, opt)
}

// syntaxError describes why b failed validation. The token decoder names
// truncation and trailing data more precisely, so it is asked first.
func syntaxError(b []byte) error {
	if _, err := Decode(NewBytes(b), Options{}); err != nil {
		return err
	}
	return IssueError{SimpleIssue{Code: "parse_error", Path: path.Root, Message: "malformed JSON: missing or misplaced delimiter"}}
}
