package jsvalid

import (
	"errors"
	"io"

	"github.com/reoring/jsvalid/internal/path"
	"github.com/reoring/jsvalid/internal/stream"
	"github.com/reoring/jsvalid/internal/yamlconv"
)

// DecodeJSON reads exactly one JSON value from r. The input is buffered and
// its syntax checked before decoding; when MaxBytes is set the size cap is
// enforced while reading. Decoding failures are returned as Violations.
func DecodeJSON(r io.Reader, opts ...DecodeOptions) (any, error) {
	opt := lastDecodeOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := readCapped(r, opt.MaxBytes)
		if err != nil {
			return nil, err
		}
		return decodeFrom(data, opt)
	}
	v, err := stream.DecodeReader(r, opt.streamOptions())
	if err != nil {
		return nil, toViolations(err)
	}
	return v, nil
}

// DecodeJSONBytes is DecodeJSON over an in-memory document.
func DecodeJSONBytes(data []byte, opts ...DecodeOptions) (any, error) {
	opt := lastDecodeOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, singleViolation(CodeTruncated, "max bytes exceeded")
	}
	return decodeFrom(data, opt)
}

// DecodeYAML reads a single YAML document into JSON-like values. Only
// MaxBytes is honored; YAML mappings have no duplicate keys to report.
func DecodeYAML(r io.Reader, opts ...DecodeOptions) (any, error) {
	opt := lastDecodeOpt(opts)
	var data []byte
	var err error
	if opt.MaxBytes > 0 {
		data, err = readCapped(r, opt.MaxBytes)
	} else {
		data, err = io.ReadAll(r)
		if err != nil {
			err = singleViolation(CodeParseError, err.Error())
		}
	}
	if err != nil {
		return nil, err
	}
	v, err := yamlconv.Decode(data)
	if err != nil {
		return nil, singleViolation(CodeParseError, err.Error())
	}
	return v, nil
}

func lastDecodeOpt(opts []DecodeOptions) DecodeOptions {
	if len(opts) == 0 {
		return DecodeOptions{}
	}
	return opts[len(opts)-1]
}

func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, singleViolation(CodeParseError, err.Error())
	}
	if int64(len(data)) > limit {
		return nil, singleViolation(CodeTruncated, "max bytes exceeded")
	}
	return data, nil
}

func decodeFrom(data []byte, opt DecodeOptions) (any, error) {
	v, err := stream.DecodeBytes(data, opt.streamOptions())
	if err != nil {
		return nil, toViolations(err)
	}
	return v, nil
}

func toViolations(err error) Violations {
	if err == nil {
		return nil
	}
	if vs, ok := AsViolations(err); ok {
		return vs
	}
	var ie stream.IssueError
	if errors.As(err, &ie) {
		return Violations{{Path: ie.Path, Code: ie.Code, Message: ie.Message}}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return singleViolation(CodeParseError, "unexpected end of JSON input")
	}
	return singleViolation(CodeParseError, err.Error())
}

func singleViolation(code, msg string) Violations {
	return Violations{{Path: path.Root, Code: code, Message: msg}}
}
