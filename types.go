package jsvalid

import "github.com/reoring/jsvalid/internal/stream"

// Options tunes validation.
type Options struct {
	// MaxDepth bounds how deep the walk follows properties and items. Zero
	// (the default) means unbounded; cyclic schemas are not detected.
	MaxDepth int
}

// NumberMode dictates how decoded numbers are represented.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // float64, same precision as JavaScript numbers.
	NumberJSONNumber                   // Preserve the literal as json.Number.
)

// Severity expresses the severity level for decoding issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOptions bundles decoding options.
type DecodeOptions struct {
	// OnDuplicateKey controls duplicate object keys. With Ignore the last
	// occurrence wins; with Warn the issue is passed to OnIssue.
	OnDuplicateKey Severity
	MaxDepth       int
	MaxBytes       int64
	NumberMode     NumberMode
	// OnIssue receives non-fatal decoding issues.
	OnIssue func(Violation)
}

func (o DecodeOptions) streamOptions() stream.Options {
	opt := stream.Options{MaxDepth: o.MaxDepth}
	switch o.OnDuplicateKey {
	case Error:
		opt.OnDuplicate = stream.DupError
	case Warn:
		opt.OnDuplicate = stream.DupWarn
	default:
		opt.OnDuplicate = stream.DupIgnore
	}
	if o.NumberMode == NumberJSONNumber {
		opt.NumberMode = stream.NumberJSONNumber
	}
	if o.OnIssue != nil {
		sink := o.OnIssue
		opt.IssueSink = func(si stream.SimpleIssue) {
			if si.Code == CodeDuplicateKey && o.OnDuplicateKey == Warn {
				sink(Violation{Path: si.Path, Code: si.Code, Message: si.Message})
			}
		}
	}
	return opt
}
