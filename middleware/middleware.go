// Package middleware validates JSON request bodies against a schema before
// they reach a handler. The net/http adapter lives here; gin and echo
// adapters are separate modules under middleware/gin and middleware/echo.
package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/jsvalid"
)

// ctxKeyDecoded is a typed context key for the decoded request body.
type ctxKeyDecoded struct{}

// decodedBody boxes the body so a JSON null is still found.
type decodedBody struct{ value any }

// ContextWithDecoded attaches the decoded body to the context.
func ContextWithDecoded(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, decodedBody{value: v})
}

// DecodedFromContext retrieves the decoded body from context. ok is true
// whenever a body was stored, including a null one.
func DecodedFromContext(ctx context.Context) (v any, ok bool) {
	b, ok := ctx.Value(ctxKeyDecoded{}).(decodedBody)
	return b.value, ok
}

// DefaultDecodeOptions returns a recommended default for HTTP JSON boundaries.
// - Duplicate keys are errors
// - Bodies are capped at 1 MiB
func DefaultDecodeOptions() jsvalid.DecodeOptions {
	return jsvalid.DecodeOptions{OnDuplicateKey: jsvalid.Error, MaxBytes: 1 << 20}
}

// ErrorPayload shapes violations for JSON responses.
func ErrorPayload(vs jsvalid.Violations) map[string]any {
	if vs == nil {
		vs = jsvalid.Violations{}
	}
	return map[string]any{"issues": vs}
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for rejected requests.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) { v.logger = logger }
}

// WithMaxBytes caps the request body size.
func WithMaxBytes(n int64) Option {
	return func(v *Validator) { v.decode.MaxBytes = n }
}

// WithDecodeOptions replaces the decode options (including MaxBytes).
func WithDecodeOptions(opt jsvalid.DecodeOptions) Option {
	return func(v *Validator) { v.decode = opt }
}

// WithValidateOptions sets the validation options.
func WithValidateOptions(opt jsvalid.Options) Option {
	return func(v *Validator) { v.validate = opt }
}

// Validator holds a resolved schema and the options applied to each body.
// It is safe for concurrent use.
type Validator struct {
	schema   map[string]any
	decode   jsvalid.DecodeOptions
	validate jsvalid.Options
	logger   *slog.Logger
}

// New resolves schema with jsvalid.ParseSchema and returns a Validator.
// Schema errors are returned here rather than per request.
func New(schema any, opts ...Option) (*Validator, error) {
	node, err := jsvalid.ParseSchema(schema)
	if err != nil {
		return nil, err
	}
	v := &Validator{
		schema: node,
		decode: DefaultDecodeOptions(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Check decodes one JSON body and validates it. Decoding problems and data
// violations are both reported as Violations.
func (v *Validator) Check(r io.Reader) (any, jsvalid.Violations) {
	data, err := jsvalid.DecodeJSON(r, v.decode)
	if err != nil {
		vs, _ := jsvalid.AsViolations(err)
		return nil, vs
	}
	res := jsvalid.Validate(data, v.schema, v.validate)
	if !res.IsValid {
		return data, res.Errors
	}
	return data, nil
}

// Logger returns the configured logger.
func (v *Validator) Logger() *slog.Logger { return v.logger }

// Handler wraps next. Invalid bodies get 400 with an ErrorPayload; valid
// ones are stored in the request context (see DecodedFromContext).
func (v *Validator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, vs := v.Check(r.Body)
		if len(vs) > 0 {
			v.logger.Info("request body rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"violations", len(vs),
				"first", vs[0].Path+": "+vs[0].Message)
			WriteError(w, http.StatusBadRequest, vs)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), data)))
	})
}

// WriteError writes an ErrorPayload as JSON.
func WriteError(w http.ResponseWriter, status int, vs jsvalid.Violations) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(ErrorPayload(vs)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
