package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/jsvalid"
)

// fileResult is one validated document.
type fileResult struct {
	File    string             `json:"file"`
	IsValid bool               `json:"isValid"`
	Errors  jsvalid.Violations `json:"errors,omitempty"`
	// Error is set when the document could not be read.
	Error string `json:"error,omitempty"`
}

func validateCmd(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schemaPath  string
		format      string
		concurrency int
		maxDepth    int
		dupKeys     string
		maxBytes    int64
		verbose     bool
		crd         crdSelector
	)
	fs.StringVar(&schemaPath, "schema", "", "schema file (JSON or YAML)")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	fs.IntVar(&concurrency, "concurrency", 4, "number of files validated in parallel")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth for decoding and validation (0 = unbounded)")
	fs.StringVar(&dupKeys, "dup-keys", "ignore", "duplicate object keys: ignore, warn or error")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum document size in bytes (0 = unbounded)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	crdFlags(fs, &crd)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	files := fs.Args()
	if schemaPath == "" || len(files) == 0 || (format != "text" && format != "json") || concurrency < 1 {
		fs.Usage()
		return exitUsage
	}
	dup, err := parseSeverity(dupKeys)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(stderr, verbose)
	schema, err := loadSchema(schemaPath, crd, logger)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", schemaPath, err)
		return exitUsage
	}
	logger.Debug("schema loaded", "schema", schemaPath, "files", len(files), "concurrency", concurrency)

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file := name
			decode := jsvalid.DecodeOptions{
				OnDuplicateKey: dup,
				MaxDepth:       maxDepth,
				MaxBytes:       maxBytes,
				OnIssue: func(v jsvalid.Violation) {
					logger.Warn("duplicate key", "file", file, "path", v.Path)
				},
			}
			start := time.Now()
			results[i] = validateFile(file, stdin, schema, decode, jsvalid.Options{MaxDepth: maxDepth})
			logger.Debug("validated",
				"file", file,
				"valid", results[i].IsValid,
				"violations", len(results[i].Errors),
				"elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	if err := writeResults(stdout, format, results); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	return exitCode(results)
}

func validateFile(name string, stdin io.Reader, schema map[string]any, decode jsvalid.DecodeOptions, opt jsvalid.Options) fileResult {
	res := fileResult{File: name}
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		defer f.Close()
		r = f
	}

	var data any
	var err error
	if isYAML(name) {
		data, err = jsvalid.DecodeYAML(r, decode)
	} else {
		data, err = jsvalid.DecodeJSON(r, decode)
	}
	if err != nil {
		vs, ok := jsvalid.AsViolations(err)
		if !ok {
			res.Error = err.Error()
			return res
		}
		res.Errors = vs
		return res
	}

	out := jsvalid.Validate(data, schema, opt)
	res.IsValid = out.IsValid
	res.Errors = out.Errors
	return res
}

func writeResults(w io.Writer, format string, results []fileResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	}
	for _, r := range results {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s: error: %s\n", r.File, r.Error)
		case r.IsValid:
			fmt.Fprintf(w, "%s: ok\n", r.File)
		default:
			fmt.Fprintf(w, "%s: invalid\n", r.File)
			for _, v := range r.Errors {
				fmt.Fprintf(w, "  %s: %s\n", v.Path, v.Message)
			}
		}
	}
	return nil
}

func exitCode(results []fileResult) int {
	code := exitOK
	for _, r := range results {
		if r.Error != "" {
			return exitUsage
		}
		if !r.IsValid {
			code = exitInvalid
		}
	}
	return code
}
