package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/reoring/jsvalid"
	"github.com/reoring/jsvalid/kubeopenapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(ctx, args[1:], stdin, stdout, stderr)
	case "lint":
		return lintCmd(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "jsvalid CLI\n\nUsage:\n  jsvalid validate -schema schema.json [-format text|json] [-concurrency N] [-max-depth N] [-dup-keys ignore|warn|error] [-max-bytes N] [-crd-kind K | -crd-name N [-crd-version V]] [-v] file... ('-' reads stdin)\n  jsvalid lint [-crd-kind K | -crd-name N [-crd-version V]] [-v] schema...\n\nNotes:\n  - Files ending in .yaml or .yml are read as YAML.\n  - Exit status is 1 when any document is invalid, 2 on usage or schema errors.")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// crdSelector picks a CustomResourceDefinition out of a YAML bundle. The
// zero value means the schema file is a plain schema.
type crdSelector struct {
	kind    string
	name    string
	version string
}

func (c crdSelector) enabled() bool { return c.kind != "" || c.name != "" }

// loadSchema reads and resolves a schema file.
func loadSchema(name string, crd crdSelector, logger *slog.Logger) (map[string]any, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if crd.enabled() {
		opts := kubeopenapi.Options{Version: crd.version}
		var schema map[string]any
		var diag kubeopenapi.Diag
		if crd.kind != "" {
			schema, diag, err = kubeopenapi.ImportYAMLForCRDKind(data, crd.kind, opts)
		} else {
			schema, diag, err = kubeopenapi.ImportYAMLForCRDName(data, crd.name, opts)
		}
		if err != nil {
			return nil, err
		}
		for _, w := range diag.Warnings() {
			logger.Warn("crd import", "schema", name, "warning", w)
		}
		return schema, jsvalid.CheckSchemaStructure(schema)
	}
	if isYAML(name) {
		return jsvalid.ParseSchemaYAML(data)
	}
	return jsvalid.ParseSchema(data)
}

func parseSeverity(s string) (jsvalid.Severity, error) {
	switch strings.ToLower(s) {
	case "ignore", "":
		return jsvalid.Ignore, nil
	case "warn":
		return jsvalid.Warn, nil
	case "error":
		return jsvalid.Error, nil
	}
	return 0, fmt.Errorf("invalid -dup-keys %q (want ignore|warn|error)", s)
}
