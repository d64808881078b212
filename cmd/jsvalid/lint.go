package main

import (
	"flag"
	"fmt"
	"io"
)

// lintCmd resolves each schema and reports the first structural problem.
func lintCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var verbose bool
	var crd crdSelector
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	crdFlags(fs, &crd)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	logger := newLogger(stderr, verbose)

	code := exitOK
	for _, name := range fs.Args() {
		schema, err := loadSchema(name, crd, logger)
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", name, err)
			code = exitInvalid
			continue
		}
		logger.Debug("schema ok", "schema", name, "keywords", len(schema))
		fmt.Fprintf(stdout, "%s: ok\n", name)
	}
	return code
}

func crdFlags(fs *flag.FlagSet, crd *crdSelector) {
	fs.StringVar(&crd.kind, "crd-kind", "", "treat the schema file as a CRD bundle and import the CRD with this spec.names.kind")
	fs.StringVar(&crd.name, "crd-name", "", "treat the schema file as a CRD bundle and import the CRD with this metadata.name")
	fs.StringVar(&crd.version, "crd-version", "", "CRD version to import (default: first served)")
}
