// Command structdiff compares two YAML or JSON documents structurally and
// prints a diff report on mismatch. Exit status is 0 when the documents
// match, 1 when they differ, 2 on usage or read errors.
package main

import (
	"flag"
	"fmt"
	"os"

	yaml "github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/speakeasy-api/structdiff"
	"github.com/speakeasy-api/structdiff/pkg/difffmt"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("structdiff", flag.ContinueOnError)
	margin := fs.Float64("margin", 0, "tolerance for approximate numeric equality (0 with -approx means machine epsilon)")
	approx := fs.Bool("approx", false, "compare finite numbers approximately")
	unordered := fs.Bool("unordered", false, "ignore document key order (keys are sorted while loading)")
	quiet := fs.Bool("quiet", false, "suppress output, report via exit status only")
	debug := fs.Bool("debug", false, "trace the comparison on stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: structdiff [flags] actual.yaml expected.yaml")
		fs.PrintDefaults()
		return 2
	}

	actual, err := loadDocument(fs.Arg(0), *unordered)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	expected, err := loadDocument(fs.Arg(1), *unordered)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := structdiff.DefaultOptions()
	if *approx || *margin > 0 {
		opts.UseMargin = true
		opts.Margin = *margin
	}
	if *debug {
		opts.Logger = structdiff.NewLogger(structdiff.LevelDebug, os.Stderr)
	}

	res := structdiff.Equals(actual, expected, opts)
	if res.Equal {
		if !*quiet {
			fmt.Println("documents match")
		}
		return 0
	}
	if !*quiet {
		cfg := difffmt.Config{
			Color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
			Opts:  opts,
		}
		fmt.Print(difffmt.Report(actual, expected, res, cfg))
	}
	return 1
}

// loadDocument reads one YAML (or JSON) document. By default mapping order
// is preserved; with unordered set, the document is decoded into plain Go
// values and keys are sorted, so two documents differing only in key order
// render identically.
func loadDocument(path string, unordered bool) (structdiff.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return structdiff.Value{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if unordered {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return structdiff.Value{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return structdiff.FromGo(doc), nil
	}
	v, err := structdiff.FromYAML(data)
	if err != nil {
		return structdiff.Value{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}
