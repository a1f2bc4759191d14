package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/confsentry/confsentry/core"
	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/report"
	"github.com/confsentry/confsentry/core/report/sarif"
	"github.com/confsentry/confsentry/core/rules"
)

func runScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)

	var (
		formatFlag      string
		outputDir       string
		rulesPath       string
		schemaPath      string
		disableBuiltins bool
		astFlag         bool
		quiet           bool
		verbose         bool
	)

	fs.StringVar(&formatFlag, "format", "", "output formats: json,sarif,all (comma-separated) (default: json, or config's output.format)")
	fs.StringVar(&outputDir, "output", "", "output directory for report files (default: ., or config's output.directory)")
	fs.StringVar(&rulesPath, "rules", "", "path to a custom rule pack file or directory")
	fs.StringVar(&schemaPath, "schema", "", "path to a block-starter schema extension file")
	fs.BoolVar(&disableBuiltins, "disable-builtins", false, "skip the built-in rule pack")
	fs.BoolVar(&astFlag, "ast", false, "dump the parsed tree for each file instead of reports")
	fs.BoolVar(&quiet, "quiet", false, "suppress all output except errors")
	fs.BoolVar(&quiet, "q", false, "suppress all output except errors (shorthand)")
	fs.BoolVar(&verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&verbose, "v", false, "enable verbose output (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: confsentry scan <path> [flags]")
		return 2
	}
	target := fs.Arg(0)

	cfg, err := core.LoadScanConfig(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		return 2
	}
	if formatFlag == "" {
		formatFlag = cfg.Output.Format
	}
	if formatFlag == "" {
		formatFlag = "json"
	}
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}
	if outputDir == "" {
		outputDir = "."
	}

	if !quiet {
		fmt.Printf("confsentry %s — scanning %s\n", version, target)
	}

	result, err := core.RunScanWithOptions(target, core.ScanOptions{
		RulesPath:       rulesPath,
		SchemaPath:      schemaPath,
		DisableBuiltins: disableBuiltins,
	})
	if err != nil {
		logger.Error("scan failed", "target", target, "error", err)
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}

	if astFlag {
		return dumpAST(result)
	}

	failures := 0
	for _, fr := range result.Files {
		failures += fr.FailureCount()
	}

	if !quiet {
		fmt.Printf("[results] %d file(s), %d failing result(s)\n", len(result.Files), failures)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating output directory: %v\n", err)
		return 2
	}

	allResults := flattenResults(result)

	for _, format := range parseFormats(formatFlag) {
		switch format {
		case "json":
			path := filepath.Join(outputDir, "results.json")
			r := report.NewJSONReporter(version)
			if err := r.WriteToFile(allResults, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", path, err)
				return 2
			}
			if verbose {
				fmt.Printf("[report] wrote %s\n", path)
			}

		case "sarif":
			path := filepath.Join(outputDir, "results.sarif")
			r := sarif.NewReporter(version, result.Rules, target)
			if err := r.WriteToFile(allResults, path); err != nil {
				fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", path, err)
				return 2
			}
			if verbose {
				fmt.Printf("[report] wrote %s\n", path)
			}
		}
	}

	if !quiet {
		fmt.Println("[done]")
	}

	if result.Policy != nil {
		if result.Policy.Failed {
			return 1
		}
		return 0
	}
	if failures > 0 {
		return 1
	}
	return 0
}

func dumpAST(result *core.ScanResult) int {
	for _, fr := range result.Files {
		data, err := ast.MarshalForest(fr.Forest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: marshalling ast for %s: %v\n", fr.Path, err)
			return 2
		}
		fmt.Printf("=== %s ===\n%s\n", fr.Path, data)
	}
	return 0
}

// flattenResults gathers every file's results into a single slice for the
// report emitters, which operate over an unscoped []rules.Result.
func flattenResults(result *core.ScanResult) []rules.Result {
	var out []rules.Result
	for _, fr := range result.Files {
		out = append(out, fr.Results...)
	}
	return out
}

// parseFormats splits the comma-separated format flag into individual
// format strings. "all" expands to every supported format.
func parseFormats(flagVal string) []string {
	if flagVal == "all" {
		return []string{"json", "sarif"}
	}

	var formats []string
	for _, f := range strings.Split(flagVal, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{"json"}
	}
	return formats
}
