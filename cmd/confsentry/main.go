// Package main is the entry point for the confsentry CLI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code.
// 0 = clean (no failures), 1 = failures detected, 2 = error.
func run(args []string) int {
	fs := flag.NewFlagSet("confsentry", flag.ContinueOnError)

	var versionFlag bool
	fs.BoolVar(&versionFlag, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: confsentry <command> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  scan <path>    Validate configuration files under a path\n")
		fmt.Fprintf(os.Stderr, "  watch <path>   Re-validate on every filesystem change\n")
		fmt.Fprintf(os.Stderr, "  serve          Start the MCP editor server on stdio\n")
		fmt.Fprintf(os.Stderr, "  explain <path> Draft remediations for results missing one\n")
		fmt.Fprintf(os.Stderr, "  version        Print version and exit\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if versionFlag {
		printVersion()
		return 0
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return 2
	}

	switch remaining[0] {
	case "scan":
		return runScan(remaining[1:])
	case "watch":
		return runWatch(remaining[1:])
	case "serve":
		return runServe(remaining[1:])
	case "explain":
		return runExplain(remaining[1:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", remaining[0])
		fs.Usage()
		return 2
	}
}

func printVersion() {
	fmt.Printf("confsentry %s (commit: %s, built: %s)\n", version, commit, date)
}

// logger is the ambient structured logger used by every subcommand for
// diagnostics that don't belong on stdout's result stream.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
