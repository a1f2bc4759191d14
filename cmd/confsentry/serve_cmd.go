package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/rules"
	"github.com/confsentry/confsentry/server"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var (
		allowedPaths string
		rulesPath    string
		schemaPath   string
	)
	fs.StringVar(&allowedPaths, "allowed-paths", "", "comma-separated list of allowed workspace paths")
	fs.StringVar(&rulesPath, "rules", "", "path to a custom rule pack file or directory")
	fs.StringVar(&schemaPath, "schema", "", "path to a block-starter schema extension file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var paths []string
	if allowedPaths != "" {
		for _, p := range strings.Split(allowedPaths, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				paths = append(paths, p)
			}
		}
	}

	rs := rules.BuiltinRules()
	if rulesPath != "" {
		custom, err := loadRulePackPath(rulesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: loading custom rules: %v\n", err)
			return 2
		}
		for _, r := range custom.Rules() {
			rs.Add(r)
		}
	}

	schema := ast.NewDefaultSchema()
	if schemaPath != "" {
		loaded, err := ast.LoadSchemaYAML(schemaPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: loading schema: %v\n", err)
			return 2
		}
		schema = loaded
	}

	srv := server.New(version, paths, rs, schema)
	if err := srv.Serve(); err != nil {
		logger.Error("mcp server failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: MCP server failed: %v\n", err)
		return 2
	}
	return 0
}

func loadRulePackPath(path string) (*rules.RuleSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return rules.LoadRulePackDir(path)
	}
	return rules.LoadRulePackFile(path)
}
