package core

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/discovery"
	"github.com/confsentry/confsentry/core/parse"
	"github.com/confsentry/confsentry/core/rules"
)

// FileResult holds the parse tree and rule results for a single scanned
// file.
type FileResult struct {
	Path    string
	Forest  []*ast.Node
	Results []rules.Result
}

// FailureCount returns the number of non-passing results, whatever their
// level.
func (fr FileResult) FailureCount() int {
	n := 0
	for _, r := range fr.Results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// ScanResult holds the complete output of a scan pipeline run over a
// workspace.
type ScanResult struct {
	Files []FileResult
	Rules *rules.RuleSet

	// Policy is non-nil when .confsentry.yaml sets policy.fail_on. Callers
	// that want a fail_on-aware exit code should check Policy.Failed
	// instead of counting failing results directly.
	Policy *PolicyResult
}

// PolicyResult records whether a scan breached the configured fail_on
// threshold.
type PolicyResult struct {
	FailOn rules.Level
	Failed bool
}

// levelRank orders rules.Level by severity, most severe first, so
// fail_on thresholds can be compared with >=.
func levelRank(l rules.Level) int {
	switch l {
	case rules.LevelError:
		return 3
	case rules.LevelWarning:
		return 2
	case rules.LevelInfo:
		return 1
	default:
		return 0
	}
}

func evaluatePolicy(failOn string, files []FileResult) *PolicyResult {
	if failOn == "" {
		return nil
	}
	threshold := rules.Level(failOn)
	result := &PolicyResult{FailOn: threshold}
	for _, fr := range files {
		for _, r := range fr.Results {
			if !r.Passed && levelRank(r.Level) >= levelRank(threshold) {
				result.Failed = true
				return result
			}
		}
	}
	return result
}

// ScanOptions holds optional parameters for RunScanWithOptions. The zero
// value means no additional options are applied.
type ScanOptions struct {
	// RulesPath is a path to a YAML file or directory of custom rule
	// packs. When set, rules are loaded and merged with the built-in
	// rules. CLI flags take precedence over .confsentry.yaml values.
	RulesPath string

	// SchemaPath is a path to a YAML file of additional block-starter
	// patterns, prepended before the built-in schema.
	SchemaPath string

	// DisableBuiltins skips the illustrative built-in rule pack, useful
	// when a workspace supplies its own complete rule catalogue.
	DisableBuiltins bool
}

// RunScan executes the full scan pipeline against every configuration
// candidate discovered under target.
func RunScan(target string) (*ScanResult, error) {
	return RunScanWithOptions(target, ScanOptions{})
}

// RunScanWithOptions executes the full scan pipeline with the given
// options. Independent files are scanned concurrently via errgroup, each
// goroutine doing its own parse+run against the same immutable *RuleSet.
func RunScanWithOptions(target string, opts ScanOptions) (*ScanResult, error) {
	cfg, err := LoadScanConfig(target)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	walker := discovery.NewWalker(target)
	walker.IgnorePatterns = append(walker.IgnorePatterns, cfg.Scan.Exclude...)
	candidates, err := walker.Walk()
	if err != nil {
		return nil, fmt.Errorf("discovering configuration files under %s: %w", target, err)
	}

	rs, err := buildRuleSet(target, cfg, opts)
	if err != nil {
		return nil, err
	}

	schema, err := buildSchema(target, cfg, opts)
	if err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(cfg.Scan.Rules.Disable))
	for _, id := range cfg.Scan.Rules.Disable {
		disabled[id] = true
	}

	results := make([]FileResult, len(candidates))

	var g errgroup.Group
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			fr, err := scanFile(c.AbsPath, c.Path, rs, schema)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", c.Path, err)
			}
			fr.Results = filterDisabled(fr.Results, disabled)
			results[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ScanResult{
		Files:  results,
		Rules:  rs,
		Policy: evaluatePolicy(cfg.Policy.FailOn, results),
	}, nil
}

// filterDisabled drops results whose rule id is in the disabled set. Rule
// disabling is applied at result-collection time because RuleSet itself
// exposes no delete operation, only Add/Rules/ByID/HasID.
func filterDisabled(results []rules.Result, disabled map[string]bool) []rules.Result {
	if len(disabled) == 0 {
		return results
	}
	out := results[:0]
	for _, r := range results {
		if !disabled[r.RuleID] {
			out = append(out, r)
		}
	}
	return out
}

// ScanFile parses and evaluates a single file against a rule set and
// schema. It is exported for callers (the MCP editor server) that scan one
// file at a time outside the batch pipeline.
func ScanFile(absPath string, rs *rules.RuleSet, schema *ast.Schema) (FileResult, error) {
	return scanFile(absPath, absPath, rs, schema)
}

// ScanText parses and evaluates in-memory text (no file on disk), used by
// the MCP editor server's {text} input mode.
func ScanText(displayPath, text string, rs *rules.RuleSet, schema *ast.Schema) FileResult {
	forest := parse.Parse(text, parse.Options{Src: ast.SourceSnippet, Schema: schema})
	res := rules.Run(forest, rs)
	return FileResult{Path: displayPath, Forest: forest, Results: res}
}

func scanFile(absPath, displayPath string, rs *rules.RuleSet, schema *ast.Schema) (FileResult, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", absPath, err)
	}
	forest := parse.Parse(string(content), parse.Options{Src: ast.SourceBase, Schema: schema})
	res := rules.Run(forest, rs)
	return FileResult{Path: displayPath, Forest: forest, Results: res}, nil
}

func buildRuleSet(target string, cfg *ScanConfig, opts ScanOptions) (*rules.RuleSet, error) {
	rs := rules.NewRuleSet()
	if !opts.DisableBuiltins {
		for _, r := range rules.BuiltinRules().Rules() {
			rs.Add(r)
		}
	}

	customPath := opts.RulesPath
	if customPath == "" {
		customPath = cfg.Scan.RulesDir
	}
	if customPath == "" {
		return rs, nil
	}
	if !filepath.IsAbs(customPath) {
		customPath = filepath.Join(target, customPath)
	}

	custom, err := loadRulePack(customPath)
	if err != nil {
		return nil, fmt.Errorf("loading custom rules: %w", err)
	}
	for _, r := range custom.Rules() {
		if rs.HasID(r.ID) {
			return nil, fmt.Errorf("custom rule ID %q conflicts with a built-in rule", r.ID)
		}
		rs.Add(r)
	}
	return rs, nil
}

func loadRulePack(path string) (*rules.RuleSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("custom rules path %s: %w", path, err)
	}
	if info.IsDir() {
		return rules.LoadRulePackDir(path)
	}
	return rules.LoadRulePackFile(path)
}

func buildSchema(target string, cfg *ScanConfig, opts ScanOptions) (*ast.Schema, error) {
	schemaPath := opts.SchemaPath
	if schemaPath == "" {
		schemaPath = cfg.Scan.SchemaPath
	}
	if schemaPath == "" {
		return ast.NewDefaultSchema(), nil
	}
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(target, schemaPath)
	}
	schema, err := ast.LoadSchemaYAML(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", schemaPath, err)
	}
	return schema, nil
}
