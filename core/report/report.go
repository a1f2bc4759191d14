// Package report serializes rule evaluation results to output formats.
// The primary implementation is JSONReporter, which produces a
// deterministic JSON report suitable for CI pipelines and downstream
// tooling.
package report

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/confsentry/confsentry/core/rules"
)

// Reporter defines the contract for serializing a slice of rule results into
// a byte representation. Each output format (JSON, SARIF) implements this
// interface.
type Reporter interface {
	Generate(results []rules.Result) ([]byte, error)
}

// Meta contains metadata about the report itself, including schema
// version, generation timestamp, and tool identification.
type Meta struct {
	SchemaVersion string `json:"schema_version"`
	GeneratedAt   string `json:"generated_at"`
	ToolName      string `json:"tool_name"`
	ToolVersion   string `json:"tool_version"`
}

// JSONReport is the top-level structure serialized to JSON. It pairs report
// metadata with the ordered list of results.
type JSONReport struct {
	Meta    Meta           `json:"meta"`
	Results []rules.Result `json:"results"`
}

// JSONReporter produces deterministic JSON output from a slice of results.
type JSONReporter struct {
	ToolVersion string
}

// NewJSONReporter returns a JSONReporter configured with the given tool
// version string. The version is embedded in the report metadata.
func NewJSONReporter(version string) *JSONReporter {
	return &JSONReporter{ToolVersion: version}
}

// SortDeterministic orders results by (rule id, node id) so that two runs
// over the same input produce byte-identical output modulo the generation
// timestamp.
func SortDeterministic(results []rules.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RuleID != results[j].RuleID {
			return results[i].RuleID < results[j].RuleID
		}
		return results[i].NodeID < results[j].NodeID
	})
}

// Generate sorts results deterministically, rebases each result's location
// from the core's 0-based line convention to the 1-based convention editors
// and CI annotations expect, then serializes to pretty-printed JSON with
// 2-space indentation.
func (r *JSONReporter) Generate(results []rules.Result) ([]byte, error) {
	sorted := make([]rules.Result, len(results))
	copy(sorted, results)
	SortDeterministic(sorted)

	for i := range sorted {
		sorted[i].Loc.StartLine++
		sorted[i].Loc.EndLine++
	}

	report := JSONReport{
		Meta: Meta{
			SchemaVersion: "1.0.0",
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			ToolName:      "confsentry",
			ToolVersion:   r.ToolVersion,
		},
		Results: sorted,
	}

	return json.MarshalIndent(report, "", "  ")
}

// WriteToFile generates the JSON report and writes it to the specified path
// with 0644 permissions. Parent directories must already exist.
func (r *JSONReporter) WriteToFile(results []rules.Result, path string) error {
	data, err := r.Generate(results)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
