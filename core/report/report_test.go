package report

import (
	"encoding/json"
	"testing"

	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/rules"
)

func TestJSONReporter_GenerateIsDeterministicAndSorted(t *testing.T) {
	results := []rules.Result{
		{RuleID: "Z-RULE", NodeID: "node-b", Passed: true},
		{RuleID: "A-RULE", NodeID: "node-b", Passed: false, Level: rules.LevelError, Loc: ast.Loc{StartLine: 3}},
		{RuleID: "A-RULE", NodeID: "node-a", Passed: true},
	}

	reporter := NewJSONReporter("1.2.3")
	data, err := reporter.Generate(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out JSONReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to unmarshal generated report: %v", err)
	}

	if out.Meta.ToolName != "confsentry" || out.Meta.ToolVersion != "1.2.3" {
		t.Fatalf("unexpected meta: %+v", out.Meta)
	}
	if len(out.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out.Results))
	}
	if out.Results[0].RuleID != "A-RULE" || out.Results[0].NodeID != "node-a" {
		t.Fatalf("expected A-RULE/node-a first, got %+v", out.Results[0])
	}
	if out.Results[1].RuleID != "A-RULE" || out.Results[1].NodeID != "node-b" {
		t.Fatalf("expected A-RULE/node-b second, got %+v", out.Results[1])
	}
	if out.Results[1].Loc.StartLine != 4 {
		t.Fatalf("expected 0-based line 3 rebased to 4, got %d", out.Results[1].Loc.StartLine)
	}
}

func TestJSONReporter_GenerateRebasesZeroLineToOne(t *testing.T) {
	results := []rules.Result{
		{RuleID: "R1", NodeID: "n1", Passed: false, Level: rules.LevelError, Loc: ast.Loc{StartLine: 0, EndLine: 0}},
	}

	reporter := NewJSONReporter("1.0.0")
	data, err := reporter.Generate(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out JSONReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if out.Results[0].Loc.StartLine != 1 || out.Results[0].Loc.EndLine != 1 {
		t.Fatalf("expected line 0 rebased to 1, got %+v", out.Results[0].Loc)
	}
}

func TestJSONReporter_GenerateNilResultsRendersEmptyArray(t *testing.T) {
	reporter := NewJSONReporter("0.0.1")
	data, err := reporter.Generate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out JSONReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if out.Results == nil {
		t.Fatal("expected non-nil empty results slice")
	}
	if len(out.Results) != 0 {
		t.Fatalf("expected zero results, got %d", len(out.Results))
	}
}
