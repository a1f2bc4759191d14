package assist

import (
	"fmt"
	"strings"

	"github.com/confsentry/confsentry/core/rules"
)

// systemPrompt returns the system message that instructs the LLM on how to
// respond to a batch of failing rule results.
func systemPrompt() string {
	return `You are a network configuration security expert. For each failing
rule result you receive, respond with a JSON array of objects containing:
- "rule_id": the rule id (string)
- "node_id": the node id the result was attached to (string)
- "remediation": a specific, actionable configuration change that fixes it (string)

Respond ONLY with a valid JSON array. Do not include markdown fences or
other text.`
}

// formatResults converts a batch of failing results into structured text
// for the LLM.
func formatResults(batch []rules.Result) string {
	var b strings.Builder
	for i, r := range batch {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "Rule ID: %s\n", r.RuleID)
		fmt.Fprintf(&b, "Node ID: %s\n", r.NodeID)
		fmt.Fprintf(&b, "Level: %s\n", r.Level)
		fmt.Fprintf(&b, "Message: %s\n", r.Message)
		if r.Loc.StartLine > 0 {
			fmt.Fprintf(&b, "Line: %d\n", r.Loc.StartLine)
		}
	}
	return b.String()
}
