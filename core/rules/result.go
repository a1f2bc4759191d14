package rules

import "github.com/confsentry/confsentry/core/ast"

// Result is the outcome of a single rule invocation against a single node.
// Its JSON tags define the wire shape used by the JSON and MCP-tool report
// paths, so it serializes directly without an intermediate DTO.
type Result struct {
	Passed      bool    `json:"passed"`
	Message     string  `json:"message"`
	RuleID      string  `json:"rule_id"`
	NodeID      string  `json:"node_id"`
	Level       Level   `json:"level"`
	Loc         ast.Loc `json:"loc"`
	Remediation string  `json:"remediation,omitempty"`
}

// Pass builds a passing Result for rule r against node n.
func Pass(r Rule, n *ast.Node, message string) Result {
	return Result{
		Passed:  true,
		Message: message,
		RuleID:  r.ID,
		NodeID:  n.ID,
		Level:   r.Meta.Level,
		Loc:     n.Location,
	}
}

// Fail builds a failing Result for rule r against node n, attaching the
// rule's static remediation if one was configured.
func Fail(r Rule, n *ast.Node, message string) Result {
	return Result{
		Passed:      false,
		Message:     message,
		RuleID:      r.ID,
		NodeID:      n.ID,
		Level:       r.Meta.Level,
		Loc:         n.Location,
		Remediation: r.Meta.Remediation,
	}
}
