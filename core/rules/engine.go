package rules

import (
	"fmt"

	"github.com/confsentry/confsentry/core/ast"
)

// Run walks forest in pre-order and, for each node, invokes every rule in
// rs whose selector matches that node's id, in rule order. It returns the
// flattened sequence of results.
//
// Run is pure: it performs no I/O. A rule whose check function panics is
// contained by a failure barrier — its panic becomes a single failing
// Result and the walk continues unaffected. Run(forest, empty ruleset)
// returns nil, and Run(nil forest, rules) returns nil.
func Run(forest []*ast.Node, rs *RuleSet) []Result {
	if rs == nil || len(rs.Rules()) == 0 || len(forest) == 0 {
		return nil
	}

	ctx := NewContext(forest)
	var out []Result

	ast.Walk(forest, func(n *ast.Node) {
		for _, r := range rs.Rules() {
			if !SelectorMatches(n.ID, r.Selector) {
				continue
			}
			out = append(out, invoke(r, n, ctx))
		}
	})

	return out
}

// invoke calls r.Check(n, ctx) behind a recover() so a panicking rule can
// never abort the scan. On panic it synthesizes a failing Result carrying
// the rule's own id and the node's own location. Otherwise the result takes
// the rule's configured level, and a failing result with no remediation of
// its own takes the rule's configured remediation.
func invoke(r Rule, n *ast.Node, ctx *Context) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{
				Passed:  false,
				Message: fmt.Sprintf("rule %s panicked: %v", r.ID, rec),
				RuleID:  r.ID,
				NodeID:  n.ID,
				Level:   LevelError,
				Loc:     n.Location,
			}
		}
	}()
	res = r.Check(n, ctx)
	if r.Meta.Level != "" {
		res.Level = r.Meta.Level
	}
	if !res.Passed && res.Remediation == "" {
		res.Remediation = r.Meta.Remediation
	}
	return res
}
