// Package rules implements the Rule Contract and the rule evaluation engine:
// it walks a parsed configuration forest, selects rules by node identity,
// and isolates rule failures so a single misbehaving check can never abort a
// scan.
package rules

import "github.com/confsentry/confsentry/core/ast"

// Level is the severity a rule attaches to its result.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Metadata carries the non-behavioral facts a rule ships alongside its
// check function.
type Metadata struct {
	Level       Level  `yaml:"level"`
	OBU         string `yaml:"obu"`
	Owner       string `yaml:"owner"`
	Remediation string `yaml:"remediation,omitempty"`
}

// CheckFunc is the pure function every rule's Check must implement: given a
// node and the full-tree Context, it returns exactly one Result. It must not
// mutate the node, any ancestor, or the context.
type CheckFunc func(n *ast.Node, ctx *Context) Result

// Rule is a single entry in a RuleSet: an id, an optional selector
// restricting which nodes it applies to, descriptive metadata, and the
// check function itself.
type Rule struct {
	ID       string
	Selector string
	Meta     Metadata
	Check    CheckFunc
}

// RuleSet is an ordered collection of rules. The same id from a
// later-added rule overrides an earlier one in ByID lookups, but Run
// iterates every rule regardless of duplicate ids — deduplication is
// external policy, not an engine concern.
type RuleSet struct {
	rules []Rule
	byID  map[string]int
}

// NewRuleSet returns an empty, ready-to-use RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{byID: make(map[string]int)}
}

// Add appends a rule to the set. If id already exists, ByID now resolves to
// this later rule, but the earlier rule is still retained and still runs.
func (rs *RuleSet) Add(r Rule) {
	rs.byID[r.ID] = len(rs.rules)
	rs.rules = append(rs.rules, r)
}

// Rules returns every rule in insertion order.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// ByID returns the most recently added rule with the given id.
func (rs *RuleSet) ByID(id string) (Rule, bool) {
	idx, ok := rs.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[idx], true
}

// HasID reports whether a rule with the given id is present.
func (rs *RuleSet) HasID(id string) bool {
	_, ok := rs.byID[id]
	return ok
}
