package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/confsentry/confsentry/core/ast"
)

// builtinChecks maps a rule id to the Go closure that implements it. YAML
// rule packs (loader.go) supply everything about a Rule except its
// behavior; behavior is resolved from this registry by id, matching the
// Rule Contract's requirement that check be a function, not data.
var builtinChecks = map[string]CheckFunc{
	"CFG-VTY-TELNET":      checkVTYTelnet,
	"CFG-VTY-ACCESSCLASS": checkVTYAccessClass,
	"CFG-SNMP-DEFAULT":    checkSNMPDefaultCommunity,
	"CFG-IFACE-XREF":      checkInterfaceCrossReference,
}

// BuiltinRules returns the illustrative rule pack shipped with the
// repository. It is deliberately small: spec.md excludes the full shipped
// rule catalogue from scope, but the engine needs something to run
// end-to-end by default.
func BuiltinRules() *RuleSet {
	rs := NewRuleSet()
	for _, r := range []Rule{
		{
			ID:       "CFG-VTY-TELNET",
			Selector: "line vty",
			Meta: Metadata{
				Level:       LevelWarning,
				OBU:         "network-security",
				Owner:       "netsec-team",
				Remediation: "replace 'transport input telnet' with 'transport input ssh'",
			},
			Check: builtinChecks["CFG-VTY-TELNET"],
		},
		{
			ID:       "CFG-VTY-ACCESSCLASS",
			Selector: "line vty",
			Meta: Metadata{
				Level:       LevelWarning,
				OBU:         "network-security",
				Owner:       "netsec-team",
				Remediation: "add 'access-class <acl> in' under the vty line",
			},
			Check: builtinChecks["CFG-VTY-ACCESSCLASS"],
		},
		{
			ID:       "CFG-SNMP-DEFAULT",
			Selector: "snmp-server community",
			Meta: Metadata{
				Level:       LevelError,
				OBU:         "network-security",
				Owner:       "netsec-team",
				Remediation: "remove the 'public'/'private' community string and use a unique RO/RW string",
			},
			Check: builtinChecks["CFG-SNMP-DEFAULT"],
		},
		{
			ID: "CFG-IFACE-XREF",
			Meta: Metadata{
				Level: LevelWarning,
				OBU:   "network-hygiene",
				Owner: "netops-team",
			},
			Check: builtinChecks["CFG-IFACE-XREF"],
		},
	} {
		rs.Add(r)
	}
	return rs
}

func checkVTYTelnet(n *ast.Node, ctx *Context) Result {
	r := Rule{ID: "CFG-VTY-TELNET", Meta: Metadata{Level: LevelWarning}}
	for _, c := range n.Children {
		lower := strings.ToLower(c.ID)
		if strings.HasPrefix(lower, "transport input") && strings.Contains(lower, "telnet") {
			return Fail(r, n, fmt.Sprintf("%s permits telnet transport", n.ID))
		}
	}
	return Pass(r, n, fmt.Sprintf("%s does not permit telnet transport", n.ID))
}

func checkVTYAccessClass(n *ast.Node, ctx *Context) Result {
	r := Rule{ID: "CFG-VTY-ACCESSCLASS", Meta: Metadata{Level: LevelWarning}}
	for _, c := range n.Children {
		if strings.HasPrefix(strings.ToLower(c.ID), "access-class") {
			return Pass(r, n, fmt.Sprintf("%s restricts access with an access-class", n.ID))
		}
	}
	if n.Src == ast.SourceSnippet {
		return Pass(r, n, fmt.Sprintf("%s is a snippet; access-class expectation relaxed", n.ID))
	}
	return Fail(r, n, fmt.Sprintf("%s has no access-class restricting vty access", n.ID))
}

var snmpDefaultCommunityRe = regexp.MustCompile(`(?i)^snmp-server community (public|private)\b`)

func checkSNMPDefaultCommunity(n *ast.Node, ctx *Context) Result {
	r := Rule{ID: "CFG-SNMP-DEFAULT", Meta: Metadata{Level: LevelError}}
	if snmpDefaultCommunityRe.MatchString(n.ID) {
		return Fail(r, n, fmt.Sprintf("%s uses a well-known default community string", n.ID))
	}
	return Pass(r, n, fmt.Sprintf("%s does not use a default community string", n.ID))
}

var interfaceRefRe = regexp.MustCompile(`(?i)\binterface\s+(\S+)`)

// checkInterfaceCrossReference is a cross-reference rule: it looks for
// commands that name an interface (e.g. "match interface Gi0/2" inside a
// route-map) and uses the whole-tree Context to confirm that interface is
// actually declared somewhere in the forest.
func checkInterfaceCrossReference(n *ast.Node, ctx *Context) Result {
	r := Rule{ID: "CFG-IFACE-XREF", Meta: Metadata{Level: LevelWarning}}

	if n.Type == ast.Section && strings.HasPrefix(strings.ToLower(n.ID), "interface ") {
		return Pass(r, n, fmt.Sprintf("%s is an interface declaration", n.ID))
	}

	m := interfaceRefRe.FindStringSubmatch(n.ID)
	if m == nil {
		return Pass(r, n, fmt.Sprintf("%s does not reference an interface", n.ID))
	}
	ifaceName := m[1]

	found := false
	ast.Walk(ctx.AST, func(candidate *ast.Node) {
		if found || candidate.Type != ast.Section {
			return
		}
		if strings.EqualFold(candidate.ID, "interface "+ifaceName) {
			found = true
		}
	})

	if found {
		return Pass(r, n, fmt.Sprintf("%s references a declared interface %s", n.ID, ifaceName))
	}
	return Fail(r, n, fmt.Sprintf("%s references undeclared interface %s", n.ID, ifaceName))
}
