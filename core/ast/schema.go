package ast

import "regexp"

// StarterPattern is one entry of the Block-Starter Schema: an anchored,
// case-insensitive, whole-line prefix matcher naming a keyword family that
// opens a nested configuration block.
//
// Exclude is an optional second anchored pattern; if it matches, the line is
// NOT a block starter even though Pattern matched. This stands in for
// negative lookahead (e.g. "router X but not router-id"), which Go's RE2
// engine deliberately does not support since it would reintroduce
// backtracking; a same-anchor exclusion pattern keeps matching linear.
type StarterPattern struct {
	Name    string
	Pattern string
	Exclude string

	re    *regexp.Regexp
	notRe *regexp.Regexp
}

// Schema is an ordered collection of compiled StarterPatterns. It is built
// once and treated as read-only for the lifetime of every parse that
// consults it; extending it after a parse has begun produces undefined
// selection behavior.
type Schema struct {
	patterns []StarterPattern
}

// defaultPatterns enumerates the illustrative block-starter families from
// below. Every pattern is anchored at the start of the line and every
// quantifier applies to a disjoint character class, so a single linear pass
// through the alternation is enough — no pathological backtracking is
// possible.
var defaultPatterns = []StarterPattern{
	{Name: "interface", Pattern: `(?i)^interface \S+`},
	{Name: "router", Pattern: `(?i)^router \S+`, Exclude: `(?i)^router router-id(\s|$)`},
	{Name: "vlan", Pattern: `(?i)^vlan \d+`},
	{Name: "line", Pattern: `(?i)^line (?:vty|console|aux) \S+`},
	{Name: "ip-access-list", Pattern: `(?i)^ip access-list \S+`},
	{Name: "class-map", Pattern: `(?i)^class-map \S+`},
	{Name: "policy-map", Pattern: `(?i)^policy-map \S+`},
	{Name: "object-group", Pattern: `(?i)^object-group \S+`},
	{Name: "route-map", Pattern: `(?i)^route-map \S+`},
	{Name: "crypto", Pattern: `(?i)^crypto (?:map|isakmp|ipsec) \S+`},
	{Name: "dial-peer", Pattern: `(?i)^dial-peer voice \S+`},
	{Name: "vrf-definition", Pattern: `(?i)^vrf definition \S+`},
	{Name: "banner", Pattern: `(?i)^banner (?:motd|login|exec)`},
	{Name: "control-plane", Pattern: `(?i)^control-plane`},
}

// NewDefaultSchema compiles the built-in block-starter pattern list.
func NewDefaultSchema() *Schema {
	s, err := NewSchema(defaultPatterns)
	if err != nil {
		// The built-in pattern list is a compile-time constant validated by
		// this package's own tests; a compile failure here would be a
		// programming error, not a runtime condition.
		panic("ast: built-in block-starter schema failed to compile: " + err.Error())
	}
	return s
}

// NewSchema compiles a caller-supplied pattern list into a Schema. Embedders
// extending the schema call this before constructing any parser
// that will use it.
func NewSchema(patterns []StarterPattern) (*Schema, error) {
	compiled := make([]StarterPattern, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, err
		}
		var notRe *regexp.Regexp
		if p.Exclude != "" {
			notRe, err = regexp.Compile(p.Exclude)
			if err != nil {
				return nil, err
			}
		}
		compiled[i] = StarterPattern{Name: p.Name, Pattern: p.Pattern, Exclude: p.Exclude, re: re, notRe: notRe}
	}
	return &Schema{patterns: compiled}, nil
}

// IsBlockStarter reports whether the sanitized line matches any pattern in
// the schema and does not match that pattern's exclusion, if any.
func (s *Schema) IsBlockStarter(sanitizedLine string) bool {
	for _, p := range s.patterns {
		if !p.re.MatchString(sanitizedLine) {
			continue
		}
		if p.notRe != nil && p.notRe.MatchString(sanitizedLine) {
			continue
		}
		return true
	}
	return false
}

// Patterns returns the schema's patterns in evaluation order.
func (s *Schema) Patterns() []StarterPattern {
	out := make([]StarterPattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}
