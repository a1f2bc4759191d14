package rules

import "strings"

// SelectorMatches decides whether node id satisfies selector:
//
//   - An empty selector matches every node.
//   - A selector with leading whitespace is considered misuse and matches
//     nothing rather than erroring.
//   - Otherwise, match iff the lowercased node id starts with the
//     lowercased selector followed by end-of-string or a whitespace
//     character. This trailing-boundary rule is what stops "ip" from
//     matching "ipv6 address ..." while still matching "ip address ...".
//
// Comparison is ASCII-case-insensitive; any non-ASCII codepoints are
// compared verbatim.
func SelectorMatches(nodeID, selector string) bool {
	if selector == "" {
		return true
	}
	if len(selector) > 0 && (selector[0] == ' ' || selector[0] == '\t') {
		return false
	}

	id := asciiLower(nodeID)
	sel := asciiLower(selector)

	if !strings.HasPrefix(id, sel) {
		return false
	}
	rest := id[len(sel):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// asciiLower lowercases only ASCII letters, leaving every other codepoint
// (including non-ASCII text) untouched: comparisons are ASCII-case-insensitive,
// and non-ASCII codepoints compare verbatim.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
