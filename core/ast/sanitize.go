// Package ast defines the configuration tree data model: ConfigNode and the
// text-normalization rules the parser relies on to make sense of hierarchical
// device configuration text.
package ast

import "strings"

// exoticSpace is the set of Unicode codepoints treated as ASCII space when
// sanitizing a configuration line. Device configs pasted from word
// processors or web forms routinely carry non-breaking or wide spaces that
// would otherwise defeat prefix and pattern matching.
var exoticSpace = map[rune]bool{
	' ': true, // NO-BREAK SPACE
	' ': true, // EN QUAD
	' ': true, // EM QUAD
	' ': true, // EN SPACE
	' ': true, // EM SPACE
	' ': true, // THREE-PER-EM SPACE
	' ': true, // FOUR-PER-EM SPACE
	' ': true, // SIX-PER-EM SPACE
	' ': true, // FIGURE SPACE
	' ': true, // PUNCTUATION SPACE
	' ': true, // THIN SPACE
	' ': true, // HAIR SPACE
	' ': true, // NARROW NO-BREAK SPACE
	' ': true, // MEDIUM MATHEMATICAL SPACE
	'　': true, // IDEOGRAPHIC SPACE
}

// Sanitize replaces every exotic Unicode whitespace codepoint in s with an
// ASCII space and trims leading/trailing whitespace from the result. It is
// pure, total, and idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if exoticSpace[r] {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// needsSanitize reports whether s contains any codepoint that Sanitize would
// rewrite, letting the common case (already-ASCII lines) skip the rebuild.
func needsSanitize(s string) bool {
	for _, r := range s {
		if exoticSpace[r] {
			return true
		}
	}
	return false
}
