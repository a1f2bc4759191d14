// Package parse implements the permissive, schema-aware parser: it turns
// raw configuration text into a forest of ast.Node values even when
// indentation is missing, partial, or inconsistent.
package parse

import (
	"strings"

	"github.com/confsentry/confsentry/core/ast"
)

// maxLineLength bounds how much of a line block-starter detection considers
// before short-circuiting, guarding against the "lines longer than a
// configurable maximum" edge case. It does not affect parsing correctness for
// non-pathological input; it only prevents a single absurdly long line from
// paying full regex-alternation cost.
const maxLineLength = 4096

// Options configures a single parse. The zero value parses from line 0 as a
// full ("base") configuration.
type Options struct {
	StartLine uint32
	Src       ast.Source
	Schema    *ast.Schema
}

// withDefaults fills in the zero-value defaults for unset fields.
func (o Options) withDefaults() Options {
	if o.Src == "" {
		o.Src = ast.SourceBase
	}
	if o.Schema == nil {
		o.Schema = ast.NewDefaultSchema()
	}
	return o
}

// surviving line: everything preprocessing needs to know before tree
// construction begins.
type line struct {
	sanitized      string
	raw            string
	absLine        int
	indent         int
	isBlockStarter bool
}

// Parse consumes raw configuration text and returns the top-level forest.
// Parse is pure: it performs no I/O and its result depends only on text and
// options.
func Parse(text string, opts Options) []*ast.Node {
	opts = opts.withDefaults()
	lines := preprocess(text, opts)
	forest := buildTree(lines, opts.Src)
	ast.FixupSectionLocs(forest)
	return WrapVirtualRoots(forest, opts)
}

// preprocess splits text on line feeds, discards blank and "!"-comment
// lines, and computes the per-line facts the tree builder needs.
func preprocess(text string, opts Options) []line {
	raws := strings.Split(text, "\n")
	out := make([]line, 0, len(raws))

	for i, raw := range raws {
		sanitized := ast.Sanitize(raw)
		if sanitized == "" || strings.HasPrefix(sanitized, "!") {
			continue
		}

		indent := leadingColumns(raw)
		checkLine := sanitized
		if len(checkLine) > maxLineLength {
			checkLine = checkLine[:maxLineLength]
		}

		out = append(out, line{
			sanitized:      sanitized,
			raw:            raw,
			absLine:        int(opts.StartLine) + i,
			indent:         indent,
			isBlockStarter: opts.Schema.IsBlockStarter(checkLine),
		})
	}
	return out
}

// leadingColumns counts the columns of leading whitespace in the original
// (unsanitized) line, one column per codepoint including tabs.
func leadingColumns(raw string) int {
	col := 0
	for _, r := range raw {
		if r != ' ' && r != '\t' {
			break
		}
		col++
	}
	return col
}

// stackEntry pairs a constructed node with the line-level facts needed to
// decide whether it should be popped when the next line arrives.
type stackEntry struct {
	node   *ast.Node
	indent int
	typ    ast.NodeType
}

// buildTree runs the explicit parent-stack algorithm and returns the
// resulting top-level forest (pre virtual-root wrapping).
func buildTree(lines []line, src ast.Source) []*ast.Node {
	var forest []*ast.Node
	var stack []stackEntry

	for _, l := range lines {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			indentBreak := l.indent <= top.indent
			starterPromotion := l.isBlockStarter && top.typ != ast.Section
			if !indentBreak && !starterPromotion {
				break
			}
			stack = stack[:len(stack)-1]
		}

		typ := ast.Command
		if l.isBlockStarter {
			typ = ast.Section
		}

		node := ast.NewNode(l.sanitized, typ, l.raw, src, ast.Loc{StartLine: l.absLine, EndLine: l.absLine}, l.indent)

		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		} else {
			forest = append(forest, node)
		}

		stack = append(stack, stackEntry{node: node, indent: l.indent, typ: typ})
	}

	return forest
}
