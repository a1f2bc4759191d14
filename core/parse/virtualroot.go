package parse

import (
	"fmt"

	"github.com/confsentry/confsentry/core/ast"
)

// WrapVirtualRoots post-processes a top-level forest so that every maximal
// run of consecutive top-level ast.Command nodes is replaced by a single
// ast.VirtualRoot node containing that run. Top-level ast.Section nodes
// break a run and are passed through unchanged. virtual_root nodes are
// never introduced below the top level.
func WrapVirtualRoots(forest []*ast.Node, opts Options) []*ast.Node {
	var out []*ast.Node
	var run []*ast.Node

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, newVirtualRoot(run, opts.Src))
		run = nil
	}

	for _, n := range forest {
		if n.Type == ast.Section {
			flush()
			out = append(out, n)
			continue
		}
		run = append(run, n)
	}
	flush()

	return out
}

// newVirtualRoot builds the synthetic container for a run of orphan
// top-level commands. Its ID is derived from the run's first line so it
// never collides with a real node's sanitized identity, and its Loc spans
// the full run.
func newVirtualRoot(run []*ast.Node, src ast.Source) *ast.Node {
	first := run[0]
	last := run[len(run)-1]

	vr := &ast.Node{
		ID:       fmt.Sprintf("virtual_root_line_%d", first.Location.StartLine),
		Type:     ast.VirtualRoot,
		RawText:  "",
		Params:   nil,
		Children: run,
		Src:      src,
		Location: ast.Loc{StartLine: first.Location.StartLine, EndLine: last.Location.EndLine},
		Indent:   -1,
	}
	return vr
}
