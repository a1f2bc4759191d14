package rules

import "github.com/confsentry/confsentry/core/ast"

// Context is the read-only handle passed to every rule's check function. It
// currently exposes the whole forest so cross-reference rules can inspect
// nodes outside the one they were invoked on (e.g. "does the interface named
// here exist anywhere in the tree?").
type Context struct {
	AST []*ast.Node
}

// NewContext attaches a forest to a Context.
func NewContext(forest []*ast.Node) *Context {
	return &Context{AST: forest}
}

// FindByID returns the first node anywhere in the context's forest whose ID
// exactly equals id, searching in pre-order. This is a convenience for
// cross-reference rules; the core engine itself never calls it.
func (c *Context) FindByID(id string) (*ast.Node, bool) {
	var found *ast.Node
	ast.Walk(c.AST, func(n *ast.Node) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found, found != nil
}
