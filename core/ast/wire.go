package ast

import "encoding/json"

// MarshalForest renders a parsed forest as pretty-printed JSON using each
// Node's own json tags. It exists as a single point of truth for the AST
// debug dump so callers (the --ast CLI flag, the MCP get_ast tool) don't
// each re-implement indentation and field ordering.
func MarshalForest(forest []*Node) ([]byte, error) {
	if forest == nil {
		forest = []*Node{}
	}
	return json.MarshalIndent(forest, "", "  ")
}
