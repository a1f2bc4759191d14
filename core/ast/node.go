package ast

import "strings"

// NodeType classifies a ConfigNode.
type NodeType string

const (
	// Section is a node that opens a nested block (e.g. "interface Gi0/1").
	Section NodeType = "section"
	// Command is a leaf node: a single configuration statement.
	Command NodeType = "command"
	// Comment is reserved. Comments are filtered before tree construction
	// and never appear as nodes; the type exists so wire consumers have a
	// stable enumeration even though the parser never emits it.
	Comment NodeType = "comment"
	// VirtualRoot is a synthetic container grouping a run of consecutive
	// top-level orphan commands.
	VirtualRoot NodeType = "virtual_root"
)

// Source distinguishes lines parsed from a complete file from lines parsed
// from an ad-hoc, possibly incomplete snippet. Rules may relax expectations
// when Source is Snippet.
type Source string

const (
	// SourceBase marks a node originating from a full configuration file.
	SourceBase Source = "base"
	// SourceSnippet marks a node originating from a partial configuration.
	SourceSnippet Source = "snippet"
)

// Loc is a half-open line range, 0-based in the core. StartLine is the
// node's own originating line; EndLine extends to the last descendant for
// section nodes and to the last child's EndLine for virtual_root nodes.
type Loc struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Node is a single vertex of the parsed configuration tree.
//
// Nodes are created once during parsing and are never mutated afterward.
// Results produced by the rule engine reference nodes only by ID, Loc, and
// the node's own string identity — never by holding a live pointer — so
// results remain valid after the tree they describe is discarded.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	RawText  string   `json:"raw_text"`
	Params   []string `json:"params"`
	Children []*Node  `json:"children"`
	Src      Source   `json:"source"`
	Location Loc      `json:"loc"`
	Indent   int      `json:"indent"`
}

// NewNode builds a Node from a sanitized line and its originating raw text.
// Params is derived from splitting id on whitespace runs.
func NewNode(id string, typ NodeType, rawText string, src Source, loc Loc, indent int) *Node {
	return &Node{
		ID:       id,
		Type:     typ,
		RawText:  rawText,
		Params:   strings.Fields(id),
		Children: []*Node{},
		Src:      src,
		Location: loc,
		Indent:   indent,
	}
}

// Walk visits n and every descendant in pre-order, depth-first, calling fn
// for each. It is the traversal primitive shared by the rule engine and any
// caller that needs a flattened view of a forest.
func Walk(forest []*Node, fn func(*Node)) {
	for _, n := range forest {
		walkNode(n, fn)
	}
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		walkNode(c, fn)
	}
}

// FixupSectionLocs performs the post-order end_line propagation: every
// section's Loc.EndLine becomes the maximum of its own
// EndLine and the EndLine of every descendant. Leaf commands and virtual
// roots are left untouched (a virtual root's span is fixed at construction
// time in the wrapper, not here).
func FixupSectionLocs(forest []*Node) {
	for _, n := range forest {
		fixupNode(n)
	}
}

func fixupNode(n *Node) int {
	maxEnd := n.Location.EndLine
	for _, c := range n.Children {
		if e := fixupNode(c); e > maxEnd {
			maxEnd = e
		}
	}
	if n.Type == Section {
		n.Location.EndLine = maxEnd
	}
	return maxEnd
}
