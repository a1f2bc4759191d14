package ast

import "testing"

func TestWalk_PreOrder(t *testing.T) {
	child := NewNode("description x", Command, " description x", SourceBase, Loc{1, 1}, 1)
	root := NewNode("interface Gi0/1", Section, "interface Gi0/1", SourceBase, Loc{0, 1}, 0)
	root.Children = append(root.Children, child)

	var visited []string
	Walk([]*Node{root}, func(n *Node) { visited = append(visited, n.ID) })

	want := []string{"interface Gi0/1", "description x"}
	if len(visited) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(visited))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visit %d: got %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestFixupSectionLocs_PropagatesMaxDescendantEndLine(t *testing.T) {
	grandchild := NewNode("set peer 1.1.1.1", Command, "  set peer 1.1.1.1", SourceBase, Loc{3, 3}, 2)
	child := NewNode("crypto map CM", Section, " crypto map CM", SourceBase, Loc{2, 2}, 1)
	child.Children = append(child.Children, grandchild)
	root := NewNode("interface Gi0/1", Section, "interface Gi0/1", SourceBase, Loc{0, 0}, 0)
	root.Children = append(root.Children, child)

	FixupSectionLocs([]*Node{root})

	if child.Location.EndLine != 3 {
		t.Fatalf("expected child end_line 3, got %d", child.Location.EndLine)
	}
	if root.Location.EndLine != 3 {
		t.Fatalf("expected root end_line 3, got %d", root.Location.EndLine)
	}
}

func TestFixupSectionLocs_LeavesCommandsUntouched(t *testing.T) {
	n := NewNode("hostname R1", Command, "hostname R1", SourceBase, Loc{0, 0}, 0)
	FixupSectionLocs([]*Node{n})
	if n.Location.EndLine != 0 {
		t.Fatalf("expected command end_line unchanged, got %d", n.Location.EndLine)
	}
}
