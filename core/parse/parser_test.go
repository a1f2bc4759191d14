package parse

import (
	"strings"
	"testing"

	"github.com/confsentry/confsentry/core/ast"
)

func countNodes(forest []*ast.Node) int {
	n := 0
	ast.Walk(forest, func(*ast.Node) { n++ })
	return n
}

// S1 — well-formed nested interface block.
func TestParse_WellFormedNested(t *testing.T) {
	text := "interface GigabitEthernet0/1\n description uplink\n ip address 10.0.0.1 255.255.255.0\n"
	forest := Parse(text, Options{})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root node, got %d", len(forest))
	}
	root := forest[0]
	if root.Type != ast.Section {
		t.Fatalf("expected section, got %s", root.Type)
	}
	if root.ID != "interface GigabitEthernet0/1" {
		t.Fatalf("unexpected id %q", root.ID)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Location != (ast.Loc{StartLine: 0, EndLine: 2}) {
		t.Fatalf("unexpected loc %+v", root.Location)
	}
}

// S2 — flat snippet with block-starter promotion.
func TestParse_FlatSnippetPromotion(t *testing.T) {
	text := "interface Gi0/1\nip address 10.0.0.1 255.255.255.0\ninterface Gi0/2\n"
	forest := Parse(text, Options{Src: ast.SourceSnippet})

	if len(forest) != 2 {
		t.Fatalf("expected 2 root sections, got %d", len(forest))
	}
	if forest[0].ID != "interface Gi0/1" || forest[1].ID != "interface Gi0/2" {
		t.Fatalf("unexpected root ids: %q, %q", forest[0].ID, forest[1].ID)
	}
	if len(forest[0].Children) != 1 || forest[0].Children[0].ID != "ip address 10.0.0.1 255.255.255.0" {
		t.Fatalf("expected ip address as child of first interface, got %+v", forest[0].Children)
	}
	if len(forest[1].Children) != 0 {
		t.Fatalf("expected second interface to have no children, got %d", len(forest[1].Children))
	}
}

// S3 — orphan commands wrapped under a single virtual root.
func TestParse_OrphanCommands(t *testing.T) {
	text := "ip address 10.0.0.1 255.255.255.0\nno shutdown\n"
	forest := Parse(text, Options{})

	if len(forest) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(forest))
	}
	vr := forest[0]
	if vr.Type != ast.VirtualRoot {
		t.Fatalf("expected virtual_root, got %s", vr.Type)
	}
	if len(vr.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(vr.Children))
	}
	if vr.Location != (ast.Loc{StartLine: 0, EndLine: 1}) {
		t.Fatalf("unexpected loc %+v", vr.Location)
	}
}

// S4 — mixed orphans and sections at the top level.
func TestParse_MixedOrphansAndSections(t *testing.T) {
	text := "hostname R1\ninterface Gi0/1\n description core\nntp server 1.1.1.1\n"
	forest := Parse(text, Options{})

	if len(forest) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d", len(forest))
	}
	if forest[0].Type != ast.VirtualRoot || forest[0].Children[0].ID != "hostname R1" {
		t.Fatalf("expected first node to be a virtual root wrapping hostname, got %+v", forest[0])
	}
	if forest[1].Type != ast.Section || forest[1].ID != "interface Gi0/1" || len(forest[1].Children) != 1 {
		t.Fatalf("expected interface section with one child, got %+v", forest[1])
	}
	if forest[2].Type != ast.VirtualRoot || forest[2].Children[0].ID != "ntp server 1.1.1.1" {
		t.Fatalf("expected trailing virtual root wrapping ntp, got %+v", forest[2])
	}
}

func TestParse_SectionSiblingsAtEqualIndent(t *testing.T) {
	text := "interface Gi0/1\n description a\ninterface Gi0/2\n description b\n"
	forest := Parse(text, Options{})

	if len(forest) != 2 {
		t.Fatalf("expected 2 sibling sections, got %d", len(forest))
	}
	for _, n := range forest {
		if len(n.Children) != 1 {
			t.Fatalf("expected each section to keep its own child, got %+v", n)
		}
	}
}

func TestParse_DeeperIndentNestsUnderPriorCommand(t *testing.T) {
	text := "line vty 0 4\n transport input ssh\n  timeout 5\n"
	forest := Parse(text, Options{})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	root := forest[0]
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 direct child, got %d", len(root.Children))
	}
	child := root.Children[0]
	if len(child.Children) != 1 || child.Children[0].ID != "timeout 5" {
		t.Fatalf("expected 'timeout 5' nested under 'transport input ssh', got %+v", child)
	}
}

func TestParse_TabsCountAsOneColumn(t *testing.T) {
	text := "interface Gi0/1\n\tdescription tabbed\n"
	forest := Parse(text, Options{})
	if len(forest) != 1 || len(forest[0].Children) != 1 {
		t.Fatalf("expected tab-indented line to nest under section, got %+v", forest)
	}
}

func TestParse_Deterministic(t *testing.T) {
	text := "hostname R1\ninterface Gi0/1\n description x\n"
	a := Parse(text, Options{})
	b := Parse(text, Options{})
	if countNodes(a) != countNodes(b) {
		t.Fatalf("expected deterministic node counts, got %d vs %d", countNodes(a), countNodes(b))
	}
}

func TestParse_PreorderPreservesRawText(t *testing.T) {
	text := "hostname R1\ninterface Gi0/1\n description x\n ip address 1.1.1.1 255.255.255.0\n"
	forest := Parse(text, Options{})

	var raws []string
	ast.Walk(forest, func(n *ast.Node) {
		if n.Type == ast.VirtualRoot {
			return
		}
		raws = append(raws, strings.TrimSpace(n.RawText))
	})

	want := []string{"hostname R1", "interface Gi0/1", "description x", "ip address 1.1.1.1 255.255.255.0"}
	if len(raws) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(raws), raws)
	}
	for i := range want {
		if raws[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], raws[i])
		}
	}
}

func TestParse_StableUnderTrailingBlankAndBangLines(t *testing.T) {
	base := "interface Gi0/1\n description x\n"
	extended := base + "\n\n!\n! a comment\n"

	a := Parse(base, Options{})
	b := Parse(extended, Options{})
	if countNodes(a) != countNodes(b) {
		t.Fatalf("trailing blank/comment lines changed node count: %d vs %d", countNodes(a), countNodes(b))
	}
}

func TestParse_SectionEndLineCoversDescendants(t *testing.T) {
	text := "interface Gi0/1\n description a\n crypto map CM\n  set peer 1.1.1.1\n"
	forest := Parse(text, Options{})
	root := forest[0]
	if root.Location.EndLine != 3 {
		t.Fatalf("expected section end_line 3, got %d", root.Location.EndLine)
	}
}

func TestParse_SanitizesExoticWhitespace(t *testing.T) {
	text := "interface Gi0/1\n"
	forest := Parse(text, Options{})
	if len(forest) != 1 {
		t.Fatalf("expected the NBSP-separated line to still parse as a section, got %+v", forest)
	}
	if forest[0].ID != "interface Gi0/1" {
		t.Fatalf("expected sanitized id, got %q", forest[0].ID)
	}
}
