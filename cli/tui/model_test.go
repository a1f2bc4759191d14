package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/confsentry/confsentry/core"
	"github.com/confsentry/confsentry/core/ast"
	"github.com/confsentry/confsentry/core/rules"
)

func testFiles() []core.FileResult {
	return []core.FileResult{
		{
			Path: "router1.cfg",
			Results: []rules.Result{
				{Passed: false, RuleID: "CFG-VTY-TELNET", NodeID: "transport input telnet", Level: rules.LevelError, Message: "telnet enabled on vty line", Loc: ast.Loc{StartLine: 5, EndLine: 5}},
				{Passed: true, RuleID: "CFG-HOSTNAME", NodeID: "hostname r1", Level: rules.LevelInfo, Message: "hostname set"},
			},
		},
		{
			Path: "switch1.cfg",
			Results: []rules.Result{
				{Passed: false, RuleID: "CFG-SNMP-RW", NodeID: "snmp-server community public RW", Level: rules.LevelError, Message: "read-write SNMP community with default string", Loc: ast.Loc{StartLine: 10, EndLine: 10}},
				{Passed: false, RuleID: "CFG-NTP-MISSING", NodeID: "ntp", Level: rules.LevelWarning, Message: "no ntp server configured", Loc: ast.Loc{StartLine: 1, EndLine: 1}},
			},
		},
	}
}

func TestNewModel_OmitsPassingResults(t *testing.T) {
	m := New(testFiles())

	if m.state != listView {
		t.Errorf("initial state = %d, want listView (0)", m.state)
	}
	if len(m.filtered) != 3 {
		t.Errorf("filtered count = %d, want 3", len(m.filtered))
	}
}

func TestModelNavigateDown(t *testing.T) {
	m := New(testFiles())

	if m.cursor != 0 {
		t.Errorf("initial cursor = %d, want 0", m.cursor)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.cursor)
	}
}

func TestModelEnterDetail(t *testing.T) {
	m := New(testFiles())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != detailView {
		t.Errorf("state after enter = %d, want detailView (1)", m.state)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.state != listView {
		t.Errorf("state after esc = %d, want listView (0)", m.state)
	}
}

func TestModelLevelFilter(t *testing.T) {
	m := New(testFiles())

	if len(m.filtered) != 3 {
		t.Errorf("initial filtered = %d, want 3", len(m.filtered))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.filter.activeLevel() != "error" {
		t.Errorf("after first l: level = %q, want error", m.filter.activeLevel())
	}
	if len(m.filtered) != 2 {
		t.Errorf("error filtered = %d, want 2", len(m.filtered))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.filter.activeLevel() != "warning" {
		t.Errorf("after second l: level = %q, want warning", m.filter.activeLevel())
	}
	if len(m.filtered) != 1 {
		t.Errorf("warning filtered = %d, want 1", len(m.filtered))
	}
}

func TestModelSearch(t *testing.T) {
	m := New(testFiles())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filter.searching {
		t.Error("expected searching = true after /")
	}

	for _, r := range "snmp" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filter.searching {
		t.Error("expected searching = false after enter")
	}
	if len(m.filtered) != 1 {
		t.Errorf("search filtered = %d, want 1", len(m.filtered))
	}
}

func TestModelView(t *testing.T) {
	m := New(testFiles())

	view := m.View()
	if view == "" {
		t.Error("View() returned empty string")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	if view == "" {
		t.Error("View() in detail state returned empty string")
	}
}

func TestModelRefresh(t *testing.T) {
	m := New(testFiles())
	if len(m.all) != 3 {
		t.Fatalf("initial all = %d, want 3", len(m.all))
	}

	m.Refresh(testFiles()[:1])
	if len(m.all) != 1 {
		t.Errorf("after refresh all = %d, want 1", len(m.all))
	}
}

func TestModelUpdate_RescanMsgReplacesResults(t *testing.T) {
	m := New(testFiles())

	m.Update(RescanMsg{Files: testFiles()[:1]})
	if len(m.all) != 1 {
		t.Errorf("after RescanMsg all = %d, want 1", len(m.all))
	}
}
