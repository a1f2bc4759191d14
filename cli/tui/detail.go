package tui

import (
	"fmt"
	"strings"
)

// renderDetail renders the detail view for a single result.
func renderDetail(m *Model) string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "No result selected."
	}

	e := m.filtered[m.cursor]
	r := e.result

	var b strings.Builder

	badge := levelStyle(r.Level).Render(strings.ToUpper(string(r.Level)))
	b.WriteString(fmt.Sprintf(" %s · %s · %s\n", ruleIDStyle.Render(r.RuleID), r.Message, badge))
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	fileLoc := e.filePath
	if r.Loc.StartLine > 0 {
		fileLoc = fmt.Sprintf("%s:%d-%d", e.filePath, r.Loc.StartLine, r.Loc.EndLine)
	}
	b.WriteString(" " + fileStyle.Render(fileLoc) + "\n\n")

	b.WriteString(" " + subtleStyle.Render("Node: ") + r.NodeID + "\n\n")

	if r.Remediation != "" {
		b.WriteString(" " + remediationHeaderStyle.Render("Remediation") + "\n")
		b.WriteString(wrapText(r.Remediation, m.width-4, "   "))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(" esc back  n/p next/prev  q quit"))
	b.WriteString("\n")

	return b.String()
}

// wrapText wraps text at the given width with the given indent prefix.
func wrapText(text string, width int, indent string) string {
	if width <= 0 {
		width = 78
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(indent)
	lineLen := len(indent)

	for i, word := range words {
		if i > 0 && lineLen+1+len(word) > width {
			b.WriteString("\n" + indent)
			lineLen = len(indent)
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	b.WriteString("\n")
	return b.String()
}
