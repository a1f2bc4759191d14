package tui

import (
	"fmt"
	"strings"
)

// renderList renders the result list view.
func renderList(m *Model) string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf(" confsentry — %d results", len(m.filtered)))
	if len(m.all) != len(m.filtered) {
		title += subtleStyle.Render(fmt.Sprintf(" (of %d total)", len(m.all)))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	filterLine := subtleStyle.Render(" Filter: ") + "[" + m.filter.activeLevel() + "]"
	if m.filter.search != "" {
		filterLine += subtleStyle.Render("  Search: ") + "[" + m.filter.search + "]"
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(subtleStyle.Render("  No results match the current filters.\n"))
	} else {
		visibleLines := m.height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}
		start := m.cursor - visibleLines/2
		if start < 0 {
			start = 0
		}
		end := start + visibleLines
		if end > len(m.filtered) {
			end = len(m.filtered)
			start = end - visibleLines
			if start < 0 {
				start = 0
			}
		}

		for i := start; i < end; i++ {
			b.WriteString(renderResultLine(m.filtered[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.filter.searching {
		b.WriteString("\n")
		b.WriteString(" Search: " + m.filter.search + "█")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter detail  / search  l level  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderResultLine renders a single entry line in the list.
func renderResultLine(e entry, selected bool) string {
	badge := levelBadge(e.result.Level)
	ruleID := ruleIDStyle.Render(fmt.Sprintf("%-16s", e.result.RuleID))

	fileLoc := e.filePath
	if e.result.Loc.StartLine > 0 {
		fileLoc = fmt.Sprintf("%s:%d", e.filePath, e.result.Loc.StartLine)
	}
	file := fileStyle.Render(fmt.Sprintf("%-30s", fileLoc))

	line := fmt.Sprintf(" %s  %s  %s  %s", badge, ruleID, file, e.result.Message)

	if selected {
		return selectedStyle.Render("▸") + line
	}
	return " " + line
}
