package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/confsentry/confsentry/core/rules"
)

var (
	// Level colors.
	colorError   = lipgloss.Color("#FF0000")
	colorWarning = lipgloss.Color("#FFD700")
	colorInfo    = lipgloss.Color("#4169E1")

	// UI colors.
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorSubtle   = lipgloss.Color("#666666")
	colorSelected = lipgloss.Color("#7D56F4")
	colorMatch    = lipgloss.Color("#FF6B6B")

	// Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected)

	matchLineStyle = lipgloss.NewStyle().
			Foreground(colorMatch)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSubtle)

	ruleIDStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#88C0D0"))

	remediationHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#A3BE8C"))
)

// levelStyle returns a styled severity badge for a rule level.
func levelStyle(lvl rules.Level) lipgloss.Style {
	var color lipgloss.Color
	switch lvl {
	case rules.LevelError:
		color = colorError
	case rules.LevelWarning:
		color = colorWarning
	default:
		color = colorInfo
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// levelBadge returns a short level string for list display.
func levelBadge(lvl rules.Level) string {
	style := levelStyle(lvl)
	switch lvl {
	case rules.LevelError:
		return style.Render(" ERR")
	case rules.LevelWarning:
		return style.Render(" WRN")
	default:
		return style.Render("INFO")
	}
}
