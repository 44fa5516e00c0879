package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Slate palette
var (
	ColorSlate = lipgloss.Color("#8FA7B3") // primary accent
	ColorDeep  = lipgloss.Color("#596E79") // secondary text, borders
	ColorDark  = lipgloss.Color("#2C3E50") // dark background elements
	ColorText  = lipgloss.Color("#E0E0E0") // primary text
	ColorAlert = lipgloss.Color("#FF6B6B") // errors, failed commands
	ColorGood  = lipgloss.Color("#4ECDC4") // success
	ColorWarn  = lipgloss.Color("#FFE66D") // warnings, unknown persistence
	ColorMuted = lipgloss.Color("#6c757d") // muted text
)

var (
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorSlate).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Italic(true)

	StyleStatusGood = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatusBad  = lipgloss.NewStyle().Foreground(ColorAlert).Bold(true)
	StyleStatusWarn = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			Margin(0, 1)

	StyleApp = lipgloss.NewStyle().Margin(1, 2)

	StyleTopBar = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			MarginBottom(1)

	StyleMenuItem = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Padding(0, 1)

	StyleMenuItemActive = lipgloss.NewStyle().
				Foreground(ColorDark).
				Background(ColorSlate).
				Bold(true).
				Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true)

	StyleError = lipgloss.NewStyle().Foreground(ColorAlert)
)

// newTable builds a bubbles table with the shared look.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorDeep).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorSlate).
		Background(ColorDark).
		Bold(false)
	t.SetStyles(s)
	return t
}
