// Package themes holds the color schemes of the interactive views.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Category    lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Unchecked   lipgloss.Style
	Brand       lipgloss.Style
	Muted       lipgloss.Style
	Price       lipgloss.Style
	Total       lipgloss.Style
	Error       lipgloss.Style
	BorderedBox lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#c084fc"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Category: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#95e1d3")),
	Cursor: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#c084fc")),
	Checked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Unchecked: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Brand: lipgloss.NewStyle().
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Price: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f9a8d4")),
	Total: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#f9a8d4")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	BorderedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
}
