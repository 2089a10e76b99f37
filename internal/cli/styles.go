// Package cli renders styling results, history and purchase requests for the terminal.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	Lilac = lipgloss.Color("#C084FC")
	Mint  = lipgloss.Color("#4ECDC4")
	Sand  = lipgloss.Color("#FFE66D")
	Coral = lipgloss.Color("#FF6B6B")
	Sage  = lipgloss.Color("#95E1D3")
	Ash   = lipgloss.Color("#666666")
	Blush = lipgloss.Color("#F9A8D4")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(Lilac).MarginBottom(1)
	SuccessStyle  = lipgloss.NewStyle().Foreground(Mint)
	WarningStyle  = lipgloss.NewStyle().Foreground(Sand)
	ErrorStyle    = lipgloss.NewStyle().Foreground(Coral)
	InfoStyle     = lipgloss.NewStyle().Foreground(Sage)
	SubtleStyle   = lipgloss.NewStyle().Foreground(Ash)
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	PromptStyle   = lipgloss.NewStyle().Bold(true).Foreground(Lilac)
	CategoryStyle = lipgloss.NewStyle().Bold(true).Foreground(Sage).MarginTop(1)

	// PriceStyle highlights won amounts and totals.
	PriceStyle = lipgloss.NewStyle().Bold(true).Foreground(Blush)
)

const (
	StyleIcon = "👗"
	CartIcon  = "🛒"
	OKIcon    = "✓"
	FailIcon  = "✗"
	WarnIcon  = "⚠️"
	NoteIcon  = "ℹ️"
)

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(OKIcon + " " + message)
}

// FormatError prefixes message with a cross.
func FormatError(message string) string {
	return ErrorStyle.Render(FailIcon + " " + message)
}

func FormatWarning(message string) string {
	return WarningStyle.Render(WarnIcon + " " + message)
}

func FormatInfo(message string) string {
	return InfoStyle.Render(NoteIcon + " " + message)
}

// FormatTitle renders a section heading.
func FormatTitle(title string) string {
	return TitleStyle.Render(StyleIcon + " " + title)
}

// FormatPrompt renders a question waiting for input.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// FormatPrice renders a won amount such as 129,000원.
func FormatPrice(price int64) string {
	return PriceStyle.Render(formatWon(price))
}
