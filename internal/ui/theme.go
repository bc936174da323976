package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tablegrid/internal/theme"
)

// Styles contains pre-built Lipgloss styles for the chrome around the
// grid. Cells are styled from the palette directly.
type Styles struct {
	Palette theme.Palette

	// Bars
	Title  lipgloss.Style
	Status lipgloss.Style
	Footer lipgloss.Style

	// Text
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style
	KeyText    lipgloss.Style

	// Overlays
	Modal    lipgloss.Style
	Selected lipgloss.Style
	Tooltip  lipgloss.Style
}

// NewStyles builds the chrome styles of a palette.
func NewStyles(p theme.Palette) Styles {
	fg := termColor(p.DataFont)
	bg := termColor(p.Background)
	bar := termColor(p.HeaderBackground)
	muted := termColor(p.HeaderFont)
	accent := termColor(p.Highlight)

	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Background(bar).
			Foreground(termColor(p.HeaderFont)).
			Bold(true),

		Status: lipgloss.NewStyle().
			Background(bar).
			Foreground(fg),

		Footer: lipgloss.NewStyle().
			Background(bg).
			Foreground(muted),

		Text: lipgloss.NewStyle().
			Foreground(fg),

		MutedText: lipgloss.NewStyle().
			Foreground(muted),

		AccentText: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		DangerText: lipgloss.NewStyle().
			Foreground(termColor(p.Danger)).
			Bold(true),

		KeyText: lipgloss.NewStyle().
			Foreground(accent).
			Width(14),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(bg).
			Foreground(fg).
			Padding(1, 2),

		Selected: lipgloss.NewStyle().
			Background(termColor(p.Selected)).
			Foreground(fg),

		Tooltip: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Background(bar).
			Foreground(fg),
	}
}
