package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BgStyle renders bar text with one background across every character.
// lipgloss resets between styled segments, which leaves gaps in the
// background unless each segment carries it.
type BgStyle struct {
	bg    lipgloss.TerminalColor
	space string
}

// NewBgStyle creates a background style helper for a CSS color.
func NewBgStyle(css string) BgStyle {
	bg := termColor(css)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style on the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(b.bg).Render(text)
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(b.space, n)
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine truncates rendered content to width and pads the rest with the
// background.
func (b BgStyle) FillLine(content string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(content) > width {
		content = ansi.Truncate(content, width, "…")
	}
	return content + b.Spaces(width-ansi.StringWidth(content))
}

// Split places left and right on one line of width, truncating left when
// they do not fit.
func (b BgStyle) Split(left, right string, width int) string {
	gap := width - ansi.StringWidth(right)
	if gap <= 0 {
		return b.FillLine(right, width)
	}
	return b.FillLine(left, gap) + right
}
