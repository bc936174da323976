package ui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/tablegrid/internal/highlight"
)

var (
	rgbColor = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*[\d.]+\s*)?\)$`)
	hslColor = regexp.MustCompile(`^hsla?\(\s*([\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*[\d.]+\s*)?\)$`)
)

// HexColor converts a CSS color (hex, #AARRGGBB, rgb() or hsl()) to
// "#rrggbb". It reports false for empty or unreadable colors.
func HexColor(css string) (string, bool) {
	css = strings.ToLower(strings.TrimSpace(css))
	if css == "" {
		return "", false
	}
	if m := rgbColor.FindStringSubmatch(css); m != nil {
		return colorful.Color{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}.Clamped().Hex(), true
	}
	if m := hslColor.FindStringSubmatch(css); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, _ := strconv.ParseFloat(m[2], 64)
		l, _ := strconv.ParseFloat(m[3], 64)
		return colorful.Hsl(h, s/100, l/100).Clamped().Hex(), true
	}
	c, err := colorful.Hex(highlight.FormatColor(css))
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

func channel(s string) float64 {
	n, _ := strconv.Atoi(s)
	return float64(min(255, n)) / 255
}

// termColor is the lipgloss color of a CSS color. Unreadable colors are
// the terminal default.
func termColor(css string) lipgloss.TerminalColor {
	hex, ok := HexColor(css)
	if !ok {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}
