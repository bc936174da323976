package highlight

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Default highlighter colors.
const (
	DefaultMinColor = "#5da5da"
	DefaultMidColor = "#60bd68"
	DefaultMaxColor = "#f15854"
)

// FormatColor strips the alpha byte from a "#AARRGGBB" color.
func FormatColor(hex string) string {
	if len(hex) > 7 {
		return "#" + hex[3:]
	}
	return hex
}

var rgbPattern = regexp.MustCompile(`^rgb\((\d+)\s*,\s*(\d+)\s*,\s*(\d+)\)$`)

// Darken scales an "rgb(r, g, b)" color by factor and returns it as hex.
// Colors in any other form are returned unchanged.
func Darken(color string, factor float64) string {
	m := rgbPattern.FindStringSubmatch(color)
	if m == nil {
		return color
	}
	var ch [3]int
	for i := range ch {
		n, _ := strconv.Atoi(m[i+1])
		ch[i] = max(0, min(255, int(math.Floor(float64(n)*factor))))
	}
	return fmt.Sprintf("#%02x%02x%02x", ch[0], ch[1], ch[2])
}

// parseColor reads a hex or rgb() color.
func parseColor(s string) (colorful.Color, bool) {
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
	}
	c, err := colorful.Hex(FormatColor(s))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func rgbString(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Layers are the candidate backgrounds of one cell, most specific first.
type Layers struct {
	Focused     string
	Selection   string
	Highlighter string
	Default     string
}

// BackgroundColor picks the first non-empty layer: focus, selection,
// highlighter, the darkened highlighter under a selection, then the
// default.
func BackgroundColor(l Layers) string {
	blend := ""
	if l.Selection != "" && l.Highlighter != "" {
		blend = Darken(l.Highlighter, 0.8)
	}
	for _, c := range []string{l.Focused, l.Selection, l.Highlighter, blend} {
		if c != "" {
			return c
		}
	}
	return l.Default
}
