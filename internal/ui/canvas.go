package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// glyph is one screen cell. A wide rune occupies its cell and marks the
// next one as a continuation with an empty text.
type glyph struct {
	text string
	fg   string
	bg   string
	bold bool
}

type glyphStyle struct {
	fg, bg string
	bold   bool
}

// canvas is a character grid the view paints into before it is turned
// into styled lines.
type canvas struct {
	width, height int
	cells         [][]glyph
	// clip bounds writes to [clipLeft, clipRight) x [clipTop, height).
	clipLeft, clipRight, clipTop int
}

func newCanvas(width, height int, bg string) *canvas {
	width, height = max(0, width), max(0, height)
	c := &canvas{width: width, height: height, cells: make([][]glyph, height)}
	for y := 0; y < height; y++ {
		line := make([]glyph, width)
		for x := range line {
			line[x] = glyph{text: " ", bg: bg}
		}
		c.cells[y] = line
	}
	c.resetClip()
	return c
}

func (c *canvas) resetClip() {
	c.clipLeft, c.clipRight, c.clipTop = 0, c.width, 0
}

func (c *canvas) visible(x, y int) bool {
	return y >= c.clipTop && y < c.height && x >= c.clipLeft && x < c.clipRight
}

// fill paints the background of w cells from (x, y).
func (c *canvas) fill(x, y, w int, bg string) {
	for i, n := 0, max(0, w); i < n; i++ {
		if c.visible(x+i, y) {
			c.cells[y][x+i] = glyph{text: " ", bg: bg}
		}
	}
}

// put writes s from (x, y) with the given colors and returns the number of
// cells it advanced. An empty bg keeps the background underneath.
func (c *canvas) put(x, y int, s, fg, bg string, bold bool) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c.visible(col, y) && (w == 1 || c.visible(col+1, y)) {
			cell := &c.cells[y][col]
			cell.text, cell.fg, cell.bold = string(r), fg, bold
			if bg != "" {
				cell.bg = bg
			}
			if w == 2 {
				next := &c.cells[y][col+1]
				next.text, next.fg = "", fg
				if bg != "" {
					next.bg = bg
				}
			}
		}
		col += w
	}
	return col - x
}

// String renders the canvas, merging runs of equal style into one
// lipgloss render each.
func (c *canvas) String() string {
	styles := make(map[glyphStyle]lipgloss.Style)
	styleOf := func(k glyphStyle) lipgloss.Style {
		if s, ok := styles[k]; ok {
			return s
		}
		s := lipgloss.NewStyle().Foreground(termColor(k.fg)).Background(termColor(k.bg)).Bold(k.bold)
		styles[k] = s
		return s
	}

	var b strings.Builder
	for y, line := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var current glyphStyle
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styleOf(current).Render(run.String()))
				run.Reset()
			}
		}
		for x, g := range line {
			k := glyphStyle{fg: g.fg, bg: g.bg, bold: g.bold}
			if x == 0 || k != current {
				flush()
				current = k
			}
			run.WriteString(g.text)
		}
		flush()
	}
	return b.String()
}

// plain returns line y without styling.
func (c *canvas) plain(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, g := range c.cells[y] {
		b.WriteString(g.text)
	}
	return b.String()
}
