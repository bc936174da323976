package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/grid"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/theme"
)

// Sort markers appended to header names.
const (
	sortAscMarker  = " ▲"
	sortDescMarker = " ▼"
	dropMarker     = "┃"
)

// gridPainter draws one frame of a grid onto a canvas.
type gridPainter struct {
	g       *grid.Grid
	host    *Host
	palette theme.Palette
	c       *canvas
}

func paintGrid(g *grid.Grid, h *Host, width, height int) *canvas {
	p := g.Palette()
	c := newCanvas(width, height, p.Void)
	gp := gridPainter{g: g, host: h, palette: p, c: c}
	gp.paint()
	return c
}

func (p gridPainter) paint() {
	g, c := p.g, p.c
	vw, vh := min(p.host.VisibleWidth(), c.width), min(p.host.VisibleHeight(), c.height)
	for y := 0; y < vh; y++ {
		c.fill(0, y, vw, p.palette.Background)
	}

	rows := g.RowSections()
	hw, hh := g.HeaderWidth(), g.HeaderHeight()
	sx, sy := g.ScrollX(), g.ScrollY()

	p.columns(vw, hw, sx, model.RegionCornerHeader, model.RegionColumnHeader, func(region model.Region, col, x, w int) {
		cfg := g.CellConfig(region, 0, col)
		for line, n := 0, min(hh, vh); line < n; line++ {
			p.header(cfg, x, line, w, hh)
		}
	})

	c.clipTop = hh
	for r := max(0, rows.IndexOf(sy)); r >= 0 && r < rows.Count(); r++ {
		y := hh + rows.OffsetOf(r) - sy
		if y >= vh {
			break
		}
		p.columns(vw, hw, sx, model.RegionRowHeader, model.RegionBody, func(region model.Region, col, x, w int) {
			p.body(g.Paint(g.CellConfig(region, r, col)), x, y, w)
		})
	}
	c.resetClip()
	p.drag(vw, hh)
}

// columns calls draw for every visible column: the row header columns at
// their fixed offsets, then the scrolled body columns clipped to the right
// of the row header.
func (p gridPainter) columns(vw, hw, sx int, headerRegion, bodyRegion model.Region, draw func(region model.Region, col, x, w int)) {
	rowHeader, body := p.g.RowHeaderSections(), p.g.ColumnSections()
	p.c.clipLeft, p.c.clipRight = 0, vw
	for i, n := 0, rowHeader.Count(); i < n; i++ {
		draw(headerRegion, i, rowHeader.OffsetOf(i), rowHeader.SizeOf(i))
	}
	p.c.clipLeft = min(hw, vw)
	for i, n := 0, body.Count(); i < n; i++ {
		x := hw + body.OffsetOf(i) - sx
		w := body.SizeOf(i)
		if x >= vw {
			break
		}
		if x+w <= hw {
			continue
		}
		draw(bodyRegion, i, x, w)
	}
	p.c.clipLeft, p.c.clipRight = 0, p.c.width
}

func (p gridPainter) header(cfg cell.Config, x, line, w, height int) {
	paint := p.g.Paint(cfg)
	text := paint.Text
	if col := p.g.Column(cfg.Region, cfg.Column); col != nil {
		switch col.SortOrder() {
		case model.SortAsc:
			text += sortAscMarker
		case model.SortDesc:
			text += sortDescMarker
		}
	}
	row := cfg.Y + line
	p.c.fill(x, row, w, paint.Background)

	vertical := p.g.Store().Current().HeadersVertical()
	switch {
	case vertical:
		runes := []rune(text)
		if line < len(runes) {
			p.c.put(x+1, row, string(runes[line]), paint.Color, "", true)
		}
	case line == height-1:
		p.c.put(x, row, alignText(text, w, paint.Alignment), paint.Color, "", true)
	}
}

func (p gridPainter) body(paint grid.Paint, x, y, w int) {
	fg := paint.Color
	if paint.Fallback {
		fg = p.palette.Danger
	}
	bg := paint.Background
	if bg == "" {
		bg = p.palette.Background
	}
	p.c.fill(x, y, w, bg)

	r := paint.Renderer
	if r == nil {
		p.c.put(x, y, alignText(paint.Text, w, paint.Alignment), fg, "", false)
		return
	}
	bar := barLength(r.Percent, w)
	start := x
	if r.Direction == grid.BarLeft {
		start = x + w - bar
	}
	p.c.fill(start, y, bar, p.palette.Highlight)
	if r.IncludeText {
		p.c.put(x, y, alignText(paint.Text, w, paint.Alignment), fg, "", false)
	}
}

// barLength is the number of cells a data bar of percent fills inside a
// cell of width w, keeping one cell of padding on each side.
func barLength(percent float64, w int) int {
	inner := max(0, w-2)
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	return max(1, min(inner, int(math.Round(percent*float64(inner)))))
}

func (p gridPainter) drag(vw, hh int) {
	if x, ok := p.g.DropIndicator(); ok && x >= 0 && x < vw {
		for y := 0; y < hh; y++ {
			p.c.put(x, y, dropMarker, p.palette.Highlight, "", true)
		}
	}
	h := p.g.Position().Header()
	if !h.Visible || h.Column == nil {
		return
	}
	w := h.Width + 1
	for y, n := 0, max(1, h.Height+1); y < n; y++ {
		p.c.fill(h.X, y, w, p.palette.Selected)
	}
	p.c.put(h.X, max(0, h.Height), alignText(h.Column.Name(), w, model.AlignLeft), p.palette.HeaderFont, "", true)
}

// alignText fits text into a cell of width w with one cell of padding on
// each side, truncating with an ellipsis when it is too wide.
func alignText(text string, w int, align model.Alignment) string {
	inner := w - 2
	if inner <= 0 {
		return ansi.Truncate(text, max(0, w), "")
	}
	if ansi.StringWidth(text) > inner {
		text = ansi.Truncate(text, inner, "…")
	}
	gap := inner - ansi.StringWidth(text)
	switch align {
	case model.AlignRight:
		return " " + strings.Repeat(" ", gap) + text + " "
	case model.AlignCenter:
		left := gap / 2
		return " " + strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left) + " "
	default:
		return " " + text + strings.Repeat(" ", gap) + " "
	}
}

// paintTooltip draws tip in a box below (x, y), moved left or above when it
// would leave the canvas.
func paintTooltip(c *canvas, p theme.Palette, tip string, x, y int) {
	if tip == "" {
		return
	}
	lines := strings.Split(wordwrap.String(tip, TooltipWidth), "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	w += 2
	top := y + 1
	if top+len(lines) > c.height {
		top = max(0, y-len(lines))
	}
	left := max(0, min(x, c.width-w))
	for i, l := range lines {
		c.fill(left, top+i, w, p.HeaderBackground)
		c.put(left+1, top+i, l, p.DataFont, "", false)
	}
}
