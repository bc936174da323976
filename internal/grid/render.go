package grid

import (
	"fmt"
	"math"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/highlight"
	"github.com/five82/tablegrid/internal/model"
)

// ImagePlaceholder is the text of image cells on surfaces that cannot
// draw images.
const ImagePlaceholder = "[image]"

// BarDirection is the side a data bar grows towards.
type BarDirection int

const (
	BarRight BarDirection = iota
	BarLeft
)

// CellRenderer describes a data bar drawn behind or instead of the text.
type CellRenderer struct {
	Type        string
	IncludeText bool
	// Percent is the bar length relative to the column maximum, in [0, 1].
	Percent   float64
	Direction BarDirection
}

// Paint is everything a surface needs to draw one cell.
type Paint struct {
	Config     cell.Config
	Text       string
	Background string
	Color      string
	Alignment  model.Alignment
	Renderer   *CellRenderer
	// Fallback is set when the column formatter failed and Text is the
	// raw value.
	Fallback bool
}

// Paint resolves every attribute of the cell described by cfg.
func (g *Grid) Paint(cfg cell.Config) Paint {
	text, fallback := g.FormattedValue(cfg)
	return Paint{
		Config:     cfg,
		Text:       text,
		Background: g.BackgroundColor(cfg),
		Color:      g.TextColor(cfg),
		Alignment:  g.Alignment(cfg),
		Renderer:   g.Renderer(cfg),
		Fallback:   fallback,
	}
}

// FormattedValue returns the display text of a cell. A panicking column
// formatter is reported once per column and display type, and the raw
// value is shown instead.
func (g *Grid) FormattedValue(cfg cell.Config) (text string, fallback bool) {
	if cfg.Region.IsHeader() {
		return datatype.ProcessColumnName(cfg.Value), false
	}
	col := g.columns.ColumnByCell(cfg.Region, cfg.Column)
	if col == nil {
		return datatype.ToString(cfg.Value), false
	}
	if col.DisplayType().Type() == datatype.Image {
		return ImagePlaceholder, false
	}
	return g.formatSafely(col, cfg.Value, cfg.Row)
}

func (g *Grid) formatSafely(col *column.Column, value any, row int) (text string, fallback bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		key := fmt.Sprintf("%s/%s", col.Key(), col.DisplayType())
		if !g.fallbacks[key] {
			g.fallbacks[key] = true
			g.logger.Warn("formatter failed, showing raw value", "column", col.Name(), "displayType", col.DisplayType(), "panic", r)
		}
		text, fallback = datatype.ToString(value), true
	}()
	return col.Format(value, row), false
}

// BackgroundColor layers focus, selection and highlighters over the row
// or header background.
func (g *Grid) BackgroundColor(cfg cell.Config) string {
	def := g.palette.HeaderBackground
	if !cfg.Region.IsHeader() {
		def = g.palette.RowBackground(cfg.Row)
		if cfg.Region == model.RegionRowHeader && cfg.Column == 0 {
			def = g.palette.HeaderBackground
		}
	}
	return highlight.BackgroundColor(highlight.Layers{
		Focused:     g.focus.FocusedBackground(cfg, g.palette),
		Selection:   g.selection.BackgroundColor(cfg, g.palette),
		Highlighter: g.highlightSafely(cfg, g.highlighters.CellBackground),
		Default:     def,
	})
}

// highlightSafely runs background for one cell. A panic drops the
// highlighter color for the cell and is reported once per region and
// column.
func (g *Grid) highlightSafely(cfg cell.Config, background func(cell.Config) string) (color string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		key := fmt.Sprintf("highlight/%s/%d", cfg.Region, cfg.Column)
		if !g.fallbacks[key] {
			g.fallbacks[key] = true
			g.logger.Warn("highlighter failed, using default background", "region", cfg.Region, "column", cfg.Column, "panic", r)
		}
		color = ""
	}()
	return background(cfg)
}

// TextColor is the header font for headers and the index column, the
// model font color of a body cell when set, and the data font otherwise.
func (g *Grid) TextColor(cfg cell.Config) string {
	if cfg.Region.IsHeader() || (cfg.Region == model.RegionRowHeader && cfg.Column == 0) {
		return g.palette.HeaderFont
	}
	if col := g.columns.ColumnByCell(cfg.Region, cfg.Column); col != nil {
		if r := g.rows.Row(cfg.Row); r != nil {
			if c := r.FontColor(col.Index()); c != "" {
				return highlight.FormatColor(c)
			}
		}
	}
	return g.palette.DataFont
}

// Alignment returns the horizontal alignment of a cell's column.
func (g *Grid) Alignment(cfg cell.Config) model.Alignment {
	col := g.columns.ColumnByCell(cfg.Region, cfg.Column)
	if col == nil || col.Alignment() == "" {
		return model.AlignLeft
	}
	return col.Alignment()
}

// Renderer returns the data bar of a body cell, or nil when its column has
// no renderer.
func (g *Grid) Renderer(cfg cell.Config) *CellRenderer {
	if cfg.Region.IsHeader() {
		return nil
	}
	col := g.columns.ColumnByCell(cfg.Region, cfg.Column)
	if col == nil || col.Type() == model.IndexColumn {
		return nil
	}
	r := col.Renderer()
	if r == nil || r.Type != model.DataBarsRenderer {
		return nil
	}
	resolve := col.ValueResolver()
	v := datatype.ParseFloat(resolve(cfg.Value))
	hi := math.Abs(datatype.ToNumber(resolve(col.MaxValue())))
	percent := 0.0
	if hi > 0 && !math.IsNaN(v) {
		percent = min(1, math.Abs(v)/hi)
	}
	dir := BarLeft
	if v > 0 {
		dir = BarRight
	}
	return &CellRenderer{Type: r.Type, IncludeText: r.IncludeText, Percent: percent, Direction: dir}
}

// Tooltip returns the model tooltip of a body cell, or the full text when
// it is wider than its section.
func (g *Grid) Tooltip(cfg cell.Config) string {
	if cfg.Region.IsHeader() {
		return ""
	}
	col := g.columns.ColumnByCell(cfg.Region, cfg.Column)
	if col == nil {
		return ""
	}
	if tips := g.store.Current().Tooltips(); len(tips) > 0 {
		i := cfg.Row
		if r := g.rows.Row(cfg.Row); r != nil {
			if idx, ok := r.Index.(int); ok {
				i = idx
			}
		}
		if i >= 0 && i < len(tips) && col.Index() < len(tips[i]) && tips[i][col.Index()] != "" {
			return tips[i][col.Index()]
		}
	}
	text, _ := g.FormattedValue(cfg)
	w, _ := g.measurer.StringSize(text, g.store.Current().DataFontSize())
	if cfg.Width > 0 && w > cfg.Width {
		return text
	}
	return ""
}

// DropIndicator returns the x of the column border a dragged header would
// drop at, in viewport units.
func (g *Grid) DropIndicator() (x int, ok bool) {
	pos := g.columns.Position()
	d := pos.DropCell()
	if !pos.IsDragging() || d == nil {
		return 0, false
	}
	sections := g.body
	if d.Region.IsRowHeader() {
		sections = g.rowHeader
	}
	x = sections.OffsetOf(d.Column)
	if d.Delta > d.Width/2 {
		x += sections.SizeOf(d.Column)
	}
	if !d.Region.IsRowHeader() {
		x += g.rowHeader.Length() - g.ScrollX()
	}
	return x, true
}
