package highlight

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
	"github.com/five82/tablegrid/internal/theme"
)

// Highlighter colors the cells of one column.
type Highlighter interface {
	Column() *column.Column
	State() model.HighlighterState
	// Background returns the cell color, or "" for none.
	Background(cfg cell.Config) string
}

// Rows is the row data highlighters read.
type Rows interface {
	Rows() []*row.Row
	ValueByColumn(row, column int, t model.ColumnType) any
}

type base struct {
	col    *column.Column
	rows   Rows
	state  model.HighlighterState
	minVal float64
	maxVal float64
}

func newBase(col *column.Column, rows Rows, st model.HighlighterState) base {
	st = st.Clone()
	if st.Style == "" {
		st.Style = model.SingleColumn
	}
	resolve := col.ValueResolver()
	return base{
		col:    col,
		rows:   rows,
		state:  st,
		minVal: bound(st.MinVal, col.MinValue(), resolve),
		maxVal: bound(st.MaxVal, col.MaxValue(), resolve),
	}
}

// bound is the configured limit when it is finite, otherwise the column
// statistic, resolved to a number.
func bound(configured *float64, stat any, resolve datatype.Resolver) float64 {
	var v any = stat
	if configured != nil && !math.IsNaN(*configured) && !math.IsInf(*configured, 0) {
		v = *configured
	}
	return datatype.ToNumber(resolve(v))
}

func (b *base) Column() *column.Column        { return b.col }
func (b *base) State() model.HighlighterState { return b.state.Clone() }

// value resolves the value to highlight. FULL_ROW reads the highlighted
// column in the cell's row.
func (b *base) value(cfg cell.Config) any {
	v := cfg.Value
	if b.state.Style == model.FullRow {
		v = b.rows.ValueByColumn(cfg.Row, b.col.Index(), b.col.Type())
	}
	return b.col.ValueResolver()(v)
}

type heatmap struct {
	base
	domain []float64
	colors []colorful.Color
}

func newHeatmap(col *column.Column, rows Rows, st model.HighlighterState) *heatmap {
	h := &heatmap{base: newBase(col, rows, st)}
	h.state.MinColor = FormatColor(orDefault(h.state.MinColor, DefaultMinColor))
	h.state.MaxColor = FormatColor(orDefault(h.state.MaxColor, DefaultMaxColor))
	h.domain = []float64{h.minVal, h.maxVal}
	h.colors = colorsOf(h.state.MinColor, h.state.MaxColor)
	return h
}

func newThreeColorHeatmap(col *column.Column, rows Rows, st model.HighlighterState) *heatmap {
	h := newHeatmap(col, rows, st)
	mid := (h.minVal + h.maxVal) / 2
	if m := h.state.MidVal; m != nil && !math.IsNaN(*m) && !math.IsInf(*m, 0) {
		mid = *m
	}
	h.state.MidColor = FormatColor(orDefault(h.state.MidColor, DefaultMidColor))
	h.domain = []float64{h.minVal, mid, h.maxVal}
	h.colors = colorsOf(h.state.MinColor, h.state.MidColor, h.state.MaxColor)
	return h
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func colorsOf(hex ...string) []colorful.Color {
	out := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, _ := parseColor(h)
		out[i] = c
	}
	return out
}

func (h *heatmap) Background(cfg cell.Config) string {
	v := datatype.ToNumber(h.value(cfg))
	if math.IsNaN(v) {
		return ""
	}
	return h.scale(v)
}

// scale maps v linearly across the piecewise domain. Values outside the
// domain extrapolate from the nearest segment and clamp per channel.
func (h *heatmap) scale(v float64) string {
	n := len(h.domain)
	i := 0
	for i < n-2 && v > h.domain[i+1] {
		i++
	}
	lo, hi := h.domain[i], h.domain[i+1]
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return ""
	}
	t := 0.5
	if hi != lo {
		t = (v - lo) / (hi - lo)
	}
	return rgbString(h.colors[i].BlendRgb(h.colors[i+1], t))
}

type uniqueEntries struct {
	base
	colors map[string]string
}

func newUniqueEntries(col *column.Column, rows Rows, st model.HighlighterState, columnCount int, p theme.Palette) *uniqueEntries {
	u := &uniqueEntries{base: newBase(col, rows, st), colors: make(map[string]string)}
	start := 0.0
	if columnCount > 0 {
		start = float64(col.Index()) / float64(columnCount)
	}
	seq := newHSLSequence(start, p.MinSaturation, p.MinLightness)
	resolve := col.ValueResolver()
	for _, r := range rows.Rows() {
		v := r.Index
		if col.Type() == model.BodyColumn {
			v = r.Value(col.Index())
		}
		key := datatype.ToString(resolve(v))
		if _, ok := u.colors[key]; ok {
			continue
		}
		u.colors[key] = seq.next()
	}
	return u
}

func (u *uniqueEntries) Background(cfg cell.Config) string {
	return u.colors[datatype.ToString(u.value(cfg))]
}

type valueHighlighter struct {
	base
}

func newValueHighlighter(col *column.Column, rows Rows, st model.HighlighterState) *valueHighlighter {
	v := &valueHighlighter{base: newBase(col, rows, st)}
	v.state.Style = model.SingleColumn
	return v
}

func (v *valueHighlighter) Background(cfg cell.Config) string {
	if cfg.Row < 0 || cfg.Row >= len(v.state.Colors) {
		return ""
	}
	return FormatColor(v.state.Colors[cfg.Row])
}

type sortHighlighter struct {
	base
	palette theme.Palette
}

func (s *sortHighlighter) Background(cfg cell.Config) string {
	if cfg.Row%2 == 0 {
		return s.palette.SortEven
	}
	return s.palette.SortOdd
}
