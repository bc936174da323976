package grid

import (
	"math"

	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
)

// ResizeMode is the edge a grid resize drags.
type ResizeMode int

const (
	ResizeNone ResizeMode = iota
	ResizeHorizontal
	ResizeVertical
	ResizeBoth
)

// Cursor is the pointer shape hosts show for the mode.
func (m ResizeMode) Cursor() string {
	switch m {
	case ResizeHorizontal:
		return "ew-resize"
	case ResizeVertical:
		return "ns-resize"
	case ResizeBoth:
		return "nwse-resize"
	}
	return "auto"
}

type resizeStart struct {
	width, height int
	x, y          int
}

// Resizer sizes sections from their content and resizes the whole grid by
// dragging its outer edges.
type Resizer struct {
	g *Grid

	mode     ResizeMode
	resizing bool
	start    resizeStart

	width    int
	height   int
	maxWidth int
	// resizedHorizontally is set once the user dragged the width.
	resizedHorizontally bool
}

func newResizer(g *Grid) *Resizer {
	return &Resizer{g: g}
}

// Width is the widget width, padding included.
func (r *Resizer) Width() int  { return r.width }
func (r *Resizer) Height() int { return r.height }

// SetMaxWidth bounds the widget width. Zero leaves it unbounded.
func (r *Resizer) SetMaxWidth(w int) {
	r.maxWidth = max(0, w)
	r.UpdateWidgetWidth()
}

func (r *Resizer) MaxWidth() int { return r.maxWidth }

// ViewportWidth is the drawable width inside the grid padding.
func (r *Resizer) ViewportWidth() int {
	return max(0, r.width-2*r.g.metrics.GridPadding)
}

func (r *Resizer) ViewportHeight() int {
	return max(0, r.height-2*r.g.metrics.GridPadding)
}

func (r *Resizer) Mode() ResizeMode          { return r.mode }
func (r *Resizer) IsResizing() bool          { return r.resizing }
func (r *Resizer) ResizedHorizontally() bool { return r.resizedHorizontally }

// SetInitialSize sizes rows, headers and every section from the model.
func (r *Resizer) SetInitialSize() {
	r.setBaseColumnSize()
	r.SetBaseRowSize()
	r.ResizeHeader()
	r.UpdateWidgetHeight()
	r.setInitialSectionWidths()
	r.resizeSections()
	r.UpdateWidgetWidth()
}

// Resize refits the widget after columns moved or changed size.
func (r *Resizer) Resize() {
	r.g.syncSections()
	r.UpdateWidgetHeight()
	r.ResizeHeader()
	r.resizeSections()
	r.UpdateWidgetWidth()
}

// UpdateWidgetHeight fits the widget to the first RowsToShow rows.
func (r *Resizer) UpdateWidgetHeight() {
	rowCount := r.g.rowSections.Count()
	if n := r.g.rows.RowsToShow(); n != row.AllRows && n < rowCount {
		rowCount = n
	}
	height := 0
	for i := 0; i < rowCount; i++ {
		height += r.g.rowSections.SizeOf(i)
	}
	r.height = height + r.g.HeaderHeight() + 2*r.g.metrics.GridPadding
}

// UpdateWidgetWidth fits the widget to its columns, bounded by the max
// width.
func (r *Resizer) UpdateWidgetWidth() {
	width := r.g.BodyWidth() + r.g.HeaderWidth() + 2*r.g.metrics.GridPadding
	if r.maxWidth > 0 && width >= r.maxWidth {
		width = r.maxWidth
	}
	r.width = width
}

func (r *Resizer) setBaseColumnSize() {
	r.g.body.SetBaseSize(r.g.metrics.MinColumnWidth)
	r.g.rowHeader.SetBaseSize(r.g.metrics.MinColumnWidth)
}

// SetBaseRowSize derives the row height from the data font size.
func (r *Resizer) SetBaseRowSize() {
	r.g.rowSections.SetBaseSize(r.rowSize(r.g.store.Current().DataFontSize()))
}

func (r *Resizer) rowSize(fontSize float64) int {
	m := r.g.metrics
	if m.FixedRowHeight || fontSize <= 0 || math.IsInf(fontSize, 0) || math.IsNaN(fontSize) {
		return m.DefaultRowHeight
	}
	return int(math.Round(fontSize)) + 2*m.RowPadding
}

// ResizeHeader sets the header height from the header font, or from the
// longest column name when headers are vertical.
func (r *Resizer) ResizeHeader() {
	st := r.g.store.Current()
	height := max(r.rowSize(st.HeaderFontSize()), r.g.metrics.DefaultRowHeight)
	if st.HeadersVertical() {
		names := append(r.g.columns.BodyColumnNames(), r.g.columns.IndexColumnNames()...)
		for _, name := range names {
			w, _ := r.g.measurer.StringSize(name, st.HeaderFontSize())
			height = max(height, w)
		}
	}
	r.g.header.SetBaseSize(height)
}

func (r *Resizer) setInitialSectionWidths() {
	for i := r.g.body.Count() - 1; i >= 0; i-- {
		r.setInitialSectionWidthAt(model.Position{Region: model.RegionBody, Value: i})
	}
	for i := r.g.rowHeader.Count() - 1; i >= 0; i-- {
		r.setInitialSectionWidthAt(model.Position{Region: model.RegionRowHeader, Value: i})
	}
}

func (r *Resizer) setInitialSectionWidthAt(pos model.Position) {
	if col := r.g.columns.ColumnByPosition(pos); col != nil {
		r.setSectionWidth(col, r.SectionWidth(col))
	}
}

// SetInitialSectionWidth resizes a column to fit its content.
func (r *Resizer) SetInitialSectionWidth(col *column.Column) {
	if col == nil || !col.IsVisible() {
		return
	}
	r.setSectionWidth(col, r.SectionWidth(col))
}

func (r *Resizer) sectionsFor(pos model.Position) interface{ Resize(i, size int) } {
	if pos.Region == model.RegionRowHeader {
		return r.g.rowHeader
	}
	return r.g.body
}

func (r *Resizer) setSectionWidth(col *column.Column, width int) {
	pos := col.Position()
	r.sectionsFor(pos).Resize(pos.Value, width)
	col.SetWidth(width)
}

// resizeSections applies the stored widths, sizing columns without one.
func (r *Resizer) resizeSections() {
	for _, col := range r.g.columns.Columns() {
		if !col.IsVisible() {
			continue
		}
		w := col.Width()
		if w == 0 {
			r.setSectionWidth(col, r.SectionWidth(col))
			continue
		}
		pos := col.Position()
		r.sectionsFor(pos).Resize(pos.Value, w)
	}
}

// SectionWidth is the width a column wants. Image columns keep their
// width, HTML columns keep an explicit one, and the rest fit their
// content.
func (r *Resizer) SectionWidth(col *column.Column) int {
	fixed := col.Width()
	switch col.DisplayType().Type() {
	case datatype.Image:
		if fixed == 0 {
			return 1
		}
		return fixed
	case datatype.HTML:
		if fixed != 0 {
			return fixed
		}
	}
	return r.CalculateSectionWidth(col)
}

// CalculateSectionWidth fits the wider of the header name and the
// formatted longest value.
func (r *Resizer) CalculateSectionWidth(col *column.Column) int {
	st := r.g.store.Current()
	m := r.g.metrics

	sample := col.LongestStringValue()
	if !datatype.Truthy(sample) {
		sample = col.MaxValue()
	}
	value, _ := r.g.formatSafely(col, sample, 0)

	nameW, nameH := r.g.measurer.StringSize(col.Name(), st.HeaderFontSize())
	valueW, _ := r.g.measurer.StringSize(value, st.DataFontSize())
	nameW += m.HeaderMenuSpace
	name := nameW
	if st.HeadersVertical() {
		name = nameH
	}
	result := valueW
	if name > valueW-m.ValueSlack {
		result = name
	}
	return max(result, m.MinColumnWidth)
}

// ShouldResize reports whether (x, y) is on a resizable outer edge.
func (r *Resizer) ShouldResize(x, y int) bool {
	h, v := r.hotzone(x, y)
	return h || v
}

func (r *Resizer) hotzone(x, y int) (horizontal, vertical bool) {
	zone := r.g.metrics.ResizeHotzone
	dx := x - r.ViewportWidth()
	dy := y - r.ViewportHeight()
	return dx >= 0 && dx <= zone, dy >= 0 && dy <= zone
}

// SetResizeMode picks the mode for a pointer at (x, y).
func (r *Resizer) SetResizeMode(x, y int) {
	h, v := r.hotzone(x, y)
	switch {
	case h && v:
		r.mode = ResizeBoth
	case v:
		r.mode = ResizeVertical
	case h:
		r.mode = ResizeHorizontal
	default:
		if !r.resizing {
			r.mode = ResizeNone
		}
	}
}

// ResetResizeMode clears the mode unless a resize is running.
func (r *Resizer) ResetResizeMode() {
	if !r.resizing {
		r.mode = ResizeNone
	}
}

// StartResizing begins a drag from (x, y) in the current mode.
func (r *Resizer) StartResizing(x, y int) {
	r.start = resizeStart{width: r.ViewportWidth(), height: r.ViewportHeight(), x: x, y: y}
	r.resizing = true
}

// StopResizing ends a drag. It is safe to call when no drag is running.
func (r *Resizer) StopResizing() {
	r.resizing = false
	r.mode = ResizeNone
}

// HandleMove applies a drag to (x, y). Moves without the button pressed
// are ignored.
func (r *Resizer) HandleMove(x, y int, pressed bool) {
	if !r.resizing || !pressed {
		return
	}
	if r.mode == ResizeBoth || r.mode == ResizeHorizontal {
		r.width = r.resizedWidth(x)
		r.resizedHorizontally = true
		r.FillEmptyDataGridSpace()
	}
	if r.mode == ResizeBoth || r.mode == ResizeVertical {
		rowHeight := max(1, r.g.rowSections.BaseSize())
		height := max(r.start.height+y-r.start.y, rowHeight)
		n := int(math.Round(float64(height) / float64(rowHeight)))
		r.g.rows.SetRowsToShow(max(n, 1))
	}
	r.g.RepaintBody()
}

func (r *Resizer) resizedWidth(x int) int {
	w := r.start.width + x - r.start.x + 2*r.g.metrics.GridPadding
	if floor := 2 * r.g.body.BaseSize(); w < floor {
		return floor
	}
	if r.maxWidth > 0 {
		return min(w, r.maxWidth)
	}
	return w
}

// FillEmptyDataGridSpace spreads the gap between the widget width and the
// columns over every section. No section shrinks below its content width.
func (r *Resizer) FillEmptyDataGridSpace() {
	count := r.g.body.Count() + r.g.rowHeader.Count()
	if count == 0 {
		return
	}
	space := r.width - r.g.TotalWidth() - 2*r.g.metrics.GridPadding
	value := int(math.Round(float64(space) / float64(count)))

	fill := func(region model.Region, n int) {
		for i := 0; i < n; i++ {
			col := r.g.columns.ColumnByPosition(model.Position{Region: region, Value: i})
			if col == nil {
				continue
			}
			r.setSectionWidth(col, max(r.SectionWidth(col), col.Width()+value))
		}
	}
	fill(model.RegionBody, r.g.body.Count())
	fill(model.RegionRowHeader, r.g.rowHeader.Count())
}
