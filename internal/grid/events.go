package grid

import (
	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// KeyCode is a key the grid reacts to.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	// KeyRune is a printable key; Key.Rune holds it.
	KeyRune
)

// Key is one key press.
type Key struct {
	Code  KeyCode
	Rune  rune
	Shift bool
}

var navKeys = map[KeyCode]cell.NavKey{
	KeyLeft:     cell.KeyLeft,
	KeyRight:    cell.KeyRight,
	KeyUp:       cell.KeyUp,
	KeyDown:     cell.KeyDown,
	KeyPageUp:   cell.KeyPageUp,
	KeyPageDown: cell.KeyPageDown,
}

// headerResize is a column border drag in the header.
type headerResize struct {
	col    *column.Column
	region model.Region
	index  int
	startX int
	width  int
}

func (g *Grid) isOverHeader(x, y int) bool {
	return x < g.BodyWidth()+g.rowHeader.Length() && y < g.HeaderHeight()
}

// HandleMouseDown starts a grid resize, a column border resize, a header
// drag or a selection, in that order of precedence.
func (g *Grid) HandleMouseDown(x, y int, shift bool) {
	overHeader := g.isOverHeader(x, y)
	if !overHeader && g.resizer.ShouldResize(x, y) {
		g.resizer.SetResizeMode(x, y)
		g.resizer.StartResizing(x, y)
		return
	}
	data := g.CellAt(x, y)
	if overHeader && data != nil && data.Width-data.Delta < g.metrics.ColumnResizeArea {
		if col := g.columns.ColumnByCell(data.Region, data.Column); col != nil {
			g.headerResize = &headerResize{col: col, region: data.Region, index: data.Column, startX: x, width: data.Width}
			return
		}
	}
	if overHeader && data != nil && !(data.Region == model.RegionCornerHeader && data.Column == 0) {
		g.columns.Position().StartDragging(data)
	}
	if !g.columns.Position().IsDragging() {
		g.selection.HandleMouseDown(data, shift)
	}
}

// HandleMouseMove tracks the pointer. pressed reports whether the primary
// button is held.
func (g *Grid) HandleMouseMove(x, y int, pressed bool) {
	if g.resizer.IsResizing() {
		g.resizer.HandleMove(x, y, pressed)
		return
	}
	if hr := g.headerResize; hr != nil {
		if !pressed {
			g.finishHeaderResize()
			return
		}
		sections := g.body
		if hr.region.IsRowHeader() {
			sections = g.rowHeader
		}
		sections.Resize(hr.index, max(g.metrics.MinColumnWidth, hr.width+x-hr.startX))
		g.RepaintBody()
		return
	}

	pos := g.columns.Position()
	if !pressed {
		pos.StopDragging()
	}
	g.resizer.SetResizeMode(x, y)

	pos.MoveDraggedHeader(x, y)
	data := g.CellAt(x, y)
	if data == nil {
		return
	}
	g.hovered = data
	pos.HandleCellHovered(data, x, y)
	if !pos.IsDragging() {
		g.selection.HandleBodyCellHover(data, pressed)
	}
}

func (g *Grid) finishHeaderResize() {
	hr := g.headerResize
	g.headerResize = nil
	sections := g.body
	if hr.region.IsRowHeader() {
		sections = g.rowHeader
	}
	hr.col.SetWidth(sections.SizeOf(hr.index))
	g.resizer.UpdateWidgetWidth()
	g.RepaintBody()
}

// HandleMouseUp finishes the gesture at (x, y). It returns the link under
// the pointer when a body click should open one.
func (g *Grid) HandleMouseUp(x, y int) (url string, ok bool) {
	if g.resizer.IsResizing() {
		g.resizer.StopResizing()
		return "", false
	}
	if g.headerResize != nil {
		g.finishHeaderResize()
		return "", false
	}
	data := g.CellAt(x, y)
	g.selection.HandleMouseUp(data)
	if g.isOverHeader(x, y) {
		g.HandleHeaderClick(data)
	} else {
		url, ok = g.HandleBodyClick(data)
	}
	g.columns.Position().DropColumn()
	return url, ok
}

// HandleHeaderClick toggles the sort of the column under a header cell.
// Clicks that end a header drag are ignored.
func (g *Grid) HandleHeaderClick(data *cell.Data) {
	if !cell.IsHeader(data) || g.columns.Position().DropCell() != nil {
		return
	}
	if col := g.columns.ColumnByPosition(column.PositionFromCell(data)); col != nil {
		col.ToggleSort()
	}
}

// HandleBodyClick returns the link in a clicked body cell when links are
// enabled. The click must land on the hovered cell.
func (g *Grid) HandleBodyClick(data *cell.Data) (string, bool) {
	if data == nil || cell.IsHeader(data) || g.columns.Position().IsDragging() {
		return "", false
	}
	if g.hovered == nil || !cell.Equal(data, g.hovered) {
		return "", false
	}
	if !g.store.Current().AutoLinkTableLinks() {
		return "", false
	}
	return datatype.RetrieveURL(g.hovered.Value)
}

// HandleMouseLeave resets pointer state when the pointer leaves the grid
// with no button held.
func (g *Grid) HandleMouseLeave() {
	g.hovered = nil
	g.resizer.ResetResizeMode()
	g.columns.Position().StopDragging()
	g.SetFocus(false)
}

// HandleDoubleClick emits double click messages for a body cell. Header
// and index cells are ignored.
func (g *Grid) HandleDoubleClick(data *cell.Data) {
	if data == nil || cell.IsHeader(data) || data.Type == model.IndexColumn {
		return
	}
	rowIndex := data.Row
	if r := g.rows.Row(data.Row); r != nil {
		if i, ok := r.Index.(int); ok {
			rowIndex = i
		}
	}
	st := g.store.Current()
	if st.HasDoubleClickAction() {
		g.signal.Emit(comm.DoubleClick{Row: rowIndex, Col: data.Column})
	}
	if st.DoubleClickTag() != "" {
		g.signal.Emit(comm.ActionDetails{ActionType: comm.ActionDoubleClick, Row: rowIndex, Col: data.Column})
	}
	g.logger.Debug("double click", "row", rowIndex, "column", data.Column)
}

// HandleKey applies a key press to the focused cell.
func (g *Grid) HandleKey(k Key) {
	focused := g.focus.FocusedCell()
	var col *column.Column
	if focused != nil {
		col = g.columns.ColumnByCell(focused.Region, focused.Column)
	}

	if k.Code == KeyEnter && focused != nil {
		if !k.Shift || g.selection.StartCell() == nil {
			g.selection.SetStartCell(focused)
		}
		g.selection.HandleCellInteraction(focused)
	}

	if k.Code == KeyRune {
		g.handleRune(k, col)
	}

	nav, ok := navKeys[k.Code]
	if !ok {
		return
	}
	switch {
	case focused != nil:
		g.focus.MoveByKey(nav)
	case k.Code == KeyPageDown:
		g.scrollByPage(1)
	case k.Code == KeyPageUp:
		g.scrollByPage(-1)
	}
	if k.Shift {
		g.selection.SetEndCell(g.focus.FocusedCell())
	}
}

func (g *Grid) handleRune(k Key, col *column.Column) {
	switch r := k.Rune; {
	case r == 'h':
		if col != nil {
			col.ToggleHighlighter(model.HeatmapHighlighter)
		}
	case r == 'u':
		if col != nil {
			col.ToggleHighlighter(model.UniqueEntriesHighlighter)
		}
	case r == 'b':
		if col != nil {
			col.ToggleDataBarsRenderer(nil)
		}
	case r >= '0' && r <= '9':
		precision := int(r - '0')
		if k.Shift && col != nil {
			col.SetDataTypePrecision(precision)
			return
		}
		g.columns.SetColumnsDataTypePrecision(precision)
	}
}

func (g *Grid) scrollByPage(dir int) {
	s := g.scroll
	s.ScrollTo(s.ScrollX(), s.ScrollY()+dir*s.PageHeight())
	g.RepaintBody()
}
