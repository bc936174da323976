package column

import (
	"sync"
	"time"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/state"
)

// DragStartDelay is how long a header must be held before the floating
// header appears.
const DragStartDelay = 150 * time.Millisecond

// DraggableHeader is the floating copy of a grabbed header.
type DraggableHeader struct {
	Column  *Column
	X, Y    int
	Width   int
	Height  int
	Visible bool
}

// Position moves columns, either directly or by header drag.
type Position struct {
	m     *Manager
	clock clock.Clock

	mu       sync.Mutex
	dragging bool
	grabbed  *cell.Data
	drop     *cell.Data
	timer    clock.Timer
	header   DraggableHeader
	grabLeft int
}

func newPosition(m *Manager, clk clock.Clock) *Position {
	return &Position{m: m, clock: clk}
}

// PositionFromCell maps a cell onto the column position it renders.
func PositionFromCell(d *cell.Data) model.Position {
	region := model.RegionBody
	if d.Region.IsRowHeader() {
		region = model.RegionRowHeader
	}
	return model.Position{Region: region, Value: d.Column}
}

// StartDragging grabs the header cell d. It is ignored while a drag is
// already in progress.
func (p *Position) StartDragging(d *cell.Data) {
	if d == nil {
		return
	}
	col := p.m.ColumnByPosition(PositionFromCell(d))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dragging {
		return
	}
	grabbed := *d
	p.dragging = true
	p.grabbed = &grabbed
	p.drop = nil

	widths := p.m.grid.ColumnSections()
	if d.Region == model.RegionCornerHeader {
		widths = p.m.grid.RowHeaderSections()
	}
	p.header = DraggableHeader{
		Column: col,
		X:      d.Offset,
		Width:  max(0, widths.SizeOf(d.Column)-1),
		Height: max(0, p.m.grid.ColumnHeaderSections().SizeOf(d.Row)-1),
	}
	p.grabLeft = d.Delta
	p.timer = p.clock.AfterFunc(DragStartDelay, p.showHeader)
}

func (p *Position) showHeader() {
	p.mu.Lock()
	if p.dragging {
		p.header.Visible = true
	}
	p.mu.Unlock()
	p.m.grid.RepaintBody()
}

// IsDragging reports whether a header is grabbed.
func (p *Position) IsDragging() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dragging
}

// GrabbedCell returns a copy of the grabbed cell, or nil.
func (p *Position) GrabbedCell() *cell.Data {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyData(p.grabbed)
}

// DropCell returns a copy of the current drop target, or nil.
func (p *Position) DropCell() *cell.Data {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyData(p.drop)
}

// Header returns the floating header state.
func (p *Position) Header() DraggableHeader {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header
}

func copyData(d *cell.Data) *cell.Data {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// MoveDraggedHeader follows the pointer. It reports false while a drag is
// in progress so callers stop handling the move.
func (p *Position) MoveDraggedHeader(x, y int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dragging {
		return true
	}
	p.header.X = x - p.grabLeft
	p.header.Y = y
	return false
}

// HandleCellHovered updates the drop target for a pointer at (x, y) over
// cell d. The target snaps to the neighbour on the side the header is
// moving towards.
func (p *Position) HandleCellHovered(d *cell.Data, x, y int) {
	p.mu.Lock()
	grabbed := p.grabbed
	p.mu.Unlock()
	if d == nil || grabbed == nil || grabbed.Type != d.Type {
		return
	}

	movingRight := d.Column >= grabbed.Column
	leftHalf := d.Delta < d.Width/2
	target := d
	switch {
	case !leftHalf && !movingRight:
		target = p.m.grid.CellAt(x+d.Width-d.Delta+1, y)
	case leftHalf && movingRight:
		target = p.m.grid.CellAt(x-d.Delta-1, y)
	}

	p.mu.Lock()
	if p.dragging {
		p.drop = copyData(target)
	}
	p.mu.Unlock()
	p.m.grid.RepaintBody()
}

// DropColumn moves the grabbed column to the drop target and ends the
// drag. Without a target it only ends the drag.
func (p *Position) DropColumn() {
	p.mu.Lock()
	grabbed, drop := p.grabbed, p.drop
	p.mu.Unlock()
	if grabbed == nil || drop == nil {
		p.StopDragging()
		return
	}

	col := p.m.ColumnByPosition(PositionFromCell(grabbed))
	dest := *drop
	if !drop.Region.IsRowHeader() {
		dest.Column += p.m.store.Current().ColumnsFrozenCount()
	}
	if col != nil {
		p.SetPosition(col, PositionFromCell(&dest))
	}
	p.StopDragging()
}

// StopDragging ends any drag. It is safe to call in any state.
func (p *Position) StopDragging() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if !p.dragging {
		p.mu.Unlock()
		return
	}
	p.dragging = false
	p.grabbed, p.drop = nil, nil
	p.header = DraggableHeader{}
	p.grabLeft = 0
	p.mu.Unlock()
	p.m.grid.RepaintBody()
}

// SetPosition moves col to pos and recomputes every position.
func (p *Position) SetPosition(col *Column, pos model.Position) {
	if p.m.dispatch(state.UpdateColumnOrder{Name: col.Name(), Position: pos}) {
		p.UpdateAll()
	}
}

func (p *Position) applyOrder() bool {
	st := p.m.store.Current()
	order := st.ColumnOrder()
	if len(order) == 0 {
		order = st.ColumnNames()
	}
	return p.m.dispatch(state.UpdateColumnPositions{
		Order:       order,
		HasIndex:    st.HasIndex(),
		FrozenNames: st.ColumnsFrozenNames(),
		Visible:     st.ColumnsVisible(),
	})
}

// UpdateAll recomputes column positions and resizes the grid.
func (p *Position) UpdateAll() {
	p.applyOrder()
	p.m.grid.Resize()
}

// Reset recomputes positions, resizes and resets the data model.
func (p *Position) Reset() {
	p.applyOrder()
	p.m.grid.Resize()
	p.m.grid.ResetModel()
}

// ColumnByPosition returns the column at pos. {row-header, 0} is the index
// column.
func (p *Position) ColumnByPosition(pos model.Position) *Column {
	index, ok := p.m.store.Current().ColumnIndexByPosition(pos)
	if !ok {
		return nil
	}
	t := model.BodyColumn
	if pos.Region == model.RegionRowHeader && pos.Value == 0 {
		t = model.IndexColumn
	}
	return p.m.ColumnByIndex(t, index)
}
