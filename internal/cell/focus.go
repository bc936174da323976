package cell

import (
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/surface"
	"github.com/five82/tablegrid/internal/theme"
)

// NavKey is a focus navigation key.
type NavKey int

const (
	KeyLeft NavKey = iota
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// FocusHost is the grid state the focus manager reads.
type FocusHost interface {
	// FrozenCount is the number of frozen body columns.
	FrozenCount() int
	// VisibleBodyColumnCount counts visible body columns, frozen included.
	VisibleBodyColumnCount() int
	RowCount() int
	RowsToShow() int
	RowSections() surface.SectionGeometry
	ColumnSections() surface.SectionGeometry
	Scroll() surface.ScrollController
	RepaintBody()
}

// FocusManager tracks the keyboard-focused cell.
type FocusManager struct {
	host    FocusHost
	focused *Data
}

// NewFocusManager returns a manager with no focused cell.
func NewFocusManager(host FocusHost) *FocusManager {
	return &FocusManager{host: host}
}

// SetFocusedCell focuses d. A nil d clears the focus.
func (m *FocusManager) SetFocusedCell(d *Data) {
	if d == nil {
		m.focused = nil
		return
	}
	c := *d
	m.focused = &c
}

// FocusedCell returns a copy of the focused cell, or nil.
func (m *FocusManager) FocusedCell() *Data {
	if m.focused == nil {
		return nil
	}
	c := *m.focused
	return &c
}

// MoveByKey moves the focus one step and repaints the body.
func (m *FocusManager) MoveByKey(key NavKey) {
	switch key {
	case KeyLeft:
		m.moveLeft()
	case KeyRight:
		m.moveRight()
	case KeyUp:
		m.moveUp(1)
	case KeyDown:
		m.moveDown(1)
	case KeyPageUp:
		m.moveUp(m.pageRows())
	case KeyPageDown:
		m.moveDown(m.pageRows())
	}
	m.host.RepaintBody()
}

func (m *FocusManager) pageRows() int {
	n := m.host.RowsToShow()
	if n <= 0 {
		return m.host.RowCount()
	}
	return n
}

// FocusedBackground returns the focus color for the focused cell, the
// header color for the index column while nothing is focused, and the
// default background otherwise.
func (m *FocusManager) FocusedBackground(cfg Config, p theme.Palette) string {
	if m.focused == nil {
		if TypeByRegion(cfg.Region, cfg.Column) == model.IndexColumn {
			return p.HeaderBackground
		}
		return p.CellBackground
	}
	if cfg.Row == m.focused.Row && cfg.Column == m.focused.Column && cfg.Region == m.focused.Region {
		return p.Focused
	}
	return p.CellBackground
}

func (m *FocusManager) moveRight() {
	if m.focused == nil {
		return
	}
	frozen := m.host.FrozenCount()
	next := m.focused.Column + 1
	region := m.focused.Region
	last := m.host.VisibleBodyColumnCount() - 1 - frozen

	if region == model.RegionRowHeader && next > frozen {
		if last > -1 {
			region, next = model.RegionBody, 0
		} else {
			next--
		}
	}
	if region == model.RegionBody && next > last {
		next = last
	}
	m.moveTo(region, next, m.focused.Row)
	m.scrollIfNeeded(KeyRight)
}

func (m *FocusManager) moveLeft() {
	if m.focused == nil {
		return
	}
	region := m.focused.Region
	prev := m.focused.Column - 1
	if prev < 0 && region != model.RegionRowHeader {
		prev = m.host.FrozenCount()
		region = model.RegionRowHeader
	}
	m.moveTo(region, max(0, prev), m.focused.Row)
	m.scrollIfNeeded(KeyLeft)
}

func (m *FocusManager) moveUp(by int) {
	if m.focused == nil {
		return
	}
	m.moveTo(m.focused.Region, m.focused.Column, max(0, m.focused.Row-by))
	m.scrollIfNeeded(KeyUp)
}

func (m *FocusManager) moveDown(by int) {
	if m.focused == nil {
		return
	}
	last := max(0, m.host.RowCount()-1)
	m.moveTo(m.focused.Region, m.focused.Column, min(last, m.focused.Row+by))
	m.scrollIfNeeded(KeyDown)
}

func (m *FocusManager) moveTo(region model.Region, column, row int) {
	m.focused.Region = region
	m.focused.Type = TypeByRegion(region, column)
	m.focused.Column = column
	m.focused.Row = row
}

func (m *FocusManager) scrollIfNeeded(dir NavKey) {
	rows, cols := m.host.RowSections(), m.host.ColumnSections()
	rowOffset, rowSize := rows.OffsetOf(m.focused.Row), rows.SizeOf(m.focused.Row)
	colOffset, colSize := cols.OffsetOf(m.focused.Column), cols.SizeOf(m.focused.Column)

	sc := m.host.Scroll()
	x, y := sc.ScrollX(), sc.ScrollY()
	needs := false
	switch dir {
	case KeyDown:
		needs = rowOffset+rowSize > sc.PageHeight()+y
		y = rowOffset - sc.PageHeight() + rowSize
	case KeyUp:
		needs = rowOffset < y
		y = rowOffset
	case KeyRight:
		if m.focused.Region != model.RegionBody {
			return
		}
		needs = colOffset+colSize > sc.PageWidth()+x
		x = colOffset - sc.PageWidth() + colSize
	case KeyLeft:
		if m.focused.Region != model.RegionBody {
			return
		}
		needs = colOffset < x
		x = colOffset
	}
	if needs {
		sc.ScrollTo(x, y)
	}
}
