package cell

import (
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/theme"
)

// SelectionHost is the grid state the selection manager reads.
type SelectionHost interface {
	// RowHeaderColumnCount is the number of row-header columns, the index
	// column included.
	RowHeaderColumnCount() int
	IsResizing() bool
	Value(region model.Region, row, column int) any
	RepaintBody()
}

// Range is an inclusive block of cells in global column numbering.
type Range struct {
	StartRow, EndRow       int
	StartColumn, EndColumn int
}

// SelectionManager tracks a rectangular cell selection.
type SelectionManager struct {
	host  SelectionHost
	focus *FocusManager
	start *Data
	end   *Data
	// Enabled gates IsSelected; a disabled manager keeps its range.
	Enabled bool
}

// NewSelectionManager returns an enabled manager with no selection.
func NewSelectionManager(host SelectionHost, focus *FocusManager) *SelectionManager {
	return &SelectionManager{host: host, focus: focus, Enabled: true}
}

func (m *SelectionManager) SetStartCell(d *Data) { m.start = copyData(d) }

func (m *SelectionManager) SetEndCell(d *Data) { m.end = copyData(d) }

// StartCell returns the anchor of the selection, or nil.
func (m *SelectionManager) StartCell() *Data { return copyData(m.start) }

// EndCell returns the moving end of the selection, or nil.
func (m *SelectionManager) EndCell() *Data { return copyData(m.end) }

// Clear drops the selection and repaints.
func (m *SelectionManager) Clear() {
	m.start, m.end = nil, nil
	m.host.RepaintBody()
}

// HandleMouseDown anchors a new selection at d, or extends the current
// one when shift is held.
func (m *SelectionManager) HandleMouseDown(d *Data, shift bool) {
	if m.host.IsResizing() || d == nil || IsHeader(d) {
		return
	}
	if shift && m.start != nil {
		m.SetEndCell(d)
		return
	}
	m.focus.SetFocusedCell(d)
	m.SetStartCell(d)
}

// HandleBodyCellHover extends the selection while the primary button is
// held.
func (m *SelectionManager) HandleBodyCellHover(d *Data, pressed bool) {
	if !pressed || d == nil || IsHeader(d) || m.start == nil {
		return
	}
	m.SetEndCell(d)
	m.host.RepaintBody()
}

// HandleMouseUp closes the selection on d.
func (m *SelectionManager) HandleMouseUp(d *Data) {
	if m.host.IsResizing() || d == nil || IsHeader(d) {
		return
	}
	m.HandleCellInteraction(d)
}

// HandleCellInteraction sets d as the selection end and focuses it.
func (m *SelectionManager) HandleCellInteraction(d *Data) {
	if m.start == nil {
		m.SetStartCell(d)
	}
	m.SetEndCell(d)
	m.focus.SetFocusedCell(d)
	m.host.RepaintBody()
}

func (m *SelectionManager) globalColumn(region model.Region, column int) int {
	if region.IsRowHeader() {
		return column
	}
	return column + m.host.RowHeaderColumnCount()
}

// SelectedRange returns the normalized selection, or false when either end
// is unset.
func (m *SelectionManager) SelectedRange() (Range, bool) {
	if m.start == nil || m.end == nil {
		return Range{}, false
	}
	sc := m.globalColumn(m.start.Region, m.start.Column)
	ec := m.globalColumn(m.end.Region, m.end.Column)
	return Range{
		StartRow:    min(m.start.Row, m.end.Row),
		EndRow:      max(m.start.Row, m.end.Row),
		StartColumn: min(sc, ec),
		EndColumn:   max(sc, ec),
	}, true
}

// IsSelected reports whether cfg lies inside the selection.
func (m *SelectionManager) IsSelected(cfg Config) bool {
	if !m.Enabled || cfg.Region.IsHeader() {
		return false
	}
	r, ok := m.SelectedRange()
	if !ok {
		return false
	}
	col := m.globalColumn(cfg.Region, cfg.Column)
	return cfg.Row >= r.StartRow && cfg.Row <= r.EndRow && col >= r.StartColumn && col <= r.EndColumn
}

// BackgroundColor is the selection color for selected cells and empty
// otherwise.
func (m *SelectionManager) BackgroundColor(cfg Config, p theme.Palette) string {
	if m.IsSelected(cfg) {
		return p.Selected
	}
	return ""
}

// SelectionValues returns the selected values row by row in visible column
// order.
func (m *SelectionManager) SelectionValues() [][]any {
	r, ok := m.SelectedRange()
	if !ok {
		return nil
	}
	header := m.host.RowHeaderColumnCount()
	out := make([][]any, 0, r.EndRow-r.StartRow+1)
	for row := r.StartRow; row <= r.EndRow; row++ {
		line := make([]any, 0, r.EndColumn-r.StartColumn+1)
		for col := r.StartColumn; col <= r.EndColumn; col++ {
			if col < header {
				line = append(line, m.host.Value(model.RegionRowHeader, row, col))
				continue
			}
			line = append(line, m.host.Value(model.RegionBody, row, col-header))
		}
		out = append(out, line)
	}
	return out
}

func copyData(d *Data) *Data {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
