package column

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
	"github.com/five82/tablegrid/internal/state"
)

// Options configures a Manager.
type Options struct {
	Grid Grid
	// Formatter defaults to one reading the store.
	Formatter *datatype.Formatter
	Clock     clock.Clock
	Logger    *log.Logger
}

// Manager owns the index and body columns of one grid.
type Manager struct {
	store     *state.Store
	rows      *row.Manager
	grid      Grid
	formatter *datatype.Formatter
	logger    *log.Logger
	position  *Position

	columns map[model.ColumnType][]*Column
}

// New returns an empty Manager. Call AddColumns once rows exist.
func New(store *state.Store, rows *row.Manager, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = datatype.NewFormatter(store.FormatSource())
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	m := &Manager{
		store:     store,
		rows:      rows,
		grid:      opts.Grid,
		formatter: formatter,
		logger:    logger,
		columns:   make(map[model.ColumnType][]*Column),
	}
	m.position = newPosition(m, clk)
	return m
}

// Position returns the drag-reorder controller.
func (m *Manager) Position() *Position { return m.position }

// AddColumns builds one column per column state, index columns first.
func (m *Manager) AddColumns() {
	st := m.store.Current()
	m.columns[model.IndexColumn] = nil
	m.columns[model.BodyColumn] = nil
	for i, name := range st.IndexColumnNames() {
		m.columns[model.IndexColumn] = append(m.columns[model.IndexColumn], newColumn(m, model.IndexColumn, i, name))
	}
	for i, name := range st.BodyColumnNames() {
		m.columns[model.BodyColumn] = append(m.columns[model.BodyColumn], newColumn(m, model.BodyColumn, i, name))
	}
}

// dispatch applies a and reports whether it landed. Writes to columns the
// store no longer holds are dropped.
func (m *Manager) dispatch(a state.Action) bool {
	err := m.store.Dispatch(a)
	if err == nil {
		return true
	}
	if errors.Is(err, state.ErrUnknownColumn) {
		m.logger.Debug("column write dropped", "action", a.Type(), "error", err)
		return false
	}
	m.logger.Warn("column write failed", "action", a.Type(), "error", err)
	return false
}

// Columns returns index columns followed by body columns.
func (m *Manager) Columns() []*Column {
	out := append([]*Column(nil), m.columns[model.IndexColumn]...)
	return append(out, m.columns[model.BodyColumn]...)
}

func (m *Manager) BodyColumns() []*Column  { return m.columns[model.BodyColumn] }
func (m *Manager) IndexColumns() []*Column { return m.columns[model.IndexColumn] }

func (m *Manager) BodyColumnNames() []string  { return names(m.BodyColumns()) }
func (m *Manager) IndexColumnNames() []string { return names(m.IndexColumns()) }

func names(cols []*Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name()
	}
	return out
}

// FilterColumns lists index then body columns for the row filter.
func (m *Manager) FilterColumns() []row.Column {
	cols := m.Columns()
	out := make([]row.Column, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}

// ColumnByName returns the body column called name, then the index
// column, or nil.
func (m *Manager) ColumnByName(name string) *Column {
	for _, c := range m.BodyColumns() {
		if c.Name() == name {
			return c
		}
	}
	for _, c := range m.IndexColumns() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// ColumnByIndex returns the column of type t at index, or nil.
func (m *Manager) ColumnByIndex(t model.ColumnType, index int) *Column {
	cols := m.columns[t]
	if index < 0 || index >= len(cols) {
		return nil
	}
	return cols[index]
}

// ColumnByPosition returns the column rendered at pos, or nil.
func (m *Manager) ColumnByPosition(pos model.Position) *Column {
	return m.position.ColumnByPosition(pos)
}

// ColumnByCell returns the column under a cell in region at the given
// region-relative column.
func (m *Manager) ColumnByCell(region model.Region, column int) *Column {
	r := model.RegionBody
	if region.IsRowHeader() {
		r = model.RegionRowHeader
	}
	return m.ColumnByPosition(model.Position{Region: r, Value: column})
}

// ShowAllColumns makes every body column visible.
func (m *Manager) ShowAllColumns() {
	visible := make(map[string]bool)
	for _, c := range m.BodyColumns() {
		visible[c.Name()] = true
	}
	m.SetColumnsVisible(visible)
}

// SetColumnsVisible replaces the visibility map and repositions columns.
func (m *Manager) SetColumnsVisible(visible map[string]bool) {
	if m.dispatch(state.UpdateColumnsVisible{Visible: visible}) {
		m.position.UpdateAll()
	}
}

// RecalculateMinMaxValues refreshes every column's statistics.
func (m *Manager) RecalculateMinMaxValues() {
	for _, c := range m.Columns() {
		c.AddMinMaxValues()
	}
}

// SortByColumn sorts the rows by col. Every other column is reset to
// NoSort and the SORT highlighter follows the sorted column.
func (m *Manager) SortByColumn(col *Column, order model.SortOrder) {
	for _, c := range m.Columns() {
		if c == col && order != model.NoSort {
			m.grid.AddColumnHighlighter(c, model.SortHighlighter)
			c.setSortOrder(order)
			continue
		}
		m.grid.RemoveColumnHighlighter(c, model.SortHighlighter)
		c.setSortOrder(model.NoSort)
	}
	m.rows.SortByColumn(col)
	m.grid.ResetModel()
}

// ResetSorting clears every sort order and restores row order.
func (m *Manager) ResetSorting() {
	for _, c := range m.Columns() {
		m.grid.RemoveColumnHighlighter(c, model.SortHighlighter)
		c.setSortOrder(model.NoSort)
	}
	m.rows.ResetSorting()
	m.grid.ResetModel()
}

// ResetFilters clears every column filter and restores all rows.
func (m *Manager) ResetFilters() {
	m.dispatch(state.UpdateColumnsFilters{})
	m.rows.FilterRows()
	m.grid.ResetModel()
}

// SetColumnsDataTypePrecision switches every "4.N" column to precision p.
func (m *Manager) SetColumnsDataTypePrecision(p int) {
	for _, c := range m.Columns() {
		c.SetDataTypePrecision(p)
	}
}

// SetColumnsFormatForTimes sets the datetime unit of every datetime
// column.
func (m *Manager) SetColumnsFormatForTimes(u datatype.TimeUnit) {
	for _, c := range m.Columns() {
		if c.DataType() == datatype.Datetime || c.DataType() == datatype.Time {
			c.SetTimeDisplayType(u)
		}
	}
}

// ResetColumnStates returns every column to its initial state.
func (m *Manager) ResetColumnStates() {
	for _, c := range m.Columns() {
		c.ResetState()
	}
	m.ResetSorting()
}

// RestoreColumnStates reattaches derived state after a model update.
func (m *Manager) RestoreColumnStates() {
	for _, c := range m.Columns() {
		c.RestoreState()
	}
}

// ResetColumnsAlignment restores the initial alignment of every column.
func (m *Manager) ResetColumnsAlignment() {
	for _, c := range m.Columns() {
		c.ResetAlignment()
	}
	m.grid.RepaintBody()
}

// ResetColumnPositions restores record column order.
func (m *Manager) ResetColumnPositions() {
	m.dispatch(state.ResetColumnsOrder{Clear: true})
	m.position.UpdateAll()
}

// Destroy stops any drag and drops all columns.
func (m *Manager) Destroy() {
	m.position.StopDragging()
	m.columns = make(map[model.ColumnType][]*Column)
}
