package column

import (
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/state"
)

// Column is one live grid column.
type Column struct {
	name  string
	index int
	typ   model.ColumnType
	m     *Manager

	formatFn datatype.FormatFunc
	minValue any
	maxValue any
	longest  any
}

func newColumn(m *Manager, t model.ColumnType, index int, name string) *Column {
	c := &Column{name: name, index: index, typ: t, m: m}
	c.assignFormatFn()
	c.AddMinMaxValues()
	return c
}

func (c *Column) Name() string           { return c.name }
func (c *Column) Index() int             { return c.index }
func (c *Column) Type() model.ColumnType { return c.typ }
func (c *Column) Key() model.Key         { return model.Key{Type: c.typ, Index: c.index} }

// State returns the column's stored state, or the default state when the
// column is gone.
func (c *Column) State() model.ColumnState {
	return c.m.store.Current().ColumnState(c.Key())
}

func (c *Column) Position() model.Position           { return c.State().Position }
func (c *Column) DataType() datatype.Type            { return c.State().DataType }
func (c *Column) DataTypeName() string               { return c.State().DataTypeName }
func (c *Column) DisplayType() datatype.DisplayType  { return c.State().DisplayType }
func (c *Column) Alignment() model.Alignment         { return c.State().HorizontalAlignment }
func (c *Column) SortOrder() model.SortOrder         { return c.State().SortOrder }
func (c *Column) Filter() string                     { return c.State().Filter }
func (c *Column) Width() int                         { return c.State().Width }
func (c *Column) FormatForTimes() *datatype.TimeUnit { return c.State().FormatForTimes }

// IsFrozen reports whether the column renders in the row header. The index
// column always does.
func (c *Column) IsFrozen() bool {
	if c.typ == model.IndexColumn {
		return true
	}
	return c.m.store.Current().IsColumnFrozen(c.name)
}

// IsVisible reports whether the column is shown.
func (c *Column) IsVisible() bool {
	if c.typ == model.IndexColumn {
		return true
	}
	return c.m.store.Current().IsColumnVisible(c.name)
}

// Renderer returns the column's renderer, or nil.
func (c *Column) Renderer() *model.Renderer {
	return c.m.store.Current().Renderer(c.name, c.DataTypeName())
}

// ValueResolver maps raw cell values onto comparable values.
func (c *Column) ValueResolver() datatype.Resolver {
	return datatype.ResolverFor(c.DataType())
}

// FormatFn returns the cached formatter for the current display type.
func (c *Column) FormatFn() datatype.FormatFunc { return c.formatFn }

// Format renders one value of this column in row.
func (c *Column) Format(value any, row int) string {
	return c.formatFn(datatype.Cell{Value: value, Row: row, ColumnName: c.name})
}

func (c *Column) assignFormatFn() {
	st := c.State()
	c.formatFn = c.m.formatter.FormatFunc(st.DisplayType, st.FormatForTimes)
}

// SetDisplayType changes the display type and refreshes the formatter,
// the longest-string statistic and the section width.
func (c *Column) SetDisplayType(d datatype.DisplayType) {
	if !c.m.dispatch(state.UpdateColumnDisplayType{Key: c.Key(), DisplayType: d}) {
		return
	}
	c.assignFormatFn()
	c.RecalculateLongestStringValue(d)
	c.m.grid.SetInitialSectionWidth(c)
}

// SetTimeDisplayType sets the datetime unit and switches to the datetime
// display type.
func (c *Column) SetTimeDisplayType(u datatype.TimeUnit) {
	if !c.m.dispatch(state.UpdateColumnFormatForTimes{Key: c.Key(), Unit: &u}) {
		return
	}
	c.SetDisplayType(datatype.DisplayOf(datatype.Datetime))
}

// SetDataTypePrecision switches a "4.N" column to precision p. Other
// display types are left alone.
func (c *Column) SetDataTypePrecision(p int) {
	if c.DisplayType().IsDoubleWithPrecision() {
		c.SetDisplayType(datatype.PrecisionDisplay(p))
	}
}

func (c *Column) SetAlignment(a model.Alignment) {
	c.m.dispatch(state.UpdateColumnHorizontalAlignment{Key: c.Key(), Alignment: a})
}

// ResetAlignment restores the alignment the column started with.
func (c *Column) ResetAlignment() {
	c.SetAlignment(c.m.store.Current().InitialColumnAlignment(c.DataType(), c.name))
}

// SetWidth fixes the section width. Zero means automatic.
func (c *Column) SetWidth(w int) {
	c.m.dispatch(state.UpdateColumnWidth{Key: c.Key(), Width: w})
}

func (c *Column) Hide() { c.toggleVisibility(false) }
func (c *Column) Show() { c.toggleVisibility(true) }

func (c *Column) toggleVisibility(visible bool) {
	if c.typ == model.IndexColumn {
		return
	}
	if c.m.dispatch(state.UpdateColumnVisible{Name: c.name, Index: c.index, Visible: visible}) {
		c.m.position.UpdateAll()
	}
}

// ToggleColumnFrozen freezes or unfreezes a body column.
func (c *Column) ToggleColumnFrozen() {
	if c.typ == model.IndexColumn {
		return
	}
	if c.m.dispatch(state.UpdateColumnFrozen{Name: c.name, Frozen: !c.IsFrozen()}) {
		c.m.position.UpdateAll()
	}
}

// ApplyFilter sets the column filter and refilters the rows. An unchanged
// filter is a no-op.
func (c *Column) ApplyFilter(expr string) {
	c.filter(expr, false)
}

// Search sets a type-to-search expression on the column.
func (c *Column) Search(expr string) {
	c.filter(expr, true)
}

func (c *Column) filter(expr string, search bool) {
	if expr == c.Filter() {
		return
	}
	if !c.m.dispatch(state.UpdateColumnFilter{Key: c.Key(), Filter: expr}) {
		return
	}
	if search {
		c.m.rows.SearchRows()
	} else {
		c.m.rows.FilterRows()
	}
	c.m.grid.ResetModel()
}

// ResetFilter clears the column filter.
func (c *Column) ResetFilter() {
	c.m.dispatch(state.UpdateColumnFilter{Key: c.Key(), Filter: ""})
	c.m.rows.FilterRows()
	c.m.grid.ResetModel()
}

// Sort sorts the rows by this column. NoSort restores the row order.
func (c *Column) Sort(order model.SortOrder) {
	c.m.SortByColumn(c, order)
}

// ToggleSort sorts ascending unless the column already is, in which case
// it sorts descending.
func (c *Column) ToggleSort() {
	if c.SortOrder() != model.SortAsc {
		c.Sort(model.SortAsc)
		return
	}
	c.Sort(model.SortDesc)
}

func (c *Column) setSortOrder(order model.SortOrder) {
	c.m.dispatch(state.UpdateColumnSortOrder{Key: c.Key(), SortOrder: order})
}

// Move renders the column at destination within its current region.
func (c *Column) Move(destination int) {
	if c.typ == model.IndexColumn {
		return
	}
	pos := c.Position()
	pos.Value = destination
	c.m.position.SetPosition(c, pos)
}

func (c *Column) ToggleHighlighter(t model.HighlighterType) { c.m.grid.ToggleColumnHighlighter(c, t) }
func (c *Column) ResetHighlighters()                        { c.m.grid.RemoveHighlighters(c) }
func (c *Column) RestoreHighlighters()                      { c.m.grid.RestoreHighlighters(c) }

// ToggleDataBarsRenderer switches data bars on or off. A non-nil enable
// set to false always switches them off.
func (c *Column) ToggleDataBarsRenderer(enable *bool) {
	r := c.Renderer()
	off := (enable != nil && !*enable) || (r != nil && r.Type == model.DataBarsRenderer)
	var next *model.Renderer
	if !off {
		next = &model.Renderer{Type: model.DataBarsRenderer, IncludeText: true}
	}
	if c.m.dispatch(state.UpdateColumnRenderer{Name: c.name, Renderer: next}) {
		c.m.grid.RepaintBody()
	}
}

// ResetState returns the column to the state the model record describes.
func (c *Column) ResetState() {
	st := c.m.store.Current()
	c.SetTimeDisplayType(st.FormatForTimes())
	c.SetDisplayType(st.InitialDisplayType(c.DataType(), c.name, c.DataTypeName()))
	c.ResetAlignment()
	if c.typ == model.BodyColumn {
		visible, ok := st.ColumnsVisible()[c.name]
		c.toggleVisibility(!ok || visible)
	}
	off := false
	c.ToggleDataBarsRenderer(&off)
	c.ResetHighlighters()
	c.ResetFilter()
	c.Move(c.index)
	c.assignFormatFn()
	c.m.grid.SetInitialSectionWidth(c)
	c.m.grid.UpdateWidgetWidth()
}

// RestoreState recomputes statistics and reattaches the stored
// highlighters.
func (c *Column) RestoreState() {
	c.AddMinMaxValues()
	c.RestoreHighlighters()
	c.m.grid.RepaintBody()
}
