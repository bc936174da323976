package state

import (
	"fmt"
	"slices"
	"sort"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// Action is one atomic store write. The set is closed: only this package
// defines actions.
type Action interface {
	Type() string
	apply(s *State) error
}

// AddColumns seeds one column state per record column.
type AddColumns struct{}

func (AddColumns) Type() string { return "ADD_COLUMNS" }

func (AddColumns) apply(s *State) error {
	s.Columns = s.initialColumnStates()
	return nil
}

// UpdateModelData replaces the model record. Column states are reseeded
// when the column names or types change.
type UpdateModelData struct {
	Data model.Record
}

func (UpdateModelData) Type() string { return "UPDATE_MODEL_DATA" }

func (a UpdateModelData) apply(s *State) error {
	if a.Data.Empty() {
		return ErrEmptyModel
	}
	prevNames, prevTypes, prevIndex := s.ColumnNames(), s.Model.Types, s.Model.HasIndex
	s.Model = a.Data.Clone()
	if len(s.Columns) == 0 || prevIndex != s.Model.HasIndex ||
		!slices.Equal(prevNames, s.ColumnNames()) || !slices.Equal(prevTypes, s.Model.Types) {
		s.Columns = s.initialColumnStates()
		return nil
	}
	s.recomputePositions()
	return nil
}

// UpdateModelValues swaps the cell values without touching column states.
type UpdateModelValues struct {
	Values         [][]any
	FilteredValues [][]any
	TooManyRows    bool
}

func (UpdateModelValues) Type() string { return "UPDATE_MODEL_VALUES" }

func (a UpdateModelValues) apply(s *State) error {
	s.Model.Values = a.Values
	s.Model.FilteredValues = a.FilteredValues
	s.Model.TooManyRows = a.TooManyRows
	return nil
}

// UpdateModelFontColor replaces the per-cell font colors.
type UpdateModelFontColor struct {
	FontColor [][]string
}

func (UpdateModelFontColor) Type() string { return "UPDATE_MODEL_FONT_COLOR" }

func (a UpdateModelFontColor) apply(s *State) error {
	s.Model.FontColor = a.FontColor
	return nil
}

// UpdateColumnRenderer sets a column renderer. A nil Renderer disables the
// type renderer for that column.
type UpdateColumnRenderer struct {
	Name     string
	Renderer *model.Renderer
}

func (UpdateColumnRenderer) Type() string { return "UPDATE_COLUMN_RENDERER" }

func (a UpdateColumnRenderer) apply(s *State) error {
	if !s.hasColumnName(a.Name) {
		return fmt.Errorf("%q: %w", a.Name, ErrUnknownColumn)
	}
	if s.Model.RendererForColumn == nil {
		s.Model.RendererForColumn = make(map[string]*model.Renderer)
	}
	if a.Renderer == nil {
		s.Model.RendererForColumn[a.Name] = nil
		return nil
	}
	r := *a.Renderer
	s.Model.RendererForColumn[a.Name] = &r
	return nil
}

type UpdateHeadersVertical struct {
	Vertical bool
}

func (UpdateHeadersVertical) Type() string { return "UPDATE_HEADERS_VERTICAL" }

func (a UpdateHeadersVertical) apply(s *State) error {
	s.Model.HeadersVertical = a.Vertical
	return nil
}

// UpdateColumnOrder moves the named column to Position. The position is
// relative to the region it names; row-header positions count frozen
// columns only.
type UpdateColumnOrder struct {
	Name     string
	Position model.Position
}

func (UpdateColumnOrder) Type() string { return "UPDATE_COLUMN_ORDER" }

func (a UpdateColumnOrder) apply(s *State) error {
	if !s.hasColumnName(a.Name) {
		return fmt.Errorf("%q: %w", a.Name, ErrUnknownColumn)
	}
	order := s.ColumnOrder()
	if len(order) == 0 {
		order = s.ColumnNames()
	}
	destination := a.Position.Value
	if s.Model.HasIndex {
		destination++
	}

	for _, name := range slices.Clone(order) {
		if visible, ok := s.Model.ColumnsVisible[name]; ok && !visible {
			if i := indexOf(order, name); i >= 0 {
				order = append(order[:i], order[i+1:]...)
				order = append(order, name)
			}
		}
	}
	if i := indexOf(order, a.Name); i >= 0 {
		order = append(order[:i], order[i+1:]...)
	}

	if destination > 0 && a.Position.Region.IsRowHeader() {
		frozen := s.ColumnsFrozen()
		count := 0
		for i, name := range order {
			if frozen[name] {
				count++
			}
			if count == destination {
				destination = i
				break
			}
		}
	}

	destination = max(0, min(destination, len(order)))
	order = slices.Insert(order, destination, a.Name)
	s.Model.ColumnOrder = order
	s.recomputePositions()
	return nil
}

// UpdateColumnFrozen freezes or unfreezes a body column.
type UpdateColumnFrozen struct {
	Name   string
	Frozen bool
}

func (UpdateColumnFrozen) Type() string { return "UPDATE_COLUMN_FROZEN" }

func (a UpdateColumnFrozen) apply(s *State) error {
	if !s.hasColumnName(a.Name) {
		return fmt.Errorf("%q: %w", a.Name, ErrUnknownColumn)
	}
	if s.Model.ColumnsFrozen == nil {
		s.Model.ColumnsFrozen = make(map[string]bool)
	}
	s.Model.ColumnsFrozen[a.Name] = a.Frozen
	s.recomputePositions()
	return nil
}

// UpdateColumnVisible shows or hides one column. A column shown again is
// reinserted into an explicit order at Index.
type UpdateColumnVisible struct {
	Name    string
	Index   int
	Visible bool
}

func (UpdateColumnVisible) Type() string { return "UPDATE_COLUMN_VISIBLE" }

func (a UpdateColumnVisible) apply(s *State) error {
	if !s.hasColumnName(a.Name) {
		return fmt.Errorf("%q: %w", a.Name, ErrUnknownColumn)
	}
	order := s.Model.ColumnOrder
	if a.Visible && len(order) > 0 && !contains(order, a.Name) {
		at := max(0, min(a.Index, len(order)-1))
		s.Model.ColumnOrder = slices.Insert(order, at, a.Name)
	}
	if s.Model.ColumnsVisible == nil {
		s.Model.ColumnsVisible = make(map[string]bool)
	}
	s.Model.ColumnsVisible[a.Name] = a.Visible
	s.recomputePositions()
	return nil
}

// UpdateColumnsVisible replaces the visibility map.
type UpdateColumnsVisible struct {
	Visible map[string]bool
}

func (UpdateColumnsVisible) Type() string { return "UPDATE_COLUMNS_VISIBLE" }

func (a UpdateColumnsVisible) apply(s *State) error {
	if len(s.Model.ColumnOrder) > 0 {
		order := s.Model.ColumnOrder
		for i, name := range s.ColumnNames() {
			if a.Visible[name] && !contains(order, name) {
				order = slices.Insert(order, min(i, len(order)), name)
			}
		}
		s.Model.ColumnOrder = order
	}
	visible := make(map[string]bool, len(a.Visible))
	for k, v := range a.Visible {
		visible[k] = v
	}
	s.Model.ColumnsVisible = visible
	s.recomputePositions()
	return nil
}

// ResetColumnsOrder restores record order. Without Clear the explicit order
// is kept and only missing names are reinserted.
type ResetColumnsOrder struct {
	Clear bool
}

func (ResetColumnsOrder) Type() string { return "RESET_COLUMNS_ORDER" }

func (a ResetColumnsOrder) apply(s *State) error {
	order := s.ColumnOrder()
	if a.Clear {
		order = order[:0]
	}
	for i, name := range s.ColumnNames() {
		if !contains(order, name) {
			order = slices.Insert(order, min(i, len(order)), name)
		}
	}
	s.Model.ColumnOrder = order
	s.recomputePositions()
	return nil
}

// AddColumnHighlighter stores a highlighter, replacing any entry for the
// same column and type.
type AddColumnHighlighter struct {
	Highlighter model.HighlighterState
}

func (AddColumnHighlighter) Type() string { return "ADD_COLUMN_HIGHLIGHTER" }

func (a AddColumnHighlighter) apply(s *State) error {
	s.Model.CellHighlighters = slices.DeleteFunc(s.Model.CellHighlighters, a.Highlighter.Same)
	s.Model.CellHighlighters = append(s.Model.CellHighlighters, a.Highlighter.Clone())
	return nil
}

type RemoveColumnHighlighter struct {
	Highlighter model.HighlighterState
}

func (RemoveColumnHighlighter) Type() string { return "REMOVE_COLUMN_HIGHLIGHTER" }

func (a RemoveColumnHighlighter) apply(s *State) error {
	s.Model.CellHighlighters = slices.DeleteFunc(s.Model.CellHighlighters, a.Highlighter.Same)
	return nil
}

// UpdateColumnPositions recomputes every body column position from an
// explicit order. Applying it twice with the same payload is a no-op.
type UpdateColumnPositions struct {
	Order       []string
	HasIndex    bool
	FrozenNames []string
	Visible     map[string]bool
}

func (UpdateColumnPositions) Type() string { return "UPDATE_COLUMN_POSITIONS" }

func (a UpdateColumnPositions) apply(s *State) error {
	s.applyPositions(a.Order, a.HasIndex, a.FrozenNames, a.Visible)
	return nil
}

// UpdateColumnsFilters sets every column filter at once, index columns
// first.
type UpdateColumnsFilters struct {
	Filters []string
}

func (UpdateColumnsFilters) Type() string { return "UPDATE_COLUMNS_FILTERS" }

func (a UpdateColumnsFilters) apply(s *State) error {
	keys := make([]int, len(s.Columns))
	for i := range keys {
		keys[i] = i
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ci, cj := s.Columns[keys[i]].Key, s.Columns[keys[j]].Key
		if ci.Type != cj.Type {
			return ci.Type == model.IndexColumn
		}
		return ci.Index < cj.Index
	})
	for i, k := range keys {
		if i < len(a.Filters) {
			s.Columns[k].Filter = a.Filters[i]
		} else {
			s.Columns[k].Filter = ""
		}
	}
	return nil
}

// columnAction applies fn to the column stored under key.
func columnAction(s *State, key model.Key, fn func(c *model.ColumnState)) error {
	i := s.columnIndex(key)
	if i < 0 {
		return fmt.Errorf("%s: %w", key, ErrUnknownColumn)
	}
	fn(&s.Columns[i])
	return nil
}

type UpdateColumnFilter struct {
	Key    model.Key
	Filter string
}

func (UpdateColumnFilter) Type() string { return "UPDATE_COLUMN_FILTER" }

func (a UpdateColumnFilter) apply(s *State) error {
	return columnAction(s, a.Key, func(c *model.ColumnState) { c.Filter = a.Filter })
}

type UpdateColumnHorizontalAlignment struct {
	Key       model.Key
	Alignment model.Alignment
}

func (UpdateColumnHorizontalAlignment) Type() string { return "UPDATE_COLUMN_HORIZONTAL_ALIGNMENT" }

func (a UpdateColumnHorizontalAlignment) apply(s *State) error {
	return columnAction(s, a.Key, func(c *model.ColumnState) { c.HorizontalAlignment = a.Alignment })
}

// UpdateColumnFormatForTimes sets the datetime unit of one column. A nil
// unit falls back to the model default.
type UpdateColumnFormatForTimes struct {
	Key  model.Key
	Unit *datatype.TimeUnit
}

func (UpdateColumnFormatForTimes) Type() string { return "UPDATE_COLUMN_FORMAT_FOR_TIMES" }

func (a UpdateColumnFormatForTimes) apply(s *State) error {
	return columnAction(s, a.Key, func(c *model.ColumnState) {
		if a.Unit == nil {
			c.FormatForTimes = nil
			return
		}
		u := *a.Unit
		c.FormatForTimes = &u
	})
}

type UpdateColumnDisplayType struct {
	Key         model.Key
	DisplayType datatype.DisplayType
}

func (UpdateColumnDisplayType) Type() string { return "UPDATE_COLUMN_DISPLAY_TYPE" }

func (a UpdateColumnDisplayType) apply(s *State) error {
	return columnAction(s, a.Key, func(c *model.ColumnState) { c.DisplayType = a.DisplayType })
}

type UpdateColumnSortOrder struct {
	Key       model.Key
	SortOrder model.SortOrder
}

func (UpdateColumnSortOrder) Type() string { return "UPDATE_COLUMN_SORT_ORDER" }

func (a UpdateColumnSortOrder) apply(s *State) error {
	return columnAction(s, a.Key, func(c *model.ColumnState) { c.SortOrder = a.SortOrder })
}

type UpdateColumnWidth struct {
	Key   model.Key
	Width int
}

func (UpdateColumnWidth) Type() string { return "UPDATE_COLUMN_WIDTH" }

func (a UpdateColumnWidth) apply(s *State) error {
	if a.Width < 0 {
		return fmt.Errorf("width %d: %w", a.Width, ErrInvalidWidth)
	}
	return columnAction(s, a.Key, func(c *model.ColumnState) { c.Width = a.Width })
}
