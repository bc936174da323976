package state

import (
	"sort"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// DefaultRowsToShow is the page length used when the model sets none.
const DefaultRowsToShow = 25

// State is one published value of the store: the model record plus one
// column state per logical column, index columns first.
//
// A published State is never mutated. Value matrices are shared between
// successive states because no action edits a row in place.
type State struct {
	Model   model.Record
	Columns []model.ColumnState
}

// clone copies everything an action may write. Value matrices are shared.
func (s *State) clone() *State {
	values, filtered := s.Model.Values, s.Model.FilteredValues
	m := s.Model
	m.Values, m.FilteredValues = nil, nil
	m = m.Clone()
	m.Values, m.FilteredValues = values, filtered

	cols := make([]model.ColumnState, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.Clone()
	}
	return &State{Model: m, Columns: cols}
}

// deepCopy returns a State sharing nothing with s.
func (s *State) deepCopy() State {
	cols := make([]model.ColumnState, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.Clone()
	}
	return State{Model: s.Model.Clone(), Columns: cols}
}

// HasIndex reports whether the first column of the record is the row index.
func (s *State) HasIndex() bool { return s.Model.HasIndex }

// Values returns the row-major value matrix, preferring filtered values
// when the host supplied them. Callers must not modify it.
func (s *State) Values() [][]any {
	if s.Model.FilteredValues != nil {
		return s.Model.FilteredValues
	}
	return s.Model.Values
}

// FontColor returns the per-cell font colors. Callers must not modify it.
func (s *State) FontColor() [][]string { return s.Model.FontColor }

// Tooltips returns the per-cell tooltips. Callers must not modify it.
func (s *State) Tooltips() [][]string { return s.Model.Tooltips }

// ColumnNames returns the display names of all record columns.
func (s *State) ColumnNames() []string {
	names := make([]string, len(s.Model.ColumnNames))
	for i, n := range s.Model.ColumnNames {
		names[i] = datatype.ProcessColumnName(n)
	}
	return names
}

// ColumnTypes returns the raw type names of all record columns.
func (s *State) ColumnTypes() []string {
	return append([]string(nil), s.Model.Types...)
}

// BodyColumnNames returns the names of the non-index columns.
func (s *State) BodyColumnNames() []string {
	names := s.ColumnNames()
	if s.Model.HasIndex && len(names) > 0 {
		return names[1:]
	}
	return names
}

// IndexColumnNames returns the name of the index column. A record without
// an index still has one synthesized, unnamed index column.
func (s *State) IndexColumnNames() []string {
	if s.Model.HasIndex && len(s.Model.ColumnNames) > 0 && s.Model.ColumnNames[0] != nil {
		return []string{datatype.ProcessColumnName(s.Model.ColumnNames[0])}
	}
	return []string{""}
}

// ColumnIndexByName returns the body index of name, or 0 when unknown.
func (s *State) ColumnIndexByName(name string) int {
	for i, n := range s.BodyColumnNames() {
		if n == name {
			return i
		}
	}
	return 0
}

// ColumnOrder returns the explicit column order. Empty means record order.
func (s *State) ColumnOrder() []string {
	return append([]string(nil), s.Model.ColumnOrder...)
}

// ColumnsVisible returns a copy of the visibility map.
func (s *State) ColumnsVisible() map[string]bool {
	out := make(map[string]bool, len(s.Model.ColumnsVisible))
	for k, v := range s.Model.ColumnsVisible {
		out[k] = v
	}
	return out
}

// ColumnsFrozen returns a copy of the frozen map.
func (s *State) ColumnsFrozen() map[string]bool {
	out := make(map[string]bool, len(s.Model.ColumnsFrozen))
	for k, v := range s.Model.ColumnsFrozen {
		out[k] = v
	}
	return out
}

// ColumnsFrozenNames returns the frozen body column names in record order,
// followed by frozen names the record does not know, sorted.
func (s *State) ColumnsFrozenNames() []string {
	index := s.IndexColumnNames()[0]
	var names []string
	seen := make(map[string]bool)
	for _, n := range s.ColumnNames() {
		if seen[n] {
			continue
		}
		seen[n] = true
		if s.Model.ColumnsFrozen[n] && !(s.Model.HasIndex && n == index) {
			names = append(names, n)
		}
	}
	var extra []string
	for n, frozen := range s.Model.ColumnsFrozen {
		if frozen && !seen[n] && !(s.Model.HasIndex && n == index) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// ColumnsFrozenCount is the number of frozen body columns.
func (s *State) ColumnsFrozenCount() int { return len(s.ColumnsFrozenNames()) }

// VisibleColumnsFrozenCount counts the frozen columns that are not hidden.
func (s *State) VisibleColumnsFrozenCount() int {
	n := 0
	for _, name := range s.ColumnsFrozenNames() {
		if visible, ok := s.Model.ColumnsVisible[name]; !ok || visible {
			n++
		}
	}
	return n
}

// IsColumnFrozen reports whether the named body column is frozen.
func (s *State) IsColumnFrozen(name string) bool {
	for _, n := range s.ColumnsFrozenNames() {
		if n == name {
			return true
		}
	}
	return false
}

// IsColumnVisible reports whether the named column is shown.
func (s *State) IsColumnVisible(name string) bool {
	if visible, ok := s.Model.ColumnsVisible[name]; ok && !visible {
		return false
	}
	return len(s.Model.ColumnOrder) == 0 || contains(s.Model.ColumnOrder, name)
}

// InitialColumnAlignment resolves the alignment a column starts with.
func (s *State) InitialColumnAlignment(dt datatype.Type, name string) model.Alignment {
	if a, ok := s.Model.AlignmentForColumn[name]; ok && a != "" {
		return model.AlignmentByChar(a)
	}
	if a, ok := s.Model.AlignmentForType[dt.String()]; ok && a != "" {
		return model.AlignmentByChar(a)
	}
	return model.AlignmentByType(dt)
}

// InitialDisplayType resolves the display type a column starts with.
func (s *State) InitialDisplayType(dt datatype.Type, name, typeName string) datatype.DisplayType {
	var typeFormat, columnFormat *datatype.StringFormat
	if f, ok := s.Model.StringFormatForType[typeName]; ok {
		typeFormat = &f
	}
	if f, ok := s.Model.StringFormatForColumn[name]; ok {
		columnFormat = &f
	}
	return datatype.DisplayTypeWithFormat(dt, typeFormat, columnFormat)
}

// ColumnFixedWidth returns the width fixed by a string format, or 0.
func (s *State) ColumnFixedWidth(name, typeName string) int {
	if f, ok := s.Model.StringFormatForColumn[name]; ok && f.Width > 0 {
		return f.Width
	}
	if f, ok := s.Model.StringFormatForType[typeName]; ok && f.Width > 0 {
		return f.Width
	}
	return 0
}

// StringFormatForColumn returns the string format configured for name.
func (s *State) StringFormatForColumn(name string) (datatype.StringFormat, bool) {
	f, ok := s.Model.StringFormatForColumn[name]
	return f, ok
}

// StringFormatForType returns the string format configured for a type name.
func (s *State) StringFormatForType(name string) (datatype.StringFormat, bool) {
	f, ok := s.Model.StringFormatForType[name]
	return f, ok
}

// TimeStrings returns preformatted datetime strings, if any.
func (s *State) TimeStrings() []string { return s.Model.TimeStrings }

// TimeZone returns the model's display time zone.
func (s *State) TimeZone() string { return s.Model.TimeZone }

// FormatForTimes returns the model's default datetime unit.
func (s *State) FormatForTimes() datatype.TimeUnit {
	unit := "DATETIME"
	if f, ok := s.Model.StringFormatForType["time"]; ok && f.Unit != "" {
		unit = f.Unit
	}
	if u, ok := datatype.LookupTimeUnit(unit); ok {
		return u
	}
	u, _ := datatype.LookupTimeUnit("DATETIME")
	return u
}

// Renderer returns the renderer for a column. An explicit nil entry for
// the column disables the type renderer.
func (s *State) Renderer(name, typeName string) *model.Renderer {
	if r, ok := s.Model.RendererForColumn[name]; ok {
		return r
	}
	return s.Model.RendererForType[typeName]
}

// CellHighlighters returns copies of the configured highlighters.
func (s *State) CellHighlighters() []model.HighlighterState {
	out := make([]model.HighlighterState, len(s.Model.CellHighlighters))
	for i, h := range s.Model.CellHighlighters {
		out[i] = h.Clone()
	}
	return out
}

// ColumnHighlighters returns the highlighters for one (column, type) slot.
func (s *State) ColumnHighlighters(name string, t model.HighlighterType) []model.HighlighterState {
	var out []model.HighlighterState
	for _, h := range s.Model.CellHighlighters {
		if h.ColName == name && h.Type == t {
			out = append(out, h.Clone())
		}
	}
	return out
}

// HeadersVertical reports whether header text is drawn rotated.
func (s *State) HeadersVertical() bool { return s.Model.HeadersVertical }

// DataFontSize returns the body font size, or 0 for the default.
func (s *State) DataFontSize() float64 {
	if s.Model.DataFontSize == nil {
		return 0
	}
	return *s.Model.DataFontSize
}

// HeaderFontSize returns the header font size, or 0 for the default.
func (s *State) HeaderFontSize() float64 {
	if s.Model.HeaderFontSize == nil {
		return 0
	}
	return *s.Model.HeaderFontSize
}

// RowsToShow returns the page length.
func (s *State) RowsToShow() int {
	if s.Model.RowsToShow == 0 {
		return DefaultRowsToShow
	}
	return s.Model.RowsToShow
}

func (s *State) AutoLinkTableLinks() bool   { return s.Model.AutoLinkTableLinks }
func (s *State) HasDoubleClickAction() bool { return s.Model.HasDoubleClickAction }
func (s *State) DoubleClickTag() string     { return s.Model.DoubleClickTag }
func (s *State) TooManyRows() bool          { return s.Model.TooManyRows }

// ContextMenuItems returns the host-defined context menu entries.
func (s *State) ContextMenuItems() []string {
	return append([]string(nil), s.Model.ContextMenuItems...)
}

// ContextMenuTag returns the action tag bound to a context menu entry.
func (s *State) ContextMenuTag(item string) (string, bool) {
	tag, ok := s.Model.ContextMenuTags[item]
	return tag, ok
}

// ColumnStates returns copies of all column states.
func (s *State) ColumnStates() []model.ColumnState {
	out := make([]model.ColumnState, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Clone()
	}
	return out
}

// BodyColumnStates returns the body column states ordered by index.
func (s *State) BodyColumnStates() []model.ColumnState {
	var out []model.ColumnState
	for _, c := range s.Columns {
		if c.Key.Type == model.BodyColumn {
			out = append(out, c.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key.Index < out[j].Key.Index })
	return out
}

// VisibleBodyColumns returns the body columns that render under order.
func (s *State) VisibleBodyColumns(order []string) []model.ColumnState {
	var out []model.ColumnState
	for _, c := range s.BodyColumnStates() {
		if visible, ok := s.Model.ColumnsVisible[c.Name]; ok && !visible {
			continue
		}
		if len(order) > 0 && !contains(order, c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ColumnState returns the state stored under key, or the default state.
func (s *State) ColumnState(key model.Key) model.ColumnState {
	if i := s.columnIndex(key); i >= 0 {
		return s.Columns[i].Clone()
	}
	return model.DefaultColumnState()
}

// HasColumn reports whether a state exists for key.
func (s *State) HasColumn(key model.Key) bool {
	return s.columnIndex(key) >= 0
}

// ColumnIndexByPosition returns the index of the column rendered at pos.
func (s *State) ColumnIndexByPosition(pos model.Position) (int, bool) {
	for _, c := range s.Columns {
		if c.Position == pos {
			return c.Key.Index, true
		}
	}
	return 0, false
}

// ColumnDataTypeByName returns the data type of a named column.
func (s *State) ColumnDataTypeByName(name string) datatype.Type {
	for i, n := range s.ColumnNames() {
		if n == name && i < len(s.Model.Types) {
			return datatype.ParseType(s.Model.Types[i])
		}
	}
	return datatype.String
}

func (s *State) columnIndex(key model.Key) int {
	for i, c := range s.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

func (s *State) hasColumnName(name string) bool {
	if contains(s.ColumnNames(), name) {
		return true
	}
	return !s.Model.HasIndex && name == s.IndexColumnNames()[0]
}

func contains(list []string, name string) bool {
	return indexOf(list, name) >= 0
}

func indexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	return -1
}
