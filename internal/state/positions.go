package state

import (
	"sort"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// initialColumnStates seeds one state per column from the model record.
func (s *State) initialColumnStates() []model.ColumnState {
	names := s.ColumnNames()
	types := s.Model.Types
	if s.Model.HasIndex && len(names) > 0 {
		names = names[1:]
		if len(types) > 0 {
			types = types[1:]
		}
	}
	positions := s.initialColumnPositions()
	formatForTimes := s.FormatForTimes()

	build := func(ct model.ColumnType, index int, name, typeName string, pos model.Position) model.ColumnState {
		dt := datatype.ParseType(typeName)
		unit := formatForTimes
		return model.ColumnState{
			Key:                 model.Key{Type: ct, Index: index},
			Name:                name,
			DataType:            dt,
			DataTypeName:        typeName,
			DisplayType:         s.InitialDisplayType(dt, name, typeName),
			HorizontalAlignment: s.InitialColumnAlignment(dt, name),
			SortOrder:           model.NoSort,
			FormatForTimes:      &unit,
			KeepTrigger:         ct == model.IndexColumn,
			Position:            pos,
			Width:               s.ColumnFixedWidth(name, typeName),
		}
	}

	indexType := datatype.DefaultIndexType.String()
	if s.Model.HasIndex && len(s.Model.Types) > 0 {
		indexType = s.Model.Types[0]
	}
	cols := []model.ColumnState{
		build(model.IndexColumn, 0, s.IndexColumnNames()[0], indexType, model.Position{Region: model.RegionRowHeader}),
	}
	for i, name := range names {
		typeName := ""
		if i < len(types) {
			typeName = types[i]
		}
		cols = append(cols, build(model.BodyColumn, i, name, typeName, positions[i]))
	}
	return cols
}

// initialColumnPositions computes body column positions from the record's
// order, frozen and visibility settings.
func (s *State) initialColumnPositions() []model.Position {
	columnNames := s.BodyColumnNames()
	frozenNames := s.ColumnsFrozenNames()
	order := append([]string(nil), columnNames...)
	var frozenOrder []string

	if len(s.Model.ColumnOrder) > 0 {
		for i := len(s.Model.ColumnOrder) - 1; i >= 0; i-- {
			name := s.Model.ColumnOrder[i]
			if contains(frozenNames, name) {
				frozenOrder = append([]string{name}, frozenOrder...)
			}
			pos := indexOf(order, name)
			if pos < 0 {
				continue
			}
			order = append(order[:pos], order[pos+1:]...)
			order = append([]string{name}, order...)
		}
	}

	for _, name := range s.hiddenNames() {
		if pos := indexOf(order, name); pos >= 0 {
			order = append(order[:pos], order[pos+1:]...)
			order = append(order, name)
		}
	}

	for _, name := range frozenNames {
		if pos := indexOf(order, name); pos >= 0 {
			order = append(order[:pos], order[pos+1:]...)
		}
		if !contains(frozenOrder, name) {
			frozenOrder = append(frozenOrder, name)
		}
	}

	result := make([]model.Position, len(columnNames))
	for i, name := range columnNames {
		if pos := indexOf(order, name); pos >= 0 {
			result[i] = model.Position{Region: model.RegionBody, Value: pos}
			continue
		}
		result[i] = model.Position{Region: model.RegionRowHeader, Value: indexOf(frozenOrder, name) + 1}
	}
	return result
}

// hiddenNames lists hidden columns in record order, then unknown hidden
// names sorted.
func (s *State) hiddenNames() []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range s.ColumnNames() {
		if visible, ok := s.Model.ColumnsVisible[name]; ok && !visible && !seen[name] {
			out = append(out, name)
		}
		seen[name] = true
	}
	var extra []string
	for name, visible := range s.Model.ColumnsVisible {
		if !visible && !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// applyPositions assigns every body column its render position given a
// column order, the frozen names and the visibility map. Index columns
// keep their positions.
func (s *State) applyPositions(value []string, hasIndex bool, frozenNames []string, visible map[string]bool) {
	order := append([]string(nil), value...)
	if pos := indexOf(order, "index"); pos >= 0 {
		order = append(order[:pos], order[pos+1:]...)
	}
	frozen := append([]string(nil), frozenNames...)

	if len(frozen) > 0 {
		rank := func(name string) int { return indexOf(order, name) }
		sort.SliceStable(frozen, func(i, j int) bool { return rank(frozen[i]) < rank(frozen[j]) })
		for _, name := range frozen {
			if pos := indexOf(order, name); pos >= 0 {
				order = append(order[:pos], order[pos+1:]...)
			}
		}
	}

	for _, c := range s.Columns {
		if v, ok := visible[c.Name]; !ok || v {
			continue
		}
		if pos := indexOf(order, c.Name); pos >= 0 {
			order = append(order[:pos], order[pos+1:]...)
			order = append(order, c.Name)
		}
		if pos := indexOf(frozen, c.Name); pos >= 0 {
			frozen = append(frozen[:pos], frozen[pos+1:]...)
			frozen = append(frozen, c.Name)
		}
	}

	for i := range s.Columns {
		c := &s.Columns[i]
		if c.Key.Type != model.BodyColumn {
			continue
		}
		inBody := indexOf(order, c.Name)
		inFrozen := indexOf(frozen, c.Name) + 1
		if inFrozen == 0 && inBody == -1 {
			order = append(order, c.Name)
			inBody = len(order) - 1
		}
		if hasIndex {
			inBody--
		}
		if inFrozen == 0 {
			c.Position = model.Position{Region: model.RegionBody, Value: inBody}
		} else {
			c.Position = model.Position{Region: model.RegionRowHeader, Value: inFrozen}
		}
	}
}

// recomputePositions reapplies positions from the state's own order,
// frozen set and visibility map.
func (s *State) recomputePositions() {
	order := s.Model.ColumnOrder
	if len(order) == 0 {
		order = s.ColumnNames()
	}
	s.applyPositions(order, s.Model.HasIndex, s.ColumnsFrozenNames(), s.Model.ColumnsVisible)
}
