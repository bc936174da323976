package filter

import "github.com/five82/tablegrid/internal/datatype"

// MapScope is a Scope backed by plain values.
type MapScope struct {
	Vars   map[string]any
	Index  any
	Values []any
}

func (s MapScope) Lookup(name string) (any, bool) {
	v, ok := s.Vars[name]
	return v, ok
}

func (s MapScope) RowIndex() any { return s.Index }

func (s MapScope) RowValue(i int) any {
	if i < 0 || i >= len(s.Values) {
		return datatype.Undefined
	}
	return s.Values[i]
}
