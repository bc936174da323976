package model

import (
	"strconv"

	"github.com/five82/tablegrid/internal/datatype"
)

// ColumnType splits columns into the index column and body columns.
type ColumnType string

const (
	IndexColumn ColumnType = "index"
	BodyColumn  ColumnType = "body"
)

// Region is a quadrant of the grid surface.
type Region string

const (
	RegionBody         Region = "body"
	RegionRowHeader    Region = "row-header"
	RegionColumnHeader Region = "column-header"
	RegionCornerHeader Region = "corner-header"
)

// IsHeader reports whether r renders header cells.
func (r Region) IsHeader() bool {
	return r == RegionColumnHeader || r == RegionCornerHeader
}

// IsRowHeader reports whether r is in the frozen (left) half of the grid.
func (r Region) IsRowHeader() bool {
	return r == RegionRowHeader || r == RegionCornerHeader
}

// Position is where a column renders: a region and an offset inside it.
type Position struct {
	Region Region `json:"region"`
	Value  int    `json:"value"`
}

// ComparePositions orders row-header positions before body positions and
// then by offset.
func ComparePositions(a, b Position) int {
	if a.Region == b.Region {
		return a.Value - b.Value
	}
	if a.Region == RegionRowHeader {
		return -1
	}
	return 1
}

// SortOrder is a column's sort direction.
type SortOrder int

const (
	SortDesc SortOrder = -1
	NoSort   SortOrder = 0
	SortAsc  SortOrder = 1
)

func (o SortOrder) String() string {
	switch o {
	case SortAsc:
		return "ASC"
	case SortDesc:
		return "DESC"
	}
	return "NO_SORT"
}

// Alignment is a horizontal text alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// AlignmentByChar decodes the host's one-letter alignment codes.
func AlignmentByChar(c string) Alignment {
	switch c {
	case "C", "center":
		return AlignCenter
	case "R", "right":
		return AlignRight
	}
	return AlignLeft
}

// AlignmentByType is the default alignment for a data type.
func AlignmentByType(t datatype.Type) Alignment {
	switch {
	case t == datatype.Datetime || t == datatype.Time:
		return AlignCenter
	case t.IsNumeric():
		return AlignRight
	}
	return AlignLeft
}

// Key identifies a column state.
type Key struct {
	Type  ColumnType
	Index int
}

func (k Key) String() string {
	return string(k.Type) + "_" + strconv.Itoa(k.Index)
}

// ColumnState is the stored display state of one column.
type ColumnState struct {
	Key                 Key
	Name                string
	DataType            datatype.Type
	DataTypeName        string
	DisplayType         datatype.DisplayType
	HorizontalAlignment Alignment
	SortOrder           SortOrder
	Filter              string
	FormatForTimes      *datatype.TimeUnit
	KeepTrigger         bool
	Position            Position
	Width               int
}

// DefaultColumnState is returned by lookups that miss.
func DefaultColumnState() ColumnState {
	return ColumnState{
		Key:                 Key{Type: BodyColumn},
		DataType:            datatype.String,
		DisplayType:         datatype.DisplayOf(datatype.String),
		HorizontalAlignment: AlignLeft,
		SortOrder:           NoSort,
		Position:            Position{Region: RegionBody},
	}
}

// Clone returns a copy of s that shares no pointers with it.
func (s ColumnState) Clone() ColumnState {
	s.FormatForTimes = clonePtr(s.FormatForTimes)
	return s
}
