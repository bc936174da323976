package row

import "github.com/five82/tablegrid/internal/datatype"

// CellValue is one cell of a row: the raw value and its font color.
type CellValue struct {
	Value     any
	FontColor string
}

// Row is one record of the grid. Index is its logical index, stable across
// sorting and filtering.
type Row struct {
	Index any
	Cells []CellValue
}

// Value returns the value of body cell i, or datatype.Undefined.
func (r *Row) Value(i int) any {
	if r == nil || i < 0 || i >= len(r.Cells) {
		return datatype.Undefined
	}
	return r.Cells[i].Value
}

// FontColor returns the font color of body cell i, or "".
func (r *Row) FontColor(i int) string {
	if r == nil || i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i].FontColor
}

// CreateRows builds rows from a row-major value matrix. With hasIndex the
// first value of each record becomes the row index; otherwise rows are
// numbered from 0. Font colors apply only when there is one color row per
// value row.
func CreateRows(values [][]any, fontColors [][]string, hasIndex bool, defaultColor string) []*Row {
	useColors := fontColors != nil && len(fontColors) == len(values)
	rows := make([]*Row, len(values))
	for i, record := range values {
		cells := make([]CellValue, len(record))
		for j, v := range record {
			color := defaultColor
			if useColors && j < len(fontColors[i]) {
				color = fontColors[i][j]
			}
			cells[j] = CellValue{Value: v, FontColor: color}
		}
		if hasIndex {
			r := &Row{Index: datatype.Undefined}
			if len(cells) > 0 {
				r.Index, r.Cells = cells[0].Value, cells[1:]
			}
			rows[i] = r
			continue
		}
		rows[i] = &Row{Index: i, Cells: cells}
	}
	return rows
}
