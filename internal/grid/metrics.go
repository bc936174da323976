package grid

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Metrics are the sizing constants of a grid, in surface units.
type Metrics struct {
	// ResizeHotzone is the depth of the outer edge that starts a grid
	// resize.
	ResizeHotzone int
	RowPadding    int
	GridPadding   int
	// MinColumnWidth is also the base width of new sections.
	MinColumnWidth   int
	DefaultRowHeight int
	// ColumnResizeArea is the strip at the right edge of a header cell
	// that resizes the column instead of dragging it.
	ColumnResizeArea int
	// HeaderMenuSpace is added to a header name when sizing a column.
	HeaderMenuSpace int
	// ValueSlack lets a value be this much wider than its header before
	// the value decides the column width.
	ValueSlack int
	// FixedRowHeight ignores font sizes when sizing rows and headers.
	FixedRowHeight bool
}

// DefaultMetrics are canvas pixel metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		ResizeHotzone:    6,
		RowPadding:       4,
		GridPadding:      20,
		MinColumnWidth:   40,
		DefaultRowHeight: 24,
		ColumnResizeArea: 4,
		HeaderMenuSpace:  4,
		ValueSlack:       7,
	}
}

// TerminalMetrics size the grid in character cells.
func TerminalMetrics() Metrics {
	return Metrics{
		ResizeHotzone:    1,
		MinColumnWidth:   4,
		DefaultRowHeight: 1,
		ColumnResizeArea: 2,
		FixedRowHeight:   true,
	}
}

// DefaultFontSize is used when the model sets no font size.
const DefaultFontSize = 13

// Measurer sizes rendered text.
type Measurer interface {
	StringSize(s string, fontSize float64) (width, height int)
}

// RuneMeasurer sizes text by its display width in columns.
type RuneMeasurer struct {
	// EmWidth is the advance of one column per unit of font size. Zero
	// measures in cells: one unit per column and one line of height.
	EmWidth float64
	Padding int
}

func (m RuneMeasurer) StringSize(s string, fontSize float64) (int, int) {
	w := runewidth.StringWidth(s)
	if m.EmWidth <= 0 {
		return w + m.Padding, 1
	}
	if fontSize <= 0 || math.IsNaN(fontSize) || math.IsInf(fontSize, 0) {
		fontSize = DefaultFontSize
	}
	return int(math.Ceil(float64(w)*fontSize*m.EmWidth)) + m.Padding, int(math.Ceil(fontSize * 1.2))
}

// CellMeasurer measures in terminal cells with one cell of padding on
// each side.
func CellMeasurer() Measurer { return RuneMeasurer{Padding: 2} }

func pixelMeasurer() Measurer { return RuneMeasurer{EmWidth: 0.6, Padding: 8} }
