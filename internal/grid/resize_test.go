package grid

import (
	"testing"

	"github.com/five82/tablegrid/internal/model"
)

func TestSectionWidthsFitContent(t *testing.T) {
	g := newFixture(t, model.Record{
		ColumnNames: []any{"greeting", "a very long header"},
		Types:       []string{"string", "string"},
		Values:      [][]any{{"hello world", "x"}},
	}).g

	tests := []struct {
		name string
		want int
	}{
		{"greeting", 13},
		{"a very long header", 20},
	}
	for _, tt := range tests {
		col := g.Columns().ColumnByName(tt.name)
		if got := g.Resizer().CalculateSectionWidth(col); got != tt.want {
			t.Fatalf("CalculateSectionWidth(%s) = %d, want %d", tt.name, got, tt.want)
		}
		if got := col.Width(); got != tt.want {
			t.Fatalf("%s Width() = %d, want %d", tt.name, got, tt.want)
		}
		if got := g.ColumnSections().SizeOf(col.Position().Value); got != tt.want {
			t.Fatalf("%s section = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSectionWidthFloor(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	for i := 0; i < 3; i++ {
		if got := g.ColumnSections().SizeOf(i); got != TerminalMetrics().MinColumnWidth {
			t.Fatalf("section %d = %d, want %d", i, got, TerminalMetrics().MinColumnWidth)
		}
	}
	if got := g.TotalWidth(); got != 16 {
		t.Fatalf("TotalWidth() = %d, want 16", got)
	}
	if got := g.Resizer().Width(); got != 16 {
		t.Fatalf("widget width = %d, want 16", got)
	}
}

func TestResizeHotzone(t *testing.T) {
	r := newFixture(t, threeColumns()).g.Resizer()
	w, h := r.ViewportWidth(), r.ViewportHeight()
	tests := []struct {
		x, y int
		want ResizeMode
	}{
		{w, 0, ResizeHorizontal},
		{w + 1, 0, ResizeHorizontal},
		{w + 2, 0, ResizeNone},
		{0, h, ResizeVertical},
		{w, h, ResizeBoth},
		{w - 1, h - 1, ResizeNone},
	}
	for _, tt := range tests {
		r.SetResizeMode(tt.x, tt.y)
		if got := r.Mode(); got != tt.want {
			t.Fatalf("SetResizeMode(%d, %d) mode = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if got := r.ShouldResize(tt.x, tt.y); got != (tt.want != ResizeNone) {
			t.Fatalf("ShouldResize(%d, %d) = %v", tt.x, tt.y, got)
		}
	}
	if got := ResizeBoth.Cursor(); got != "nwse-resize" {
		t.Fatalf("Cursor() = %q, want nwse-resize", got)
	}
}

func TestHorizontalResizeFillsSpace(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	w := g.Resizer().ViewportWidth()

	g.HandleMouseDown(w, 2, false)
	if !g.IsResizing() {
		t.Fatalf("IsResizing() = false after edge press")
	}
	g.HandleMouseMove(w+8, 2, true)
	if got := g.Resizer().Width(); got != w+8 {
		t.Fatalf("widget width = %d, want %d", got, w+8)
	}
	if got := g.TotalWidth(); got != w+8 {
		t.Fatalf("TotalWidth() = %d, want %d", got, w+8)
	}
	if got := g.Columns().ColumnByName("a").Width(); got != 6 {
		t.Fatalf("a Width() = %d, want 6", got)
	}

	g.HandleMouseUp(w+8, 2)
	if g.IsResizing() {
		t.Fatalf("IsResizing() = true after release")
	}
	g.Resizer().StopResizing()
}

func TestVerticalResizeSetsRowsToShow(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	h := g.Resizer().ViewportHeight()

	g.HandleMouseDown(0, h, false)
	g.HandleMouseMove(0, h-2, false)
	if got := g.RowsToShow(); got == 2 {
		t.Fatalf("RowsToShow() changed without the button held")
	}
	g.HandleMouseMove(0, h-2, true)
	if got := g.RowsToShow(); got != 2 {
		t.Fatalf("RowsToShow() = %d, want 2", got)
	}
	if got := g.Resizer().Height(); got != 3 {
		t.Fatalf("widget height = %d, want 3", got)
	}
}

func TestMaxWidthBoundsWidget(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	g.Resizer().SetMaxWidth(10)
	if got := g.Resizer().Width(); got != 10 {
		t.Fatalf("Width() = %d, want 10", got)
	}
	g.Resizer().SetMaxWidth(0)
	if got := g.Resizer().Width(); got != 16 {
		t.Fatalf("unbounded Width() = %d, want 16", got)
	}
}

func TestVerticalHeadersSizeHeader(t *testing.T) {
	g := newFixture(t, model.Record{
		ColumnNames: []any{"alpha", "be"},
		Types:       []string{"string", "string"},
		Values:      [][]any{{"x", "y"}},
	}).g
	if got := g.HeaderHeight(); got != 1 {
		t.Fatalf("HeaderHeight() = %d, want 1", got)
	}
	g.SetHeadersVertical(true)
	if got := g.HeaderHeight(); got != 7 {
		t.Fatalf("vertical HeaderHeight() = %d, want 7", got)
	}
}

func TestHeaderBorderDragResizesColumn(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	edge := g.HeaderWidth() + g.ColumnSections().SizeOf(0) - 1

	g.HandleMouseDown(edge, 0, false)
	if g.Position().IsDragging() {
		t.Fatalf("border press started a header drag")
	}
	g.HandleMouseMove(edge+3, 0, true)
	if got := g.ColumnSections().SizeOf(0); got != 7 {
		t.Fatalf("section during drag = %d, want 7", got)
	}
	g.HandleMouseUp(edge+3, 0)
	if got := g.Columns().ColumnByName("a").Width(); got != 7 {
		t.Fatalf("a Width() = %d, want 7", got)
	}
	if got := g.Resizer().Width(); got != 19 {
		t.Fatalf("widget width = %d, want 19", got)
	}
}
