package highlight

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
	"github.com/five82/tablegrid/internal/state"
	"github.com/five82/tablegrid/internal/surface"
	"github.com/five82/tablegrid/internal/theme"
)

type noopGrid struct{}

func (noopGrid) CellAt(x, y int) *cell.Data                                    { return nil }
func (noopGrid) RowHeaderSections() surface.SectionGeometry                    { return surface.NewSections(1, 10) }
func (noopGrid) ColumnSections() surface.SectionGeometry                       { return surface.NewSections(2, 10) }
func (noopGrid) ColumnHeaderSections() surface.SectionGeometry                 { return surface.NewSections(1, 2) }
func (noopGrid) AddColumnHighlighter(*column.Column, model.HighlighterType)    {}
func (noopGrid) RemoveColumnHighlighter(*column.Column, model.HighlighterType) {}
func (noopGrid) ToggleColumnHighlighter(*column.Column, model.HighlighterType) {}
func (noopGrid) RemoveHighlighters(*column.Column)                             {}
func (noopGrid) RestoreHighlighters(*column.Column)                            {}
func (noopGrid) SetInitialSectionWidth(*column.Column)                         {}
func (noopGrid) UpdateWidgetWidth()                                            {}
func (noopGrid) Resize()                                                       {}
func (noopGrid) ResetModel()                                                   {}
func (noopGrid) RepaintBody()                                                  {}

type lazyColumns struct{ m *column.Manager }

func (l *lazyColumns) FilterColumns() []row.Column { return l.m.FilterColumns() }

func newManager(t *testing.T, r model.Record) (*Manager, *state.Store, *column.Manager) {
	t.Helper()
	store, err := state.NewStore(r)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	logger := log.New(&bytes.Buffer{})
	src := &lazyColumns{}
	rows := row.New(src, row.AllRows, row.Options{Logger: logger})
	rows.CreateRows(r.Values, nil, r.HasIndex, "")
	cols := column.New(store, rows, column.Options{Grid: noopGrid{}, Logger: logger})
	src.m = cols
	cols.AddColumns()
	m := New(store, cols, rows, Options{Palette: theme.Light(), Logger: logger})
	m.CreateHighlighters()
	return m, store, cols
}

func twoColumns() model.Record {
	return model.Record{
		ColumnNames: []any{"a", "b"},
		Types:       []string{"double", "double"},
		Values:      [][]any{{0.0, 10.0}, {0.5, 20.0}, {1.0, 30.0}, {"x", 40.0}},
	}
}

func float(f float64) *float64 { return &f }

func bodyCell(row, col int, value any) cell.Config {
	return cell.Config{Region: model.RegionBody, Row: row, Column: col, Value: value}
}

func TestHeatmap(t *testing.T) {
	m, _, cols := newManager(t, twoColumns())
	h, err := m.CreateHighlighter(cols.ColumnByName("a"), model.HighlighterState{
		Type: model.HeatmapHighlighter, ColName: "a",
		MinVal: float(0), MaxVal: float(1), MinColor: "#0000ff", MaxColor: "#ff0000",
	})
	if err != nil {
		t.Fatalf("CreateHighlighter() error = %v", err)
	}
	tests := []struct {
		value any
		want  string
	}{
		{0.0, "rgb(0, 0, 255)"},
		{1.0, "rgb(255, 0, 0)"},
		{0.5, "rgb(128, 0, 128)"},
		{2.0, "rgb(255, 0, 0)"},
		{"x", ""},
	}
	for _, tt := range tests {
		if got := h.Background(bodyCell(0, 0, tt.value)); got != tt.want {
			t.Fatalf("Background(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
	if st := h.State(); st.Style != model.SingleColumn {
		t.Fatalf("default style = %q, want SINGLE_COLUMN", st.Style)
	}
}

func TestHeatmapStatisticsDefaults(t *testing.T) {
	m, _, cols := newManager(t, twoColumns())
	h, _ := m.CreateHighlighter(cols.ColumnByName("b"), model.HighlighterState{Type: model.HeatmapHighlighter, ColName: "b"})
	if got, want := h.Background(bodyCell(0, 1, 10.0)), "rgb(93, 165, 218)"; got != want {
		t.Fatalf("min Background = %q, want %q", got, want)
	}
	if got, want := h.Background(bodyCell(3, 1, 40.0)), "rgb(241, 88, 84)"; got != want {
		t.Fatalf("max Background = %q, want %q", got, want)
	}
}

func TestThreeColorHeatmap(t *testing.T) {
	m, _, cols := newManager(t, twoColumns())
	h, _ := m.CreateHighlighter(cols.ColumnByName("a"), model.HighlighterState{
		Type: model.ThreeColorHeatmapHighlighter, ColName: "a", MinVal: float(0), MaxVal: float(1),
	})
	tests := []struct {
		value float64
		want  string
	}{
		{0, "rgb(93, 165, 218)"},
		{0.5, "rgb(96, 189, 104)"},
		{1, "rgb(241, 88, 84)"},
	}
	for _, tt := range tests {
		if got := h.Background(bodyCell(0, 0, tt.value)); got != tt.want {
			t.Fatalf("Background(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestUniqueEntries(t *testing.T) {
	m, _, cols := newManager(t, model.Record{
		ColumnNames: []any{"s"},
		Types:       []string{"string"},
		Values:      [][]any{{"x"}, {"y"}, {"x"}},
	})
	h, _ := m.CreateHighlighter(cols.ColumnByName("s"), model.HighlighterState{Type: model.UniqueEntriesHighlighter, ColName: "s"})
	x, y := h.Background(bodyCell(0, 0, "x")), h.Background(bodyCell(1, 0, "y"))
	if x == "" || y == "" || x == y {
		t.Fatalf("colors x=%q y=%q, want two distinct colors", x, y)
	}
	if got := h.Background(bodyCell(2, 0, "x")); got != x {
		t.Fatalf("repeated value color = %q, want %q", got, x)
	}
	if got := h.Background(bodyCell(0, 0, "z")); got != "" {
		t.Fatalf("unknown value color = %q, want empty", got)
	}
}

func TestUniqueEntriesKeyOnResolvedValue(t *testing.T) {
	m, _, cols := newManager(t, model.Record{
		ColumnNames: []any{"d"},
		Types:       []string{"double"},
		Values:      [][]any{{"1.0"}, {1.0}, {2.0}},
	})
	h, _ := m.CreateHighlighter(cols.ColumnByName("d"), model.HighlighterState{Type: model.UniqueEntriesHighlighter, ColName: "d"})
	want := Colors(0, 2, false)
	if got := h.Background(bodyCell(0, 0, "1.0")); got != want[0] {
		t.Fatalf("color of 1.0 = %q, want %q", got, want[0])
	}
	if got := h.Background(bodyCell(1, 0, 1.0)); got != want[0] {
		t.Fatalf("color of 1 = %q, want %q", got, want[0])
	}
	if got := h.Background(bodyCell(2, 0, 2.0)); got != want[1] {
		t.Fatalf("color of 2 = %q, want %q", got, want[1])
	}
}

func TestColorSequence(t *testing.T) {
	if got, want := ColorForIndex(0, 0, false), "hsl(222, 85%, 85%)"; got != want {
		t.Fatalf("ColorForIndex(0, 0) = %q, want %q", got, want)
	}
	if got, want := ColorForIndex(0, 0, true), "hsl(222, 65%, 65%)"; got != want {
		t.Fatalf("dark ColorForIndex(0, 0) = %q, want %q", got, want)
	}
	colors := Colors(0.25, 5, false)
	for i, c := range colors {
		if got := ColorForIndex(0.25, i, false); got != c {
			t.Fatalf("ColorForIndex(0.25, %d) = %q, want %q", i, got, c)
		}
	}
	if ColorForIndex(0, -1, false) != "" {
		t.Fatalf("negative index should give no color")
	}
}

func TestHueRepeatStepsSaturationThenLightness(t *testing.T) {
	seq := newHSLSequence(0, 35, 35)
	for i := 0; i < 2000; i++ {
		seq.next()
	}
	if seq.satSteps != hslSteps {
		t.Fatalf("satSteps = %d, want %d", seq.satSteps, hslSteps)
	}
	if seq.lightSteps == 0 {
		t.Fatalf("lightness never stepped")
	}
}

func TestValueHighlighter(t *testing.T) {
	m, _, cols := newManager(t, twoColumns())
	h, _ := m.CreateHighlighter(cols.ColumnByName("a"), model.HighlighterState{
		Type: model.ValueHighlighter, ColName: "a", Style: model.FullRow,
		Colors: []string{"#ff112233", "#445566"},
	})
	if h.State().Style != model.SingleColumn {
		t.Fatalf("style = %q, want SINGLE_COLUMN", h.State().Style)
	}
	for row, want := range []string{"#112233", "#445566", ""} {
		if got := h.Background(bodyCell(row, 0, nil)); got != want {
			t.Fatalf("row %d = %q, want %q", row, got, want)
		}
	}
}

func TestFormatColorAndDarken(t *testing.T) {
	if got := FormatColor("#00000000"); got != "#000000" {
		t.Fatalf("FormatColor = %q", got)
	}
	if got := FormatColor("#abcdef"); got != "#abcdef" {
		t.Fatalf("FormatColor = %q", got)
	}
	tests := []struct {
		color  string
		factor float64
		want   string
	}{
		{"rgb(255,255,255)", 0.8, "#cccccc"},
		{"rgb(64,128,255)", 0.8, "#3366cc"},
		{"rgb(255,255,255)", 0.1, "#191919"},
		{"rgb(255,255,255)", 0.5, "#7f7f7f"},
		{"rgb(241, 241, 241)", 0.8, "#c0c0c0"},
		{"#ffffff", 0.8, "#ffffff"},
	}
	for _, tt := range tests {
		if got := Darken(tt.color, tt.factor); got != tt.want {
			t.Fatalf("Darken(%q, %v) = %q, want %q", tt.color, tt.factor, got, tt.want)
		}
	}
}

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		name string
		in   Layers
		want string
	}{
		{"default", Layers{Default: "#fff"}, "#fff"},
		{"highlighter", Layers{Highlighter: "rgb(10, 10, 10)", Default: "#fff"}, "rgb(10, 10, 10)"},
		{"selection over highlighter", Layers{Selection: "#b0bed9", Highlighter: "rgb(10, 10, 10)"}, "#b0bed9"},
		{"focus over all", Layers{Focused: "#c8c8c8", Selection: "#b0bed9", Highlighter: "#111"}, "#c8c8c8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackgroundColor(tt.in); got != tt.want {
				t.Fatalf("BackgroundColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToggleColumnHighlighter(t *testing.T) {
	m, store, cols := newManager(t, twoColumns())
	a := cols.ColumnByName("a")

	m.ToggleColumnHighlighter(a, model.HeatmapHighlighter)
	if got := len(store.Current().ColumnHighlighters("a", model.HeatmapHighlighter)); got != 1 {
		t.Fatalf("stored highlighters = %d, want 1", got)
	}
	if got := m.CellBackground(bodyCell(0, 0, 0.0)); got != "rgb(93, 165, 218)" {
		t.Fatalf("CellBackground() = %q", got)
	}
	if got := m.CellBackground(bodyCell(0, 1, 10.0)); got != "" {
		t.Fatalf("CellBackground() on other column = %q, want empty", got)
	}
	if got := m.CellBackground(cell.Config{Region: model.RegionColumnHeader, Column: 0}); got != "" {
		t.Fatalf("header CellBackground() = %q, want empty", got)
	}

	m.ToggleColumnHighlighter(a, model.HeatmapHighlighter)
	if len(m.All()) != 0 || len(store.Current().CellHighlighters()) != 0 {
		t.Fatalf("highlighter not removed: %d registered", len(m.All()))
	}
}

func TestFullRowAndRestore(t *testing.T) {
	r := twoColumns()
	r.CellHighlighters = []model.HighlighterState{
		{Type: model.HeatmapHighlighter, ColName: "a", Style: model.FullRow, MinVal: float(0), MaxVal: float(1), MinColor: "#000000", MaxColor: "#ffffff"},
		{Type: model.SortHighlighter, ColName: "b"},
	}
	m, _, cols := newManager(t, r)
	if got := len(m.All()); got != 2 {
		t.Fatalf("registered = %d, want 2", got)
	}
	// Column a holds 1 in row 2, so the whole row is white except where
	// the later sort highlighter on b wins.
	if got := m.CellBackground(bodyCell(2, 0, 1.0)); got != "rgb(255, 255, 255)" {
		t.Fatalf("row 2 col a = %q", got)
	}
	if got := m.CellBackground(bodyCell(2, 1, 30.0)); got != theme.Light().SortEven {
		t.Fatalf("row 2 col b = %q, want sort stripe", got)
	}
	if got := m.CellBackground(bodyCell(1, 1, 20.0)); got != theme.Light().SortOdd {
		t.Fatalf("row 1 col b = %q, want odd sort stripe", got)
	}

	b := cols.ColumnByName("b")
	m.RemoveHighlighters(b)
	if got := len(m.Highlighters(b, model.SortHighlighter)); got != 0 {
		t.Fatalf("sort highlighters after remove = %d", got)
	}
	m.RestoreHighlighters(cols.ColumnByName("a"))
	if got := len(m.All()); got != 1 {
		t.Fatalf("registered after restore = %d, want 1", got)
	}
}
