package column

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
	"github.com/five82/tablegrid/internal/state"
	"github.com/five82/tablegrid/internal/surface"
)

type fakeGrid struct {
	rowHeader, columns, header *surface.Sections
	cells                      map[[2]int]*cell.Data
	calls                      []string
	repaints                   int
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{
		rowHeader: surface.NewSections(1, 10),
		columns:   surface.NewSections(3, 20),
		header:    surface.NewSections(1, 5),
		cells:     make(map[[2]int]*cell.Data),
	}
}

func (g *fakeGrid) CellAt(x, y int) *cell.Data                    { return g.cells[[2]int{x, y}] }
func (g *fakeGrid) RowHeaderSections() surface.SectionGeometry    { return g.rowHeader }
func (g *fakeGrid) ColumnSections() surface.SectionGeometry       { return g.columns }
func (g *fakeGrid) ColumnHeaderSections() surface.SectionGeometry { return g.header }

func (g *fakeGrid) record(op string, c *Column, t model.HighlighterType) {
	g.calls = append(g.calls, fmt.Sprintf("%s %s %s", op, c.Name(), t))
}

func (g *fakeGrid) AddColumnHighlighter(c *Column, t model.HighlighterType)    { g.record("add", c, t) }
func (g *fakeGrid) RemoveColumnHighlighter(c *Column, t model.HighlighterType) { g.record("remove", c, t) }
func (g *fakeGrid) ToggleColumnHighlighter(c *Column, t model.HighlighterType) { g.record("toggle", c, t) }
func (g *fakeGrid) RemoveHighlighters(c *Column)                               { g.record("reset", c, "") }
func (g *fakeGrid) RestoreHighlighters(c *Column)                              { g.record("restore", c, "") }
func (g *fakeGrid) SetInitialSectionWidth(*Column)                             {}
func (g *fakeGrid) UpdateWidgetWidth()                                         {}
func (g *fakeGrid) Resize()                                                    {}
func (g *fakeGrid) ResetModel()                                                {}
func (g *fakeGrid) RepaintBody()                                               { g.repaints++ }

type lazyColumns struct{ m *Manager }

func (l *lazyColumns) FilterColumns() []row.Column { return l.m.FilterColumns() }

type fixture struct {
	store *state.Store
	rows  *row.Manager
	grid  *fakeGrid
	clock *clock.Fake
	m     *Manager
	logs  *bytes.Buffer
}

func newFixture(t *testing.T, r model.Record) *fixture {
	t.Helper()
	store, err := state.NewStore(r)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	src := &lazyColumns{}
	rows := row.New(src, row.AllRows, row.Options{Logger: logger})
	rows.CreateRows(r.Values, nil, r.HasIndex, "")
	f := &fixture{store: store, rows: rows, grid: newFakeGrid(), clock: clock.NewFake(time.Unix(0, 0)), logs: &logs}
	f.m = New(store, rows, Options{Grid: f.grid, Clock: f.clock, Logger: logger})
	src.m = f.m
	f.m.AddColumns()
	return f
}

func threeColumns() model.Record {
	return model.Record{
		ColumnNames: []any{"a", "b", "c"},
		Types:       []string{"string", "double", "integer"},
		Values: [][]any{
			{"x", 3.0, 1.0},
			{"y", 1.0, 2.0},
			{"z", 2.0, 3.0},
		},
	}
}

func rowIndexes(m *row.Manager) []any {
	var out []any
	for _, r := range m.Rows() {
		out = append(out, r.Index)
	}
	return out
}

func TestAddColumns(t *testing.T) {
	f := newFixture(t, threeColumns())
	if got := f.m.BodyColumnNames(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("BodyColumnNames() = %v", got)
	}
	if got := len(f.m.IndexColumns()); got != 1 {
		t.Fatalf("IndexColumns() = %d, want 1", got)
	}
	if got := len(f.m.Columns()); got != 4 {
		t.Fatalf("Columns() = %d, want 4", got)
	}
	if c := f.m.ColumnByName("b"); c == nil || c.Index() != 1 || c.DataType() != datatype.Double {
		t.Fatalf("ColumnByName(b) = %+v", c)
	}
	if c := f.m.ColumnByIndex(model.BodyColumn, 9); c != nil {
		t.Fatalf("ColumnByIndex(body, 9) = %v, want nil", c)
	}
}

func TestMinMaxValues(t *testing.T) {
	f := newFixture(t, model.Record{
		ColumnNames: []any{"s", "d"},
		Types:       []string{"string", "double"},
		Values: [][]any{
			{"3", 2.0},
			{"abc", "x"},
			{"1", 1.5},
			{"2.5", nil},
		},
	})
	s := f.m.ColumnByName("s")
	if s.MinValue() != "1" || s.MaxValue() != "3" {
		t.Fatalf("string min/max = %v/%v, want 1/3", s.MinValue(), s.MaxValue())
	}
	if s.LongestStringValue() != "abc" {
		t.Fatalf("LongestStringValue() = %v, want abc", s.LongestStringValue())
	}
	d := f.m.ColumnByName("d")
	if d.MinValue() != 1.5 || d.MaxValue() != 2.0 {
		t.Fatalf("double min/max = %v/%v, want 1.5/2", d.MinValue(), d.MaxValue())
	}
}

func TestColumnByPositionFrozen(t *testing.T) {
	r := threeColumns()
	r.ColumnsFrozen = map[string]bool{"b": true}
	f := newFixture(t, r)

	tests := []struct {
		pos  model.Position
		want string
		typ  model.ColumnType
	}{
		{model.Position{Region: model.RegionRowHeader, Value: 0}, "", model.IndexColumn},
		{model.Position{Region: model.RegionRowHeader, Value: 1}, "b", model.BodyColumn},
		{model.Position{Region: model.RegionBody, Value: 0}, "a", model.BodyColumn},
		{model.Position{Region: model.RegionBody, Value: 1}, "c", model.BodyColumn},
	}
	for _, tt := range tests {
		c := f.m.ColumnByPosition(tt.pos)
		if c == nil || c.Name() != tt.want || c.Type() != tt.typ {
			t.Fatalf("ColumnByPosition(%+v) = %+v, want %s %s", tt.pos, c, tt.typ, tt.want)
		}
	}
	if !f.m.ColumnByName("b").IsFrozen() || f.m.ColumnByName("a").IsFrozen() {
		t.Fatalf("frozen flags wrong")
	}
}

func TestHideKeepsColumnState(t *testing.T) {
	f := newFixture(t, threeColumns())
	b := f.m.ColumnByName("b")
	b.SetAlignment(model.AlignCenter)
	b.Hide()

	if b.IsVisible() {
		t.Fatalf("IsVisible() = true after Hide")
	}
	if got := b.Position(); got != (model.Position{Region: model.RegionBody, Value: 2}) {
		t.Fatalf("hidden position = %+v, want body 2", got)
	}
	if got := f.m.ColumnByPosition(model.Position{Region: model.RegionBody, Value: 1}); got.Name() != "c" {
		t.Fatalf("body 1 = %s, want c", got.Name())
	}

	b.Show()
	if !b.IsVisible() || b.Alignment() != model.AlignCenter {
		t.Fatalf("after Show visible=%v alignment=%v", b.IsVisible(), b.Alignment())
	}
	if got := b.Position(); got != (model.Position{Region: model.RegionBody, Value: 1}) {
		t.Fatalf("shown position = %+v, want body 1", got)
	}
}

func TestToggleSort(t *testing.T) {
	f := newFixture(t, threeColumns())
	a, b := f.m.ColumnByName("a"), f.m.ColumnByName("b")

	b.ToggleSort()
	if b.SortOrder() != model.SortAsc || a.SortOrder() != model.NoSort {
		t.Fatalf("orders = %v/%v, want ASC/NO_SORT", b.SortOrder(), a.SortOrder())
	}
	if got := rowIndexes(f.rows); !reflect.DeepEqual(got, []any{1, 2, 0}) {
		t.Fatalf("ASC rows = %v", got)
	}
	b.ToggleSort()
	if b.SortOrder() != model.SortDesc {
		t.Fatalf("SortOrder() = %v, want DESC", b.SortOrder())
	}
	if got := rowIndexes(f.rows); !reflect.DeepEqual(got, []any{0, 2, 1}) {
		t.Fatalf("DESC rows = %v", got)
	}
	if !strings.Contains(strings.Join(f.grid.calls, "\n"), "add b SortHighlighter") {
		t.Fatalf("calls = %v, want sort highlighter on b", f.grid.calls)
	}

	f.m.ResetSorting()
	if b.SortOrder() != model.NoSort {
		t.Fatalf("SortOrder() after reset = %v", b.SortOrder())
	}
	if got := rowIndexes(f.rows); !reflect.DeepEqual(got, []any{0, 1, 2}) {
		t.Fatalf("reset rows = %v", got)
	}
}

func TestApplyFilter(t *testing.T) {
	f := newFixture(t, threeColumns())
	b := f.m.ColumnByName("b")
	b.ApplyFilter(row.FilterExpressionFor(row.VarName("b"), "$ > 1"))
	if got := rowIndexes(f.rows); !reflect.DeepEqual(got, []any{0, 2}) {
		t.Fatalf("filtered rows = %v", got)
	}
	f.m.ResetFilters()
	if b.Filter() != "" || f.rows.RowCount() != 3 {
		t.Fatalf("after ResetFilters filter=%q rows=%d", b.Filter(), f.rows.RowCount())
	}
}

func TestDataTypePrecision(t *testing.T) {
	f := newFixture(t, threeColumns())
	b := f.m.ColumnByName("b")
	b.SetDisplayType(datatype.PrecisionDisplay(3))
	if got := b.Format(1.5, 0); got != "1.500" {
		t.Fatalf("Format() = %q, want 1.500", got)
	}
	f.m.SetColumnsDataTypePrecision(1)
	if b.DisplayType() != "4.1" {
		t.Fatalf("DisplayType() = %q, want 4.1", b.DisplayType())
	}
	if a := f.m.ColumnByName("a"); a.DisplayType() != datatype.DisplayOf(datatype.String) {
		t.Fatalf("string column display type = %q", a.DisplayType())
	}
}

func TestToggleDataBarsRenderer(t *testing.T) {
	f := newFixture(t, threeColumns())
	b := f.m.ColumnByName("b")
	on, off := true, false

	steps := []struct {
		enable *bool
		want   bool
	}{
		{nil, true},
		{nil, false},
		{&on, true},
		{&on, false},
		{&off, false},
	}
	for i, s := range steps {
		b.ToggleDataBarsRenderer(s.enable)
		r := b.Renderer()
		got := r != nil && r.Type == model.DataBarsRenderer
		if got != s.want {
			t.Fatalf("step %d: data bars = %v, want %v", i, got, s.want)
		}
	}
}

func TestWriteToMissingColumnIsDropped(t *testing.T) {
	f := newFixture(t, threeColumns())
	ghost := &Column{name: "ghost", index: 9, typ: model.BodyColumn, m: f.m}
	before := f.store.Snapshot()
	ghost.SetAlignment(model.AlignRight)
	if !reflect.DeepEqual(f.store.Snapshot(), before) {
		t.Fatalf("state changed by write to missing column")
	}
	if !strings.Contains(f.logs.String(), "column write dropped") {
		t.Fatalf("log = %q, want dropped write", f.logs.String())
	}
}

func headerCell(column int) *cell.Data {
	return &cell.Data{Region: model.RegionColumnHeader, Type: model.BodyColumn, Column: column, Width: 20, Offset: 10 + 20*column}
}

func TestDropWithoutTargetIsNoop(t *testing.T) {
	f := newFixture(t, threeColumns())
	dispatched := 0
	unsubscribe := f.store.Subscribe(func(state.Action) { dispatched++ })
	defer unsubscribe()

	p := f.m.Position()
	p.StartDragging(headerCell(0))
	if !p.IsDragging() {
		t.Fatalf("IsDragging() = false after StartDragging")
	}
	p.DropColumn()
	if p.IsDragging() || p.GrabbedCell() != nil || p.DropCell() != nil {
		t.Fatalf("drag state not reset")
	}
	if dispatched != 0 {
		t.Fatalf("dispatched = %d, want 0", dispatched)
	}
	if f.clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", f.clock.Pending())
	}
	p.StopDragging()
}

func TestDragDelayShowsHeader(t *testing.T) {
	f := newFixture(t, threeColumns())
	p := f.m.Position()
	p.StartDragging(headerCell(1))

	f.clock.Advance(DragStartDelay - time.Millisecond)
	if p.Header().Visible {
		t.Fatalf("header visible before delay")
	}
	f.clock.Advance(time.Millisecond)
	h := p.Header()
	if !h.Visible || h.Column.Name() != "b" || h.Width != 19 || h.Height != 4 {
		t.Fatalf("header = %+v", h)
	}
	p.MoveDraggedHeader(50, 3)
	if h := p.Header(); h.X != 50 || h.Y != 3 {
		t.Fatalf("header at %d,%d, want 50,3", h.X, h.Y)
	}
	p.StopDragging()
	if p.Header().Visible {
		t.Fatalf("header visible after StopDragging")
	}
}

func TestDropColumnMovesColumn(t *testing.T) {
	f := newFixture(t, threeColumns())
	p := f.m.Position()
	p.StartDragging(headerCell(0))
	p.HandleCellHovered(&cell.Data{Region: model.RegionColumnHeader, Type: model.BodyColumn, Column: 2, Delta: 15, Width: 20}, 65, 1)
	if d := p.DropCell(); d == nil || d.Column != 2 {
		t.Fatalf("DropCell() = %+v, want column 2", d)
	}
	p.DropColumn()

	got := []string{}
	for i := 0; i < 3; i++ {
		got = append(got, f.m.ColumnByPosition(model.Position{Region: model.RegionBody, Value: i}).Name())
	}
	if !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("order = %v, want [b c a]", got)
	}
	if p.IsDragging() {
		t.Fatalf("IsDragging() = true after drop")
	}
}

func TestHoverSnapsToNeighbour(t *testing.T) {
	f := newFixture(t, threeColumns())
	neighbour := &cell.Data{Region: model.RegionColumnHeader, Type: model.BodyColumn, Column: 1}
	f.grid.cells[[2]int{30 - 5 - 1, 1}] = neighbour

	p := f.m.Position()
	p.StartDragging(headerCell(0))
	// Moving right over the left half of column 2 snaps back to column 1.
	p.HandleCellHovered(&cell.Data{Region: model.RegionColumnHeader, Type: model.BodyColumn, Column: 2, Delta: 5, Width: 20}, 30, 1)
	if d := p.DropCell(); d == nil || d.Column != 1 {
		t.Fatalf("DropCell() = %+v, want column 1", d)
	}

	p.HandleCellHovered(&cell.Data{Region: model.RegionRowHeader, Type: model.IndexColumn}, 2, 1)
	if d := p.DropCell(); d == nil || d.Column != 1 {
		t.Fatalf("hover over another column type changed DropCell() to %+v", d)
	}
	p.StopDragging()
}
