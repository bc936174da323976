package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/grid"
	"github.com/five82/tablegrid/internal/logging"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/prefs"
	"github.com/five82/tablegrid/internal/theme"
)

type harness struct {
	m         Model
	g         *grid.Grid
	h         *Host
	clock     *clock.Fake
	prefsPath string
	copied    []string
}

func fruits() model.Record {
	return model.Record{
		ColumnNames: []any{"name", "qty"},
		Types:       []string{"string", "double"},
		Values: [][]any{
			{"apple", 3.0},
			{"pear", 1.0},
			{"plum", 2.0},
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clk := clock.NewFake(time.Unix(0, 0))
	g, h, err := NewGrid(fruits(), theme.Light(), logging.Discard(), clk)
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	hs := &harness{g: g, h: h, clock: clk, prefsPath: filepath.Join(t.TempDir(), "prefs.toml")}
	hs.m = New(Options{
		Grid:      g,
		Host:      h,
		Prefs:     prefs.Default(),
		PrefsPath: hs.prefsPath,
		Clock:     clk,
		Logger:    logging.Discard(),
		Title:     "fruits",
	})
	hs.m.copyFn = func(s string) error {
		hs.copied = append(hs.copied, s)
		return nil
	}
	hs.send(tea.WindowSizeMsg{Width: 80, Height: 20})
	return hs
}

func (hs *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := hs.m.Update(msg)
	hs.m = next.(Model)
	return cmd
}

func (hs *harness) keys(keys ...string) {
	for _, k := range keys {
		hs.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestFirstArrowFocusesFirstCell(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down")
	focused := hs.g.Focus().FocusedCell()
	if focused == nil {
		t.Fatalf("no focused cell after first arrow")
	}
	if focused.Region != model.RegionBody || focused.Row != 0 || focused.Column != 0 {
		t.Fatalf("focused = %+v, want body 0,0", focused)
	}
	if !hs.g.IsFocused() || hs.h.ShortcutsActive() {
		t.Fatalf("grid focused = %v, shortcuts = %v, want true, false", hs.g.IsFocused(), hs.h.ShortcutsActive())
	}

	hs.keys("down")
	if got := hs.g.Focus().FocusedCell().Row; got != 1 {
		t.Fatalf("row after down = %d, want 1", got)
	}

	hs.keys("esc")
	if hs.g.Focus().FocusedCell() != nil || hs.g.IsFocused() {
		t.Fatalf("esc kept the focus")
	}
}

func TestSortKeys(t *testing.T) {
	hs := newHarness(t)
	col := hs.g.Columns().ColumnByName("name")

	hs.keys("down", "s")
	if got := col.SortOrder(); got != model.SortAsc {
		t.Fatalf("sort after s = %v, want ascending", got)
	}
	hs.keys("s")
	if got := col.SortOrder(); got != model.SortDesc {
		t.Fatalf("sort after s s = %v, want descending", got)
	}
	hs.keys("S")
	if got := col.SortOrder(); got != model.NoSort {
		t.Fatalf("sort after S = %v, want none", got)
	}
}

func TestColumnKeysNeedFocus(t *testing.T) {
	hs := newHarness(t)
	hs.keys("s")
	if !hs.m.statusErr || !strings.Contains(hs.m.status, "focus") {
		t.Fatalf("status = %q, want a focus hint", hs.m.status)
	}
}

func TestHideAndShowAll(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "x")
	if hs.g.Columns().ColumnByName("name").IsVisible() {
		t.Fatalf("name visible after x")
	}
	if hs.g.Focus().FocusedCell() != nil {
		t.Fatalf("focus kept on a hidden column")
	}
	hs.keys("X")
	if !hs.g.Columns().ColumnByName("name").IsVisible() {
		t.Fatalf("name hidden after X")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	hs := newHarness(t)
	hs.keys("T")
	if got := hs.g.Palette().Name; got != "Dark" {
		t.Fatalf("palette = %q, want Dark", got)
	}
	p, err := prefs.Load(hs.prefsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Theme != "Dark" {
		t.Fatalf("saved theme = %q, want Dark", p.Theme)
	}
}

func TestVerticalHeadersSavesPrefs(t *testing.T) {
	hs := newHarness(t)
	hs.keys("v")
	if !hs.g.Store().Current().HeadersVertical() {
		t.Fatalf("headers not vertical after v")
	}
	p, _ := prefs.Load(hs.prefsPath)
	if !p.HeadersVertical {
		t.Fatalf("saved headers_vertical = false, want true")
	}
}

func TestCopyFocusedCell(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "y")
	if len(hs.copied) != 1 || hs.copied[0] != "apple" {
		t.Fatalf("copied = %q, want [apple]", hs.copied)
	}
}

func TestCopyFailureShowsError(t *testing.T) {
	hs := newHarness(t)
	hs.m.copyFn = func(string) error { return errors.New("no clipboard") }
	hs.keys("down", "y")
	if !hs.m.statusErr || !strings.Contains(hs.m.status, "no clipboard") {
		t.Fatalf("status = %q, want the clipboard error", hs.m.status)
	}
}

func TestSearchIsDebounced(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "/", "l")
	if !hs.m.prompt.active() {
		t.Fatalf("prompt not active after /")
	}
	hs.send(tickMsg(time.Time{}))
	if got := hs.g.RowCount(); got != 3 {
		t.Fatalf("rows before the debounce fired = %d, want 3", got)
	}

	hs.clock.Advance(SearchDebounce)
	hs.send(tickMsg(time.Time{}))
	if got := hs.g.RowCount(); got != 2 {
		t.Fatalf("rows after search l = %d, want 2", got)
	}

	hs.keys("esc")
	if hs.m.prompt.active() {
		t.Fatalf("prompt active after esc")
	}
	if got := hs.g.RowCount(); got != 3 {
		t.Fatalf("rows after esc = %d, want 3", got)
	}
}

func TestFilterPrompt(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "right", "f", "$", " ", ">", " ", "1", "enter")
	if got := hs.g.RowCount(); got != 2 {
		t.Fatalf("rows after qty > 1 = %d, want 2", got)
	}
	if hs.m.prompt.active() {
		t.Fatalf("prompt active after enter")
	}
	if got := filterText(hs.g.Columns().ColumnByName("qty")); got != "$ > 1" {
		t.Fatalf("filterText() = %q, want %q", got, "$ > 1")
	}
}

func TestFormatAndAlignmentKeys(t *testing.T) {
	hs := newHarness(t)
	qty := hs.g.Columns().ColumnByName("qty")
	hs.keys("down", "right", "d")
	if got, want := qty.DisplayType(), datatype.PrecisionDisplay(datatype.DefaultPrecision); got != want {
		t.Fatalf("DisplayType() after d = %q, want %q", got, want)
	}
	hs.keys("d")
	if got, want := qty.DisplayType(), datatype.DisplayOf(datatype.Exponential5); got != want {
		t.Fatalf("DisplayType() after d d = %q, want %q", got, want)
	}

	initial := qty.Alignment()
	hs.keys("a")
	if qty.Alignment() == initial {
		t.Fatalf("Alignment() unchanged after a: %q", initial)
	}
	hs.keys("A")
	if got := qty.Alignment(); got != initial {
		t.Fatalf("Alignment() after A = %q, want %q", got, initial)
	}
}

func TestClearFiltersAndResetOrderKeys(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "right", "f", "$", " ", ">", " ", "1", "enter")
	if got := hs.g.RowCount(); got != 2 {
		t.Fatalf("rows after filter = %d, want 2", got)
	}
	hs.keys("R")
	if got := hs.g.RowCount(); got != 3 {
		t.Fatalf("rows after R = %d, want 3", got)
	}

	qty := hs.g.Columns().ColumnByName("qty")
	hs.keys("<")
	if got := qty.Position().Value; got != 0 {
		t.Fatalf("qty position after < = %d, want 0", got)
	}
	hs.keys("P")
	if got := qty.Position().Value; got != 1 {
		t.Fatalf("qty position after P = %d, want 1", got)
	}
}

func TestMenuCopy(t *testing.T) {
	hs := newHarness(t)
	hs.keys("down", "m")
	if _, ok := hs.m.modal.(*menuModal); !ok {
		t.Fatalf("modal = %T, want the cell menu", hs.m.modal)
	}
	cmd := hs.send(keyMsg("enter"))
	if hs.m.modal != nil {
		t.Fatalf("menu open after enter")
	}
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	hs.send(cmd())
	if len(hs.copied) != 1 || hs.copied[0] != "apple" {
		t.Fatalf("copied = %q, want [apple]", hs.copied)
	}
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	hs := newHarness(t)
	hs.keys("?")
	if hs.m.modal == nil {
		t.Fatalf("help not open")
	}
	if !strings.Contains(hs.m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	hs.keys("z")
	if hs.m.modal != nil {
		t.Fatalf("help still open")
	}
}

func TestUpdateMsgReplacesRecord(t *testing.T) {
	hs := newHarness(t)
	r := fruits()
	r.Values = append(r.Values, []any{"fig", 9.0})
	hs.send(UpdateMsg{Record: r})
	if got := hs.g.RowCount(); got != 4 {
		t.Fatalf("rows = %d, want 4", got)
	}
	if !strings.Contains(hs.m.View(), "4 of 4 rows") {
		t.Fatalf("title does not show the new count")
	}
}

func TestViewShowsGrid(t *testing.T) {
	hs := newHarness(t)
	view := hs.m.View()
	for _, want := range []string{"tablegrid", "fruits", "apple", "qty"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestCellShortcutsOnlyWhileFocused(t *testing.T) {
	hs := newHarness(t)
	col := hs.g.Columns().ColumnByName("qty")
	hs.keys("b")
	if col.Renderer() != nil {
		t.Fatalf("data bars toggled without focus")
	}
	hs.keys("down", "right", "b")
	if col.Renderer() == nil {
		t.Fatalf("data bars not toggled on the focused column")
	}
}
