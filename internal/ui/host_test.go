package ui

import (
	"testing"
	"time"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/logging"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/theme"
)

func manyRows(n int) model.Record {
	values := make([][]any, n)
	for i := range values {
		values[i] = []any{float64(i), "row"}
	}
	return model.Record{
		ColumnNames: []any{"n", "s"},
		Types:       []string{"double", "string"},
		Values:      values,
	}
}

func TestHostScrollClamps(t *testing.T) {
	g, h, err := NewGrid(manyRows(100), theme.Light(), logging.Discard(), clock.NewFake(time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	h.SetArea(200, 10)

	h.ScrollTo(-5, -5)
	if h.ScrollX() != 0 || h.ScrollY() != 0 {
		t.Fatalf("scroll = (%d, %d), want (0, 0)", h.ScrollX(), h.ScrollY())
	}
	h.ScrollTo(0, 1_000_000)
	want := g.BodyHeight() - h.PageHeight()
	if h.ScrollY() != want {
		t.Fatalf("ScrollY() = %d, want %d", h.ScrollY(), want)
	}
	if h.PageHeight() != h.VisibleHeight()-g.HeaderHeight() {
		t.Fatalf("PageHeight() = %d, want visible minus header", h.PageHeight())
	}
}

func TestHostPostDrain(t *testing.T) {
	h := NewHost()
	if h.Drain() {
		t.Fatalf("Drain() on empty queue = true, want false")
	}
	var ran []int
	h.Post(func() { ran = append(ran, 1) })
	h.Post(func() { ran = append(ran, 2) })
	if !h.Drain() {
		t.Fatalf("Drain() = false, want true")
	}
	if len(ran) != 2 || ran[0] != 1 || ran[1] != 2 {
		t.Fatalf("ran = %v, want [1 2]", ran)
	}
}

func TestHostDirty(t *testing.T) {
	h := NewHost()
	h.RepaintBody()
	if !h.TakeDirty() {
		t.Fatalf("TakeDirty() = false after RepaintBody")
	}
	if h.TakeDirty() {
		t.Fatalf("TakeDirty() = true twice")
	}
}

func TestHostShortcuts(t *testing.T) {
	h := NewHost()
	if !h.ShortcutsActive() {
		t.Fatalf("new host shortcuts inactive")
	}
	h.DisableGlobalShortcuts()
	h.NotifyFocusChanged(true)
	if h.ShortcutsActive() || !h.Focused() {
		t.Fatalf("shortcuts = %v, focused = %v, want false, true", h.ShortcutsActive(), h.Focused())
	}
}
