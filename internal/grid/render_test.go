package grid

import (
	"strings"
	"testing"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/model"
)

func TestHighlighterPanicFallsBackToDefault(t *testing.T) {
	f := newFixture(t, threeColumns())
	cfg := cell.Config{Region: model.RegionBody, Row: 1, Column: 1}
	boom := func(cell.Config) string { panic("bad highlighter") }

	for i := 0; i < 2; i++ {
		if got := f.g.highlightSafely(cfg, boom); got != "" {
			t.Fatalf("highlightSafely() = %q, want empty", got)
		}
	}
	if got := strings.Count(f.logs.String(), "highlighter failed"); got != 1 {
		t.Fatalf("warnings = %d, want 1\n%s", got, f.logs.String())
	}
	if got := f.g.highlightSafely(cfg, func(cell.Config) string { return "#123456" }); got != "#123456" {
		t.Fatalf("highlightSafely() = %q, want #123456", got)
	}
}

func TestBackgroundColorUsesRowBackground(t *testing.T) {
	g := newFixture(t, threeColumns()).g
	cfg := cell.Config{Region: model.RegionBody, Row: 1, Column: 0}
	if got, want := g.BackgroundColor(cfg), g.Palette().RowBackground(1); got != want {
		t.Fatalf("BackgroundColor() = %q, want %q", got, want)
	}
}
