package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/logging"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/theme"
)

func TestAlignText(t *testing.T) {
	tests := []struct {
		text  string
		w     int
		align model.Alignment
		want  string
	}{
		{"ab", 6, model.AlignLeft, " ab   "},
		{"ab", 6, model.AlignRight, "   ab "},
		{"ab", 6, model.AlignCenter, "  ab  "},
		{"abcdef", 5, model.AlignLeft, " ab… "},
		{"abc", 2, model.AlignLeft, "ab"},
	}
	for _, tt := range tests {
		if got := alignText(tt.text, tt.w, tt.align); got != tt.want {
			t.Fatalf("alignText(%q, %d) = %q, want %q", tt.text, tt.w, got, tt.want)
		}
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		percent float64
		w       int
		want    int
	}{
		{0, 10, 0},
		{-1, 10, 0},
		{0.5, 10, 4},
		{1, 10, 8},
		{2, 10, 8},
		{0.01, 10, 1},
	}
	for _, tt := range tests {
		if got := barLength(tt.percent, tt.w); got != tt.want {
			t.Fatalf("barLength(%v, %d) = %d, want %d", tt.percent, tt.w, got, tt.want)
		}
	}
}

func TestPaintGridShowsHeadersAndValues(t *testing.T) {
	r := model.Record{
		ColumnNames: []any{"name", "qty"},
		Types:       []string{"string", "integer"},
		Values:      [][]any{{"apple", 3}, {"pear", 7}},
	}
	g, h, err := NewGrid(r, theme.Light(), logging.Discard(), clock.NewFake(time.Unix(0, 0)))
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}
	h.SetArea(60, 10)
	c := paintGrid(g, h, 60, 10)

	header := c.plain(g.HeaderHeight() - 1)
	for _, want := range []string{"name", "qty"} {
		if !strings.Contains(header, want) {
			t.Fatalf("header line %q missing %q", header, want)
		}
	}
	body := c.plain(g.HeaderHeight()) + "\n" + c.plain(g.HeaderHeight()+1)
	for _, want := range []string{"apple", "pear", "3", "7"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %q missing %q", body, want)
		}
	}
}

func TestPaintTooltipStaysOnCanvas(t *testing.T) {
	c := newCanvas(20, 4, "")
	paintTooltip(c, theme.Light(), "hello", 18, 3)
	found := false
	for y := 0; y < c.height; y++ {
		if strings.Contains(c.plain(y), "hello") {
			found = true
		}
	}
	if !found {
		t.Fatalf("tooltip not drawn")
	}
}
