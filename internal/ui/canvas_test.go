package ui

import "testing"

func TestCanvasPut(t *testing.T) {
	c := newCanvas(6, 2, "#ffffff")
	if n := c.put(1, 0, "ab", "#000000", "", false); n != 2 {
		t.Fatalf("put advanced %d, want 2", n)
	}
	if got := c.plain(0); got != " ab   " {
		t.Fatalf("line 0 = %q, want %q", got, " ab   ")
	}
	if got := c.cells[0][1].bg; got != "#ffffff" {
		t.Fatalf("bg = %q, want the existing background", got)
	}
}

func TestCanvasClip(t *testing.T) {
	c := newCanvas(6, 3, "")
	c.clipLeft, c.clipRight, c.clipTop = 2, 4, 1
	c.put(0, 0, "xxxxxx", "", "", false)
	c.put(0, 1, "abcdef", "", "", false)
	if got := c.plain(0); got != "      " {
		t.Fatalf("line above clip = %q, want blank", got)
	}
	if got := c.plain(1); got != "  cd  " {
		t.Fatalf("clipped line = %q, want %q", got, "  cd  ")
	}
	c.resetClip()
	c.fill(0, 2, 6, "#000000")
	if got := c.cells[2][5].bg; got != "#000000" {
		t.Fatalf("fill bg = %q, want #000000", got)
	}
}

func TestCanvasWideRune(t *testing.T) {
	c := newCanvas(4, 1, "")
	if n := c.put(0, 0, "日x", "", "", false); n != 3 {
		t.Fatalf("put advanced %d, want 3", n)
	}
	if got := c.plain(0); got != "日x " {
		t.Fatalf("line = %q, want %q", got, "日x ")
	}
	if got := c.plain(5); got != "" {
		t.Fatalf("plain(5) = %q, want empty", got)
	}
}
