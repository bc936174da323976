package ui

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/grid"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/surface"
	"github.com/five82/tablegrid/internal/theme"
)

// Host adapts the terminal to the grid engine. It is the grid's paint
// surface, its scroll viewport and its host capabilities.
//
// RepaintBody may be called from timer goroutines, so it only raises a
// flag that the program loop consumes.
type Host struct {
	g *grid.Grid

	dirty atomic.Bool

	// area is the screen space available to the grid.
	areaWidth, areaHeight int
	x, y                  int

	focused         bool
	shortcutsActive bool

	mu      sync.Mutex
	pending []func()
}

var (
	_ surface.PaintSurface     = (*Host)(nil)
	_ surface.ScrollController = (*Host)(nil)
	_ grid.Capabilities        = (*Host)(nil)
)

// NewHost returns a host with global shortcuts active. Attach the grid
// once it is built.
func NewHost() *Host {
	return &Host{shortcutsActive: true}
}

// NewGrid builds a grid measured in terminal cells and attaches it to a
// new host.
func NewGrid(record model.Record, palette theme.Palette, logger *log.Logger, clk clock.Clock) (*grid.Grid, *Host, error) {
	h := NewHost()
	g, err := grid.New(record, grid.Options{
		Host:     h,
		Surface:  h,
		Scroll:   h,
		Metrics:  grid.TerminalMetrics(),
		Measurer: grid.CellMeasurer(),
		Theme:    palette,
		Logger:   logger,
		Clock:    clk,
	})
	if err != nil {
		return nil, nil, err
	}
	h.Attach(g)
	return g, h, nil
}

// Attach binds the grid whose sizes bound the scroll viewport.
func (h *Host) Attach(g *grid.Grid) { h.g = g }

// SetArea sets the screen space available to the grid and re-clamps the
// scroll position.
func (h *Host) SetArea(width, height int) {
	h.areaWidth, h.areaHeight = max(0, width), max(0, height)
	h.ScrollTo(h.x, h.y)
}

func (h *Host) RepaintBody() { h.dirty.Store(true) }

func (h *Host) RepaintRegion(model.Region) { h.dirty.Store(true) }

// TakeDirty reports whether a repaint was requested since the last call.
func (h *Host) TakeDirty() bool { return h.dirty.Swap(false) }

func (h *Host) ScrollTo(x, y int) {
	maxX, maxY := 0, 0
	if h.g != nil {
		maxX = h.g.BodyWidth() - h.PageWidth()
		maxY = h.g.BodyHeight() - h.PageHeight()
	}
	h.x = max(0, min(x, maxX))
	h.y = max(0, min(y, maxY))
	h.dirty.Store(true)
}

func (h *Host) ScrollX() int { return h.x }
func (h *Host) ScrollY() int { return h.y }

// VisibleWidth is the width of the drawn grid: the widget width bounded by
// the screen.
func (h *Host) VisibleWidth() int {
	if h.g == nil {
		return 0
	}
	return min(h.areaWidth, h.g.Resizer().ViewportWidth())
}

func (h *Host) VisibleHeight() int {
	if h.g == nil {
		return 0
	}
	return min(h.areaHeight, h.g.Resizer().ViewportHeight())
}

func (h *Host) PageWidth() int {
	if h.g == nil {
		return 0
	}
	return max(0, h.VisibleWidth()-h.g.HeaderWidth())
}

func (h *Host) PageHeight() int {
	if h.g == nil {
		return 0
	}
	return max(0, h.VisibleHeight()-h.g.HeaderHeight())
}

func (h *Host) NotifyFocusChanged(focused bool) {
	h.focused = focused
	h.dirty.Store(true)
}

// DisableGlobalShortcuts hands the single-key cell shortcuts to the grid.
func (h *Host) DisableGlobalShortcuts() { h.shortcutsActive = false }

func (h *Host) EnableGlobalShortcuts() { h.shortcutsActive = true }

// Focused reports the focus last announced by the grid.
func (h *Host) Focused() bool { return h.focused }

// ShortcutsActive reports whether the host owns the single-key shortcuts.
func (h *Host) ShortcutsActive() bool { return h.shortcutsActive }

// Post queues fn for the program loop. Debounced callbacks use it to stay
// off their timer goroutines.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.pending = append(h.pending, fn)
	h.mu.Unlock()
}

// Drain runs the posted calls and reports whether any ran.
func (h *Host) Drain() bool {
	h.mu.Lock()
	calls := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, fn := range calls {
		fn()
	}
	return len(calls) > 0
}
