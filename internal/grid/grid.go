package grid

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/highlight"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/row"
	"github.com/five82/tablegrid/internal/state"
	"github.com/five82/tablegrid/internal/surface"
	"github.com/five82/tablegrid/internal/theme"
)

const (
	RepaintInterval = 100 * time.Millisecond
	ResizeInterval  = 150 * time.Millisecond
)

// Capabilities are the host services the grid uses when it gains or
// loses focus.
type Capabilities interface {
	NotifyFocusChanged(focused bool)
	DisableGlobalShortcuts()
	EnableGlobalShortcuts()
}

// Options configures a Grid. Zero fields take defaults.
type Options struct {
	Host    Capabilities
	Surface surface.PaintSurface
	Scroll  surface.ScrollController
	// Metrics defaults to DefaultMetrics.
	Metrics Metrics
	// Measurer defaults to a pixel measurer for DefaultMetrics and a cell
	// measurer otherwise.
	Measurer Measurer
	// Theme defaults to the light palette.
	Theme  theme.Palette
	Logger *log.Logger
	Clock  clock.Clock
}

// Grid coordinates the engine components of one table.
type Grid struct {
	id       string
	host     Capabilities
	surface  surface.PaintSurface
	scroll   surface.ScrollController
	metrics  Metrics
	measurer Measurer
	palette  theme.Palette
	logger   *log.Logger
	clock    clock.Clock

	store        *state.Store
	rows         *row.Manager
	columns      *column.Manager
	highlighters *highlight.Manager
	focus        *cell.FocusManager
	selection    *cell.SelectionManager
	resizer      *Resizer
	signal       *comm.Signal

	rowHeader   *surface.Sections
	body        *surface.Sections
	rowSections *surface.Sections
	header      *surface.Sections

	queue          queue
	repaint        *Throttle
	resizeThrottle *Throttle
	unsubscribe    func()

	focused      bool
	hovered      *cell.Data
	headerResize *headerResize
	fallbacks    map[string]bool
	destroyed    bool
}

type columnSource struct{ m *column.Manager }

func (s *columnSource) FilterColumns() []row.Column {
	if s.m == nil {
		return nil
	}
	return s.m.FilterColumns()
}

// New builds a grid over record. It fails with state.ErrEmptyModel when
// the record holds no columns and no values.
func New(record model.Record, opts Options) (*Grid, error) {
	store, err := state.NewStore(record)
	if err != nil {
		return nil, fmt.Errorf("create grid: %w", err)
	}

	g := &Grid{
		id:       uuid.NewString(),
		host:     opts.Host,
		surface:  opts.Surface,
		scroll:   opts.Scroll,
		metrics:  opts.Metrics,
		measurer: opts.Measurer,
		palette:  opts.Theme,
		logger:   opts.Logger,
		clock:    opts.Clock,
		store:    store,
		signal:   &comm.Signal{},

		fallbacks: make(map[string]bool),
	}
	if g.host == nil {
		g.host = noCapabilities{}
	}
	if g.surface == nil {
		g.surface = noSurface{}
	}
	if g.scroll == nil {
		g.scroll = &fixedScroll{g: g}
	}
	if g.metrics == (Metrics{}) {
		g.metrics = DefaultMetrics()
		if g.measurer == nil {
			g.measurer = pixelMeasurer()
		}
	}
	if g.measurer == nil {
		g.measurer = CellMeasurer()
	}
	if g.palette.Name == "" {
		g.palette = theme.Light()
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.clock == nil {
		g.clock = clock.Real{}
	}

	g.rowHeader = surface.NewSections(1, g.metrics.MinColumnWidth)
	g.body = surface.NewSections(0, g.metrics.MinColumnWidth)
	g.rowSections = surface.NewSections(0, g.metrics.DefaultRowHeight)
	g.header = surface.NewSections(1, g.metrics.DefaultRowHeight)

	st := store.Current()
	src := &columnSource{}
	g.rows = row.New(src, st.RowsToShow(), row.Options{
		Logger:       g.logger,
		OnRowsToShow: g.onRowsToShow,
	})
	g.createRows()
	g.columns = column.New(store, g.rows, column.Options{Grid: g, Clock: g.clock, Logger: g.logger})
	src.m = g.columns
	g.columns.AddColumns()

	g.focus = cell.NewFocusManager(g)
	g.selection = cell.NewSelectionManager(g, g.focus)
	g.resizer = newResizer(g)

	g.repaint = NewThrottle(g.clock, RepaintInterval, g.queue.post, g.surface.RepaintBody)
	g.resizeThrottle = NewThrottle(g.clock, ResizeInterval, g.queue.post, g.resizer.Resize)
	g.unsubscribe = store.Subscribe(func(state.Action) { g.repaint.Call() })

	g.syncSections()
	g.resizer.SetInitialSize()
	g.highlighters = highlight.New(store, g.columns, g.rows, highlight.Options{Palette: g.palette, Logger: g.logger})
	g.highlighters.CreateHighlighters()

	g.logger.Info("grid ready", "id", g.id, "rows", g.rows.RowCount(), "columns", len(g.columns.BodyColumns()))
	return g, nil
}

func (g *Grid) createRows() {
	st := g.store.Current()
	g.rows.CreateRows(st.Values(), st.FontColor(), st.HasIndex(), "")
}

func (g *Grid) onRowsToShow() {
	if g.resizer != nil {
		g.resizer.UpdateWidgetHeight()
	}
}

// ID identifies the grid instance.
func (g *Grid) ID() string { return g.id }

// Signal carries the grid's outbound messages.
func (g *Grid) Signal() *comm.Signal { return g.signal }

func (g *Grid) Store() *state.Store                           { return g.store }
func (g *Grid) Rows() *row.Manager                            { return g.rows }
func (g *Grid) Columns() *column.Manager                      { return g.columns }
func (g *Grid) Position() *column.Position                    { return g.columns.Position() }
func (g *Grid) Highlighters() *highlight.Manager              { return g.highlighters }
func (g *Grid) Focus() *cell.FocusManager                     { return g.focus }
func (g *Grid) Selection() *cell.SelectionManager             { return g.selection }
func (g *Grid) Resizer() *Resizer                             { return g.resizer }
func (g *Grid) Metrics() Metrics                              { return g.metrics }
func (g *Grid) Palette() theme.Palette                        { return g.palette }
func (g *Grid) Scroll() surface.ScrollController              { return g.scroll }
func (g *Grid) Logger() *log.Logger                           { return g.logger }
func (g *Grid) IsFocused() bool                               { return g.focused }
func (g *Grid) HoveredCell() *cell.Data                       { return copyData(g.hovered) }
func (g *Grid) IsResizing() bool                              { return g.resizer.IsResizing() }
func (g *Grid) RowHeaderSections() surface.SectionGeometry    { return g.rowHeader }
func (g *Grid) ColumnSections() surface.SectionGeometry       { return g.body }
func (g *Grid) RowSections() surface.SectionGeometry          { return g.rowSections }
func (g *Grid) ColumnHeaderSections() surface.SectionGeometry { return g.header }

func (g *Grid) HeaderWidth() int  { return g.rowHeader.Length() }
func (g *Grid) HeaderHeight() int { return g.header.Length() }
func (g *Grid) BodyWidth() int    { return g.body.Length() }
func (g *Grid) BodyHeight() int   { return g.rowSections.Length() }
func (g *Grid) TotalWidth() int   { return g.HeaderWidth() + g.BodyWidth() }
func (g *Grid) TotalHeight() int  { return g.HeaderHeight() + g.BodyHeight() }
func (g *Grid) ScrollX() int      { return g.scroll.ScrollX() }
func (g *Grid) ScrollY() int      { return g.scroll.ScrollY() }

// SetPalette switches the theme and rebuilds the highlighters, whose
// colors depend on it.
func (g *Grid) SetPalette(p theme.Palette) {
	g.palette = p
	g.highlighters.SetPalette(p)
	g.highlighters.CreateHighlighters()
	g.RepaintBody()
}

// Flush runs the calls deferred by the grid's throttles and reports
// whether any ran. Hosts call it from their own loop.
func (g *Grid) Flush() bool {
	return g.queue.drain() > 0
}

// FrozenCount is the number of visible frozen body columns.
func (g *Grid) FrozenCount() int {
	return g.store.Current().VisibleColumnsFrozenCount()
}

// VisibleBodyColumnCount counts the visible body columns, frozen included.
func (g *Grid) VisibleBodyColumnCount() int {
	n := 0
	for _, c := range g.columns.BodyColumns() {
		if c.IsVisible() {
			n++
		}
	}
	return n
}

func (g *Grid) RowCount() int   { return g.rows.RowCount() }
func (g *Grid) RowsToShow() int { return g.rows.RowsToShow() }

// RowHeaderColumnCount counts the row-header columns, the index column
// included.
func (g *Grid) RowHeaderColumnCount() int { return g.rowHeader.Count() }

// CellAt returns the cell under (x, y), or nil.
func (g *Grid) CellAt(x, y int) *cell.Data {
	return cell.Locate(g, x, y)
}

// Column returns the column rendered by a cell in region.
func (g *Grid) Column(region model.Region, col int) *column.Column {
	return g.columns.ColumnByCell(region, col)
}

// Value returns the raw value at a cell: the column name for headers and
// the row index for the index column.
func (g *Grid) Value(region model.Region, r, col int) any {
	st := g.store.Current()
	columnRegion := model.RegionBody
	if region.IsRowHeader() {
		columnRegion = model.RegionRowHeader
	}
	index, ok := st.ColumnIndexByPosition(model.Position{Region: columnRegion, Value: col})

	switch {
	case region == model.RegionRowHeader && col == 0:
		if rr := g.rows.Row(r); rr != nil {
			return rr.Index
		}
		return r
	case region == model.RegionColumnHeader || (region == model.RegionCornerHeader && col > 0):
		return nameAt(g.columns.BodyColumnNames(), index, ok)
	case region == model.RegionCornerHeader:
		return nameAt(g.columns.IndexColumnNames(), index, ok)
	}
	if !ok {
		return ""
	}
	return g.rows.ValueByColumn(r, index, model.BodyColumn)
}

func nameAt(names []string, i int, ok bool) string {
	if !ok || i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

// CellConfig describes the cell at (region, row, col) for painting.
func (g *Grid) CellConfig(region model.Region, r, col int) cell.Config {
	cfg := cell.Config{Region: region, Row: r, Column: col, Value: g.Value(region, r, col)}
	sections := g.body
	if region.IsRowHeader() {
		sections = g.rowHeader
	}
	cfg.X = cell.ColumnOffset(g, col, region)
	cfg.Width = sections.SizeOf(col)
	if region.IsHeader() {
		cfg.Height = g.header.SizeOf(0)
		return cfg
	}
	cfg.Y = g.HeaderHeight() + g.rowSections.OffsetOf(r)
	cfg.Height = g.rowSections.SizeOf(r)
	return cfg
}

// syncSections matches the section counts to the visible columns and the
// filtered rows.
func (g *Grid) syncSections() {
	frozen, body := 0, 0
	for _, c := range g.columns.BodyColumns() {
		switch {
		case !c.IsVisible():
		case c.IsFrozen():
			frozen++
		default:
			body++
		}
	}
	g.rowHeader.SetCount(1 + frozen)
	g.body.SetCount(body)
	g.rowSections.SetCount(g.rows.RowCount())
}

func (g *Grid) AddColumnHighlighter(c *column.Column, t model.HighlighterType) {
	if g.highlighters != nil {
		g.highlighters.AddColumnHighlighter(c, t)
	}
}

func (g *Grid) RemoveColumnHighlighter(c *column.Column, t model.HighlighterType) {
	if g.highlighters != nil {
		g.highlighters.RemoveColumnHighlighter(c, t)
	}
}

func (g *Grid) ToggleColumnHighlighter(c *column.Column, t model.HighlighterType) {
	if g.highlighters != nil {
		g.highlighters.ToggleColumnHighlighter(c, t)
	}
}

func (g *Grid) RemoveHighlighters(c *column.Column) {
	if g.highlighters != nil {
		g.highlighters.RemoveHighlighters(c)
	}
}

func (g *Grid) RestoreHighlighters(c *column.Column) {
	if g.highlighters != nil {
		g.highlighters.RestoreHighlighters(c)
	}
}

func (g *Grid) SetInitialSectionWidth(c *column.Column) { g.resizer.SetInitialSectionWidth(c) }
func (g *Grid) UpdateWidgetWidth()                      { g.resizer.UpdateWidgetWidth() }

// Resize refits section counts at once and the section sizes and widget
// at most once per ResizeInterval.
func (g *Grid) Resize() {
	g.syncSections()
	if g.resizeThrottle != nil {
		g.resizeThrottle.Call()
	}
}

// ResetModel refreshes section counts after rows or columns changed.
func (g *Grid) ResetModel() {
	g.syncSections()
	g.surface.RepaintBody()
}

func (g *Grid) RepaintBody() { g.surface.RepaintBody() }

// UpdateModelData replaces the model record and rebuilds the grid from
// it.
func (g *Grid) UpdateModelData(record model.Record) error {
	if record.Empty() {
		return fmt.Errorf("update model data: %w", state.ErrEmptyModel)
	}
	g.columns.ResetColumnStates()
	if err := g.store.Dispatch(state.UpdateModelData{Data: record}); err != nil {
		return fmt.Errorf("update model data: %w", err)
	}
	g.columns.AddColumns()
	g.createRows()
	g.rows.SetRowsToShow(g.store.Current().RowsToShow())
	g.focus.SetFocusedCell(nil)
	g.selection.Clear()
	g.ResetModel()
	g.columns.RecalculateMinMaxValues()
	g.resizer.SetInitialSize()
	g.highlighters.CreateHighlighters()
	return nil
}

// UpdateModelValues patches values and font colors. Columns, filters and
// the sort are kept.
func (g *Grid) UpdateModelValues(record model.Record) error {
	if err := g.store.Dispatch(state.UpdateModelValues{
		Values:         record.Values,
		FilteredValues: record.FilteredValues,
		TooManyRows:    record.TooManyRows,
	}); err != nil {
		return fmt.Errorf("update model values: %w", err)
	}
	if err := g.store.Dispatch(state.UpdateModelFontColor{FontColor: record.FontColor}); err != nil {
		return fmt.Errorf("update model values: %w", err)
	}
	g.createRows()
	g.rows.FilterRows()
	g.rows.KeepSorting()
	g.columns.RestoreColumnStates()
	g.ResetModel()
	g.columns.RecalculateMinMaxValues()
	g.resizer.SetInitialSize()
	return nil
}

// SetHeadersVertical switches rotated header text on or off.
func (g *Grid) SetHeadersVertical(vertical bool) {
	if err := g.store.Dispatch(state.UpdateHeadersVertical{Vertical: vertical}); err != nil {
		g.logger.Warn("headers not updated", "error", err)
		return
	}
	g.resizer.SetInitialSize()
	g.ResetModel()
}

// SetFocus records keyboard focus and tells the host. Losing focus clears
// the hovered cell.
func (g *Grid) SetFocus(focused bool) {
	g.focused = focused
	g.host.NotifyFocusChanged(focused)
	if focused {
		g.host.DisableGlobalShortcuts()
		return
	}
	g.hovered = nil
	g.host.EnableGlobalShortcuts()
	g.RepaintBody()
}

// Destroy tears the grid down. Later calls do nothing.
func (g *Grid) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	g.unsubscribe()
	g.repaint.Stop()
	g.resizeThrottle.Stop()
	g.queue.clear()
	g.resizer.StopResizing()
	g.columns.Destroy()
	g.highlighters.Destroy()
	g.focus.SetFocusedCell(nil)
	g.selection.SetStartCell(nil)
	g.selection.SetEndCell(nil)
	g.rows.Destroy()
	g.signal.DisconnectAll()
	g.hovered = nil
	g.logger.Debug("grid destroyed", "id", g.id)
}

// Destroyed reports whether Destroy ran.
func (g *Grid) Destroyed() bool { return g.destroyed }

func copyData(d *cell.Data) *cell.Data {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

type noCapabilities struct{}

func (noCapabilities) NotifyFocusChanged(bool) {}
func (noCapabilities) DisableGlobalShortcuts() {}
func (noCapabilities) EnableGlobalShortcuts()  {}

type noSurface struct{}

func (noSurface) RepaintBody()               {}
func (noSurface) RepaintRegion(model.Region) {}

// fixedScroll is an unscrolled viewport the size of the widget.
type fixedScroll struct {
	g    *Grid
	x, y int
}

func (s *fixedScroll) ScrollTo(x, y int) {
	s.x = max(0, min(x, s.g.BodyWidth()-s.PageWidth()))
	s.y = max(0, min(y, s.g.BodyHeight()-s.PageHeight()))
}

func (s *fixedScroll) ScrollX() int { return s.x }
func (s *fixedScroll) ScrollY() int { return s.y }

func (s *fixedScroll) PageWidth() int {
	return max(0, s.g.resizer.ViewportWidth()-s.g.HeaderWidth())
}

func (s *fixedScroll) PageHeight() int {
	return max(0, s.g.resizer.ViewportHeight()-s.g.HeaderHeight())
}
