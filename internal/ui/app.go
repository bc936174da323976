package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/clock"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/export"
	"github.com/five82/tablegrid/internal/grid"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Grid      *grid.Grid
	Host      *Host
	Prefs     prefs.Prefs
	PrefsPath string
	// LogPath is shown in the log overlay. Empty disables it.
	LogPath string
	// Title names the data source in the title bar.
	Title  string
	Clock  clock.Clock
	Logger *log.Logger
	// Feed runs on its own goroutine and delivers messages such as
	// UpdateMsg to the program.
	Feed func(ctx context.Context, send func(tea.Msg))
}

// UpdateMsg carries a new model record to the grid. Patch keeps columns,
// filters and the sort.
type UpdateMsg struct {
	Record model.Record
	Patch  bool
}

// StatusMsg shows a line in the status bar.
type StatusMsg struct {
	Text string
	Err  bool
}

// click is a primary button press remembered for double click detection.
type click struct {
	data *cell.Data
	at   time.Time
}

// events records the comm messages the grid emits.
type events struct {
	count int
	last  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	grid      *grid.Grid
	host      *Host
	clock     clock.Clock
	logger    *log.Logger
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	title     string

	keys   keyMap
	help   help.Model
	styles Styles
	frame  *frame
	events *events
	copyFn func(string) error

	width  int
	height int
	ready  bool

	modal  Modal
	prompt prompt

	status    string
	statusErr bool

	pointerX, pointerY int
	inside             bool
	lastClick          *click
	lastLogRefresh     time.Time
}

// frame caches the painted grid between repaints.
type frame struct {
	text          string
	width, height int
	valid         bool
}

// New creates a new Bubble Tea model over an attached grid.
func New(opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Host == nil {
		opts.Host = NewHost()
	}
	opts.Host.Attach(opts.Grid)

	m := Model{
		grid:      opts.Grid,
		host:      opts.Host,
		clock:     clk,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		title:     opts.Title,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(opts.Grid.Palette()),
		frame:     &frame{},
		events:    &events{},
		copyFn:    clipboard.WriteAll,
	}
	ev := m.events
	opts.Grid.Signal().Connect(func(msg comm.Message) {
		ev.count++
		ev.last = msg.Event()
	})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(FlushInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
		m.host.RepaintBody()

	case tea.MouseMsg:
		m = m.handleMouse(msg)
		m.host.RepaintBody()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.grid.Resizer().SetMaxWidth(max(1, m.width-1))
		m.host.SetArea(m.width, max(0, m.height-chromeLines))

	case tickMsg:
		m.grid.Flush()
		m.host.Drain()
		if lm, ok := m.modal.(*logModal); ok && m.clock.Now().Sub(m.lastLogRefresh) >= LogRefreshInterval {
			lm.refresh()
			m.lastLogRefresh = m.clock.Now()
		}
		cmd = tickCmd(FlushInterval)

	case UpdateMsg:
		m = m.applyUpdate(msg)

	case StatusMsg:
		m.setStatus(msg.Text, msg.Err)

	case menuChoiceMsg:
		m = m.runMenuItem(msg)
		m.host.RepaintBody()
	}

	if m.host.TakeDirty() {
		m.frame.valid = false
	}
	return m, cmd
}

func (m Model) applyUpdate(msg UpdateMsg) Model {
	var err error
	if msg.Patch {
		err = m.grid.UpdateModelValues(msg.Record)
	} else {
		err = m.grid.UpdateModelData(msg.Record)
	}
	if err != nil {
		m.logger.Warn("model update rejected", "patch", msg.Patch, "error", err)
		m.setStatus(err.Error(), true)
		return m
	}
	m.host.ScrollTo(m.host.ScrollX(), m.host.ScrollY())
	m.setStatus(fmt.Sprintf("model updated: %d rows", m.grid.RowCount()), false)
	return m
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status, m.statusErr = text, isErr
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.styles, m.width, m.height)
	}
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderGrid() string {
	w, h := m.width, max(0, m.height-chromeLines)
	f := m.frame
	if f.valid && f.width == w && f.height == h {
		return f.text
	}
	c := paintGrid(m.grid, m.host, w, h)
	if m.inside {
		if hovered := m.grid.HoveredCell(); hovered != nil {
			tip := m.grid.Tooltip(m.grid.CellConfig(hovered.Region, hovered.Row, hovered.Column))
			paintTooltip(c, m.grid.Palette(), tip, m.pointerX, m.pointerY)
		}
	}
	f.text, f.width, f.height, f.valid = c.String(), w, h, true
	return f.text
}

func (m Model) renderTitle() string {
	bg := NewBgStyle(m.styles.Palette.HeaderBackground)
	left := bg.Render(" tablegrid", m.styles.Title)
	if m.title != "" {
		left += bg.Render("  "+m.title, m.styles.Status)
	}
	st := m.grid.Store().Current()
	right := fmt.Sprintf("%d of %d rows · %s ", m.grid.RowCount(), len(st.Values()), m.styles.Palette.Name)
	if st.Model.TooManyRows {
		right = "truncated · " + right
	}
	return bg.Split(left, bg.Render(right, m.styles.Status), m.width)
}

func (m Model) renderStatus() string {
	bg := NewBgStyle(m.styles.Palette.HeaderBackground)
	if m.prompt.active() {
		return bg.FillLine(m.prompt.input.View(), m.width)
	}
	var parts []string
	if focused := m.grid.Focus().FocusedCell(); focused != nil {
		parts = append(parts, m.describeCell(focused))
	}
	if mode := m.grid.Resizer().Mode(); mode != grid.ResizeNone {
		parts = append(parts, "resize "+mode.Cursor())
	}
	if m.events.count > 0 {
		parts = append(parts, fmt.Sprintf("sent %s (%d)", m.events.last, m.events.count))
	}
	left := bg.Render(" "+strings.Join(parts, " · "), m.styles.Status)
	right := ""
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.DangerText
		}
		right = bg.Render(m.status+" ", style)
	}
	return bg.Split(left, right, m.width)
}

func (m Model) describeCell(d *cell.Data) string {
	col := m.grid.Column(d.Region, d.Column)
	if col == nil {
		return fmt.Sprintf("row %d", d.Row)
	}
	text, _ := m.grid.FormattedValue(m.grid.CellConfig(d.Region, d.Row, d.Column))
	desc := fmt.Sprintf("%s [%s] row %d: %s", col.Name(), col.DataTypeName(), d.Row, text)
	if f := col.Filter(); f != "" {
		desc += " · filter " + f
	}
	return desc
}

func (m Model) renderFooter() string {
	bg := NewBgStyle(m.styles.Palette.Background)
	return bg.FillLine(" "+m.help.ShortHelpView(m.keys.ShortHelp()), m.width)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = next
		if closed {
			m.modal = nil
		}
		return m, cmd
	}
	if m.prompt.active() {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.modal = helpModal{}
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.modal = newLogModal(m.logPath, m.width, m.height)
		m.lastLogRefresh = m.clock.Now()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.grid.Focus().SetFocusedCell(nil)
		m.grid.Selection().Clear()
		m.grid.SetFocus(false)
		m.setStatus("", false)
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Vertical):
		m.toggleVertical()
		return m, nil
	}

	if k, ok := gridKey(msg); ok {
		if m.ensureFocus() {
			return m, nil
		}
		m.grid.HandleKey(k)
		return m, nil
	}

	if !m.host.ShortcutsActive() {
		if k, ok := cellShortcut(msg, m.keys); ok {
			m.grid.HandleKey(k)
			return m, nil
		}
	}

	return m.handleColumnKey(msg)
}

// gridKey maps navigation keys onto the grid's key manager.
func gridKey(msg tea.KeyMsg) (grid.Key, bool) {
	name := msg.String()
	shift := strings.HasPrefix(name, "shift+")
	name = strings.TrimPrefix(name, "shift+")
	codes := map[string]grid.KeyCode{
		"up":     grid.KeyUp,
		"down":   grid.KeyDown,
		"left":   grid.KeyLeft,
		"right":  grid.KeyRight,
		"pgup":   grid.KeyPageUp,
		"pgdown": grid.KeyPageDown,
		"enter":  grid.KeyEnter,
	}
	code, ok := codes[name]
	if !ok {
		return grid.Key{}, false
	}
	return grid.Key{Code: code, Shift: shift}, true
}

// cellShortcut maps the single-key cell shortcuts onto grid rune keys.
func cellShortcut(msg tea.KeyMsg, keys keyMap) (grid.Key, bool) {
	switch {
	case key.Matches(msg, keys.Heatmap), key.Matches(msg, keys.Unique), key.Matches(msg, keys.DataBars),
		key.Matches(msg, keys.Precision):
		r := []rune(msg.String())
		return grid.Key{Code: grid.KeyRune, Rune: r[0]}, true
	case key.Matches(msg, keys.ColumnPrec):
		return grid.Key{Code: grid.KeyRune, Rune: shiftDigits[msg.String()], Shift: true}, true
	}
	return grid.Key{}, false
}

// ensureFocus focuses the first visible cell when nothing is focused and
// reports whether it did.
func (m *Model) ensureFocus() bool {
	g := m.grid
	if !g.IsFocused() {
		g.SetFocus(true)
	}
	if g.Focus().FocusedCell() != nil {
		return false
	}
	data := g.CellAt(g.HeaderWidth(), g.HeaderHeight())
	if data == nil || cell.IsHeader(data) {
		data = g.CellAt(0, g.HeaderHeight())
	}
	if data == nil || cell.IsHeader(data) {
		return true
	}
	g.Focus().SetFocusedCell(data)
	g.Selection().SetStartCell(data)
	g.Selection().SetEndCell(data)
	return true
}

func (m *Model) focusedColumn() (*column.Column, *cell.Data) {
	focused := m.grid.Focus().FocusedCell()
	if focused == nil {
		m.setStatus("focus a cell first", true)
		return nil, nil
	}
	col := m.grid.Column(focused.Region, focused.Column)
	if col == nil {
		m.setStatus("no column under the focus", true)
	}
	return col, focused
}

func (m Model) handleColumnKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ClearSort):
		m.grid.Columns().ResetSorting()
		return m, nil
	case key.Matches(msg, m.keys.ShowAll):
		m.grid.Columns().ShowAllColumns()
		return m, nil
	case key.Matches(msg, m.keys.ResetAlign):
		m.grid.Columns().ResetColumnsAlignment()
		return m, nil
	case key.Matches(msg, m.keys.ResetOrder):
		m.grid.Columns().ResetColumnPositions()
		m.grid.Focus().SetFocusedCell(nil)
		m.grid.Selection().Clear()
		return m, nil
	case key.Matches(msg, m.keys.ClearAll):
		m.grid.Columns().ResetFilters()
		m.setStatus("filters cleared", false)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
		return m, nil
	}

	actions := []key.Binding{
		m.keys.Search, m.keys.Filter, m.keys.Sort, m.keys.Hide, m.keys.Freeze,
		m.keys.MoveLeft, m.keys.MoveRight, m.keys.TimeUnit, m.keys.Menu,
		m.keys.Format, m.keys.Align,
	}
	if !key.Matches(msg, actions...) {
		return m, nil
	}
	col, focused := m.focusedColumn()
	if col == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.startPrompt(promptSearch, col)
	case key.Matches(msg, m.keys.Filter):
		m.startPrompt(promptFilter, col)
	case key.Matches(msg, m.keys.Sort):
		col.ToggleSort()
	case key.Matches(msg, m.keys.Hide):
		col.Hide()
		m.grid.Focus().SetFocusedCell(nil)
		m.grid.Selection().Clear()
	case key.Matches(msg, m.keys.Freeze):
		col.ToggleColumnFrozen()
		m.grid.Focus().SetFocusedCell(nil)
	case key.Matches(msg, m.keys.MoveLeft):
		m.moveColumn(col, focused, -1)
	case key.Matches(msg, m.keys.MoveRight):
		m.moveColumn(col, focused, 1)
	case key.Matches(msg, m.keys.TimeUnit):
		m.cycleTimeUnit(col)
	case key.Matches(msg, m.keys.Format):
		m.cycleDisplayType(col)
	case key.Matches(msg, m.keys.Align):
		m.cycleAlignment(col)
	case key.Matches(msg, m.keys.Menu):
		if items := m.grid.ContextMenu(focused); len(items) > 0 {
			m.modal = newMenuModal(focused, items)
		}
	}
	return m, nil
}

func (m *Model) moveColumn(col *column.Column, focused *cell.Data, by int) {
	pos := col.Position()
	dest := pos.Value + by
	if dest < 0 {
		return
	}
	col.Move(dest)
	if after := col.Position(); after.Region == pos.Region {
		focused.Column = after.Value
		m.grid.Focus().SetFocusedCell(focused)
	}
}

func (m *Model) cycleTimeUnit(col *column.Column) {
	if t := col.DataType(); t != datatype.Datetime && t != datatype.Time {
		m.setStatus(col.Name()+" is not a datetime column", true)
		return
	}
	unit := datatype.NextTimeUnit(col.FormatForTimes())
	col.SetTimeDisplayType(unit)
	m.setStatus("time unit: "+unit.Title, false)
}

// cycleDisplayType steps col through the display types its data type
// allows. Double with precision keeps the column's current precision.
func (m *Model) cycleDisplayType(col *column.Column) {
	types := datatype.AllowedDisplayTypes(col.DataType())
	current := col.DisplayType().Type()
	next := types[0]
	for i, t := range types {
		if t == current {
			next = types[(i+1)%len(types)]
			break
		}
	}
	display := datatype.DisplayOf(next)
	if next == datatype.DoubleWithPrecision {
		display = datatype.PrecisionDisplay(datatype.DefaultPrecision)
	}
	col.SetDisplayType(display)
	m.setStatus("display type: "+next.String(), false)
}

var alignments = []model.Alignment{model.AlignLeft, model.AlignCenter, model.AlignRight}

func (m *Model) cycleAlignment(col *column.Column) {
	next := alignments[0]
	for i, a := range alignments {
		if a == col.Alignment() {
			next = alignments[(i+1)%len(alignments)]
			break
		}
	}
	col.SetAlignment(next)
	m.setStatus("alignment: "+string(next), false)
}

func (m *Model) cycleTheme() {
	m.prefs = m.prefs.NextTheme()
	m.grid.SetPalette(m.prefs.Palette())
	m.styles = NewStyles(m.grid.Palette())
	m.savePrefs()
}

func (m *Model) toggleVertical() {
	vertical := !m.grid.Store().Current().HeadersVertical()
	m.grid.SetHeadersVertical(vertical)
	m.prefs.HeadersVertical = vertical
	m.host.ScrollTo(m.host.ScrollX(), m.host.ScrollY())
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("prefs not saved", "path", m.prefsPath, "error", err)
		m.setStatus("prefs not saved: "+err.Error(), true)
	}
}

// copySelection copies the selection, or the focused cell, as TSV.
func (m *Model) copySelection() {
	values := m.grid.Selection().SelectionValues()
	if len(values) == 0 {
		if focused := m.grid.Focus().FocusedCell(); focused != nil {
			text, _ := m.grid.FormattedValue(m.grid.CellConfig(focused.Region, focused.Row, focused.Column))
			values = [][]any{{text}}
		}
	}
	if len(values) == 0 {
		m.setStatus("nothing selected", true)
		return
	}
	if err := m.copyFn(export.TSV(values)); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied %d rows", len(values)), false)
}

func (m *Model) startPrompt(kind promptKind, col *column.Column) {
	initial := ""
	if kind == promptFilter {
		initial = filterText(col)
	}
	m.prompt = newPrompt(kind, col, initial)
	if kind == promptSearch {
		query := m.prompt.query
		m.prompt.debounce = grid.NewDebounce(m.clock, SearchDebounce, m.host.Post, func() {
			if expr := expressionFor(promptSearch, col, *query); expr != "" {
				col.Search(expr)
			} else if col.Filter() != "" {
				col.ResetFilter()
			}
		})
	}
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := m.prompt
	switch msg.Type {
	case tea.KeyEsc:
		p.stop()
		if p.kind == promptSearch && p.column.Filter() != "" {
			p.column.ResetFilter()
		}
		m.prompt = prompt{}
		return m, nil
	case tea.KeyEnter:
		p.stop()
		p.apply()
		m.prompt = prompt{}
		m.setStatus(fmt.Sprintf("%d rows match", m.grid.RowCount()), false)
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.kind == promptSearch {
		*p.query = p.input.Value()
		p.debounce.Call()
	}
	m.prompt = p
	return m, cmd
}

// handleMouse maps terminal mouse events onto grid pointer events. Grid
// coordinates are cells, with the grid's top left at screen row gridTop.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	x, y := msg.X, msg.Y-gridTop
	inside := y >= 0 && y < m.height-chromeLines && x >= 0 && x < m.width
	m.pointerX, m.pointerY = x, y

	if !inside {
		if m.inside {
			m.grid.HandleMouseLeave()
		}
		m.inside = false
		return m
	}
	m.inside = true

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		step := 3
		if msg.Button == tea.MouseButtonWheelUp {
			step = -3
		}
		if msg.Shift {
			m.host.ScrollTo(m.host.ScrollX()+step*4, m.host.ScrollY())
		} else {
			m.host.ScrollTo(m.host.ScrollX(), m.host.ScrollY()+step)
		}
		return m
	case tea.MouseButtonWheelLeft:
		m.host.ScrollTo(m.host.ScrollX()-12, m.host.ScrollY())
		return m
	case tea.MouseButtonWheelRight:
		m.host.ScrollTo(m.host.ScrollX()+12, m.host.ScrollY())
		return m
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m = m.press(x, y, msg.Shift)
		case tea.MouseButtonRight:
			if data := m.grid.CellAt(x, y); data != nil {
				if items := m.grid.ContextMenu(data); len(items) > 0 {
					m.modal = newMenuModal(data, items)
				}
			}
		}
	case tea.MouseActionMotion:
		m.grid.HandleMouseMove(x, y, msg.Button == tea.MouseButtonLeft)
	case tea.MouseActionRelease:
		if url, ok := m.grid.HandleMouseUp(x, y); ok {
			m.setStatus("link: "+url, false)
		}
	}
	return m
}

// press handles a primary button press. A second press on the same cell
// within DoubleClickWindow is a double click.
func (m Model) press(x, y int, shift bool) Model {
	data := m.grid.CellAt(x, y)
	now := m.clock.Now()
	if data != nil && m.lastClick != nil && cell.Equal(data, m.lastClick.data) &&
		now.Sub(m.lastClick.at) <= DoubleClickWindow {
		m.lastClick = nil
		m.grid.HandleDoubleClick(data)
		return m
	}
	m.lastClick = &click{data: data, at: now}
	m.grid.HandleMouseDown(x, y, shift)
	return m
}

func (m Model) runMenuItem(msg menuChoiceMsg) Model {
	text := m.grid.ContextMenuClick(msg.data, msg.item)
	if msg.item.Key != grid.MenuCopy || msg.item.Kind != grid.MenuBuiltin {
		return m
	}
	if err := m.copyFn(text); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus("copy failed: "+err.Error(), true)
		return m
	}
	m.setStatus("copied "+text, false)
	return m
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Run starts the TUI and blocks until the user quits or the context ends.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if opts.Feed != nil {
		go opts.Feed(ctx, p.Send)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
