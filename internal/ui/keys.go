package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the grid view.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	Logs       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Extend   key.Binding

	// Column actions
	Search     key.Binding
	Filter     key.Binding
	Sort       key.Binding
	ClearSort  key.Binding
	Hide       key.Binding
	ShowAll    key.Binding
	Freeze     key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	TimeUnit   key.Binding
	Vertical   key.Binding
	Menu       key.Binding
	Copy       key.Binding
	Heatmap    key.Binding
	Unique     key.Binding
	DataBars   key.Binding
	Precision  key.Binding
	ColumnPrec key.Binding
	Format     key.Binding
	Align      key.Binding
	ResetAlign key.Binding
	ResetOrder key.Binding
	ClearAll   key.Binding

	// Overlays
	LogLevel key.Binding
	Confirm  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show log"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / unfocus"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Move right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select cell"),
		),
		Extend: key.NewBinding(
			key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("shift+arrows", "Extend selection"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search column"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle sort"),
		),
		ClearSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Clear sort"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Hide column"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Show all columns"),
		),
		Freeze: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Toggle freeze"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "Move column left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "Move column right"),
		),
		TimeUnit: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Cycle time unit"),
		),
		Vertical: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Vertical headers"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Context menu"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy selection"),
		),
		Heatmap: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Heatmap"),
		),
		Unique: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Unique entries"),
		),
		DataBars: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Data bars"),
		),
		Precision: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "Precision, all columns"),
		),
		ColumnPrec: key.NewBinding(
			key.WithKeys(")", "!", "@", "#", "$", "%", "^", "&", "*", "("),
			key.WithHelp("shift+0-9", "Precision, this column"),
		),
		Format: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Cycle display type"),
		),
		Align: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Cycle alignment"),
		),
		ResetAlign: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Reset all alignments"),
		),
		ResetOrder: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Reset column order"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Clear all filters"),
		),

		LogLevel: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Cycle log level"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Sort, k.Menu, k.Copy, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Select, k.Extend},
		{k.Search, k.Filter, k.ClearAll, k.Sort, k.ClearSort, k.Hide, k.ShowAll, k.Freeze, k.MoveLeft, k.MoveRight, k.ResetOrder},
		{k.Heatmap, k.Unique, k.DataBars, k.Precision, k.ColumnPrec, k.TimeUnit, k.Format, k.Align, k.ResetAlign},
		{k.Menu, k.Copy, k.Vertical, k.CycleTheme, k.Logs, k.Help, k.Quit},
	}
}

// shiftDigits maps the shifted digit keys of a US layout to their digit.
var shiftDigits = map[string]rune{
	")": '0', "!": '1', "@": '2', "#": '3', "$": '4',
	"%": '5', "^": '6', "&": '7', "*": '8', "(": '9',
}
