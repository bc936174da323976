package highlight

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/state"
	"github.com/five82/tablegrid/internal/theme"
)

// ErrUnknownType is returned for highlighter types the grid cannot draw.
var ErrUnknownType = errors.New("unknown highlighter type")

// Options configures a Manager.
type Options struct {
	Palette theme.Palette
	Logger  *log.Logger
}

// Manager holds the registered highlighters of one grid.
type Manager struct {
	store   *state.Store
	columns *column.Manager
	rows    Rows
	palette theme.Palette
	logger  *log.Logger

	highlighters []Highlighter
}

// New returns a Manager with no highlighters. Call CreateHighlighters to
// load the stored ones.
func New(store *state.Store, columns *column.Manager, rows Rows, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	palette := opts.Palette
	if palette.Name == "" {
		palette = theme.Light()
	}
	return &Manager{store: store, columns: columns, rows: rows, palette: palette, logger: logger}
}

// SetPalette switches the theme colors used by new highlighters.
func (m *Manager) SetPalette(p theme.Palette) { m.palette = p }

// CreateHighlighters registers one highlighter per stored state. States
// naming unknown columns or types are skipped.
func (m *Manager) CreateHighlighters() {
	m.highlighters = nil
	for _, st := range m.store.Current().CellHighlighters() {
		col := m.columns.ColumnByName(st.ColName)
		if col == nil {
			m.logger.Debug("highlighter skipped", "column", st.ColName, "type", st.Type)
			continue
		}
		h, err := m.CreateHighlighter(col, st)
		if err != nil {
			m.logger.Warn("highlighter skipped", "column", st.ColName, "error", err)
			continue
		}
		m.register(h)
	}
}

// CreateHighlighter builds a highlighter for col from st.
func (m *Manager) CreateHighlighter(col *column.Column, st model.HighlighterState) (Highlighter, error) {
	switch st.Type {
	case model.HeatmapHighlighter:
		return newHeatmap(col, m.rows, st), nil
	case model.ThreeColorHeatmapHighlighter:
		return newThreeColorHeatmap(col, m.rows, st), nil
	case model.UniqueEntriesHighlighter:
		return newUniqueEntries(col, m.rows, st, len(m.store.Current().ColumnNames()), m.palette), nil
	case model.ValueHighlighter:
		return newValueHighlighter(col, m.rows, st), nil
	case model.SortHighlighter:
		return &sortHighlighter{base: newBase(col, m.rows, st), palette: m.palette}, nil
	}
	return nil, fmt.Errorf("%s: %w", st.Type, ErrUnknownType)
}

// register adds h, replacing any highlighter of the same column and type.
func (m *Manager) register(h Highlighter) {
	m.unregister(h.Column(), h.State().Type)
	m.highlighters = append(m.highlighters, h)
}

func (m *Manager) unregister(col *column.Column, t model.HighlighterType) {
	m.highlighters = slices.DeleteFunc(m.highlighters, func(h Highlighter) bool {
		return matches(h, col, t)
	})
}

func matches(h Highlighter, col *column.Column, t model.HighlighterType) bool {
	return h.Column() == col && h.State().Type == t
}

// Highlighters returns the highlighters of col with type t.
func (m *Manager) Highlighters(col *column.Column, t model.HighlighterType) []Highlighter {
	var out []Highlighter
	for _, h := range m.highlighters {
		if matches(h, col, t) {
			out = append(out, h)
		}
	}
	return out
}

// All returns every registered highlighter in evaluation order.
func (m *Manager) All() []Highlighter {
	return slices.Clone(m.highlighters)
}

// AddColumnHighlighter stores and registers a highlighter of type t on
// col. A stored configuration for the same slot is reused.
func (m *Manager) AddColumnHighlighter(col *column.Column, t model.HighlighterType) {
	st := model.HighlighterState{Type: t, ColName: col.Name(), Style: model.SingleColumn}
	if stored := m.store.Current().ColumnHighlighters(col.Name(), t); len(stored) > 0 {
		st = stored[0]
	}
	h, err := m.CreateHighlighter(col, st)
	if err != nil {
		m.logger.Warn("highlighter not added", "column", col.Name(), "error", err)
		return
	}
	if err := m.store.Dispatch(state.AddColumnHighlighter{Highlighter: h.State()}); err != nil {
		m.logger.Warn("highlighter not added", "column", col.Name(), "error", err)
		return
	}
	m.register(h)
}

// RemoveColumnHighlighter drops the highlighter of type t from col.
func (m *Manager) RemoveColumnHighlighter(col *column.Column, t model.HighlighterType) {
	st := model.HighlighterState{Type: t, ColName: col.Name()}
	if err := m.store.Dispatch(state.RemoveColumnHighlighter{Highlighter: st}); err != nil {
		m.logger.Warn("highlighter not removed", "column", col.Name(), "error", err)
	}
	m.unregister(col, t)
}

// ToggleColumnHighlighter removes the highlighter if col has one of type
// t, otherwise adds it.
func (m *Manager) ToggleColumnHighlighter(col *column.Column, t model.HighlighterType) {
	if len(m.Highlighters(col, t)) > 0 {
		m.RemoveColumnHighlighter(col, t)
		return
	}
	m.AddColumnHighlighter(col, t)
}

// RemoveHighlighters drops every highlighter of col.
func (m *Manager) RemoveHighlighters(col *column.Column) {
	for _, h := range m.highlighters {
		if h.Column() == col {
			st := h.State()
			if err := m.store.Dispatch(state.RemoveColumnHighlighter{Highlighter: st}); err != nil {
				m.logger.Warn("highlighter not removed", "column", col.Name(), "error", err)
			}
		}
	}
	m.highlighters = slices.DeleteFunc(m.highlighters, func(h Highlighter) bool { return h.Column() == col })
}

// RestoreHighlighters rebuilds the stored highlighters of col, picking up
// fresh column statistics.
func (m *Manager) RestoreHighlighters(col *column.Column) {
	for _, st := range m.store.Current().CellHighlighters() {
		if st.ColName != col.Name() {
			continue
		}
		h, err := m.CreateHighlighter(col, st)
		if err != nil {
			m.logger.Warn("highlighter not restored", "column", col.Name(), "error", err)
			continue
		}
		m.register(h)
	}
}

// CellBackground returns the highlighter color of a body cell. FULL_ROW
// highlighters apply to every column; the last match wins.
func (m *Manager) CellBackground(cfg cell.Config) string {
	if cfg.Region.IsHeader() {
		return ""
	}
	col := m.columns.ColumnByCell(cfg.Region, cfg.Column)
	bg := ""
	for _, h := range m.highlighters {
		if h.Column() == col || h.State().Style == model.FullRow {
			bg = h.Background(cfg)
		}
	}
	return bg
}

// Destroy drops every highlighter.
func (m *Manager) Destroy() { m.highlighters = nil }
