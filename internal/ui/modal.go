package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/grid"
)

// Modal is the interface for overlays drawn over the grid.
// Update returns the updated modal, a command, and whether it should close.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(styles Styles, width, height int) string
}

// menuChoiceMsg reports the context menu item picked for a cell.
type menuChoiceMsg struct {
	data *cell.Data
	item grid.MenuItem
}

// menuModal is the context menu of one body cell.
type menuModal struct {
	data   *cell.Data
	items  []grid.MenuItem
	cursor int
}

func newMenuModal(data *cell.Data, items []grid.MenuItem) *menuModal {
	return &menuModal{data: data, items: items}
}

func (m *menuModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Menu):
		return m, nil, true
	case key.Matches(msg, keys.Up):
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case key.Matches(msg, keys.Down):
		m.cursor = (m.cursor + 1) % len(m.items)
	case key.Matches(msg, keys.Confirm):
		choice := menuChoiceMsg{data: m.data, item: m.items[m.cursor]}
		return m, func() tea.Msg { return choice }, true
	}
	return m, nil, false
}

func (m *menuModal) View(styles Styles, width, height int) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Cell menu"))
	b.WriteString("\n\n")
	kind := grid.MenuBuiltin
	for i, item := range m.items {
		if i > 0 && item.Kind != kind {
			b.WriteString(styles.MutedText.Render(strings.Repeat("─", modalWidth-6)))
			b.WriteString("\n")
		}
		kind = item.Kind
		line := "  " + item.Title
		if i == m.cursor {
			line = styles.Selected.Render("> " + item.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return place(styles, width, height, styles.Modal.Width(modalWidth).Render(strings.TrimRight(b.String(), "\n")))
}

// place centers an overlay box on the screen.
func place(styles Styles, width, height int, box string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(termColor(styles.Palette.Void)),
	)
}
