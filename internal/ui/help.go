package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// helpModal lists the key bindings.
type helpModal struct{}

func (helpModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	// Any key closes help
	return helpModal{}, nil, true
}

func (helpModal) View(styles Styles, width, height int) string {
	keys := DefaultKeyMap()
	sections := []helpSection{
		{title: "Navigation", bindings: keys.FullHelp()[0]},
		{title: "Columns", bindings: keys.FullHelp()[1]},
		{title: "Cells", bindings: keys.FullHelp()[2]},
		{title: "General", bindings: keys.FullHelp()[3]},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(styles.KeyText.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Mouse: click a header to sort, drag it to move,\ndrag its right border to resize, double click a cell."))

	return place(styles, width, height, styles.Modal.Width(modalWidth+8).Render(b.String()))
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
