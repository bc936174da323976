package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tablegrid/internal/logtail"
)

var logLevels = []logtail.Level{logtail.LevelDebug, logtail.LevelInfo, logtail.LevelWarn, logtail.LevelError}

var levelNames = map[logtail.Level]string{
	logtail.LevelDebug: "debug",
	logtail.LevelInfo:  "info",
	logtail.LevelWarn:  "warn",
	logtail.LevelError: "error",
}

// logModal shows the tail of the log file.
type logModal struct {
	path     string
	minLevel logtail.Level
	view     viewport.Model
	err      error
}

func newLogModal(path string, width, height int) *logModal {
	m := &logModal{path: path, minLevel: logtail.LevelDebug}
	m.view = viewport.New(max(10, width-4), max(3, height-6))
	m.refresh()
	return m
}

// refresh rereads the log file. The view stays at the bottom when it was
// there.
func (m *logModal) refresh() {
	if m.path == "" {
		m.view.SetContent("logging to a file is disabled")
		return
	}
	lines, err := logtail.Read(m.path, LogTailLines)
	m.err = err
	if err != nil {
		m.view.SetContent("log unavailable: " + err.Error())
		return
	}
	follow := m.view.AtBottom()
	m.view.SetContent(strings.Join(logtail.Filter(lines, m.minLevel), "\n"))
	if follow {
		m.view.GotoBottom()
	}
}

func (m *logModal) nextLevel() {
	for i, l := range logLevels {
		if l == m.minLevel {
			m.minLevel = logLevels[(i+1)%len(logLevels)]
			return
		}
	}
	m.minLevel = logtail.LevelDebug
}

func (m *logModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Logs), key.Matches(msg, keys.Quit):
		return m, nil, true
	case key.Matches(msg, keys.LogLevel):
		m.nextLevel()
		m.view.GotoBottom()
		m.refresh()
		return m, nil, false
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd, false
}

func (m *logModal) View(styles Styles, width, height int) string {
	title := styles.AccentText.Render("Log") + "  " +
		styles.MutedText.Render("level ≥ "+levelNames[m.minLevel]+"  (l: level, esc: close)")
	box := styles.Modal.Padding(0, 1).Width(max(10, width-2)).Render(title + "\n" + m.view.View())
	return place(styles, width, height, box)
}
