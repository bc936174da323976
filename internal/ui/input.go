package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/grid"
	"github.com/five82/tablegrid/internal/row"
)

// promptKind is what the bottom line input edits.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptFilter
)

// prompt is the bottom line input of a column search or filter.
type prompt struct {
	kind     promptKind
	column   *column.Column
	input    textinput.Model
	debounce *grid.Debounce
	// query is the text the pending debounced search runs with.
	query *string
}

func newPrompt(kind promptKind, col *column.Column, initial string) prompt {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "text to find"
	if kind == promptFilter {
		in.Prompt = "filter " + col.Name() + ": "
		in.Placeholder = "$ > 10 && $ < 20   ($ is the column)"
	}
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	return prompt{kind: kind, column: col, input: in, query: new(string)}
}

func (p prompt) active() bool { return p.kind != promptNone }

// expression turns the typed text into a filter expression over the
// column: a substring match for searches, "$" expanded for filters.
func (p prompt) expression() string {
	return expressionFor(p.kind, p.column, p.input.Value())
}

func expressionFor(kind promptKind, col *column.Column, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	colVar := row.VarName(col.Name())
	if kind == promptSearch {
		return row.SearchExpressionFor(colVar, text)
	}
	return row.FilterExpressionFor(colVar, text)
}

// filterText recovers the "$" form of a column filter for editing.
// Searches are not editable as filters.
func filterText(col *column.Column) string {
	expr := col.Filter()
	if expr == "" || strings.HasPrefix(expr, "contains(") {
		return ""
	}
	return strings.ReplaceAll(expr, row.VarName(col.Name()), "$")
}

// apply runs the expression on the column. An empty text clears it.
func (p prompt) apply() {
	expr := p.expression()
	switch {
	case expr == "":
		if p.column.Filter() != "" {
			p.column.ResetFilter()
		}
	case p.kind == promptSearch:
		p.column.Search(expr)
	default:
		p.column.ApplyFilter(expr)
	}
}

func (p prompt) stop() {
	if p.debounce != nil {
		p.debounce.Stop()
	}
}
