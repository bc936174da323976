package row

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/filter"
	"github.com/five82/tablegrid/internal/model"
)

// AllRows is the RowsToShow value that shows every row.
const AllRows = -1

// Column is the view of a grid column the row manager needs.
type Column interface {
	Name() string
	Index() int
	Type() model.ColumnType
	Filter() string
	SortOrder() model.SortOrder
	ValueResolver() datatype.Resolver
}

// ColumnSource lists the columns whose filters apply, index columns first.
type ColumnSource interface {
	FilterColumns() []Column
}

// Options configures a Manager.
type Options struct {
	Logger *log.Logger
	// OnFiltered runs after every filter pass that changed or restored rows.
	OnFiltered func()
	// OnRowsToShow runs after the page length changes.
	OnRowsToShow func()
}

// Manager holds the grid rows in render order.
type Manager struct {
	columns ColumnSource
	opts    Options
	logger  *log.Logger

	all        []*Row
	rows       []*Row
	sortedBy   Column
	rowsToShow int
	expression string
}

// New returns a Manager reading filters from columns.
func New(columns ColumnSource, rowsToShow int, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{columns: columns, opts: opts, logger: logger, rowsToShow: rowsToShow}
}

// CreateRows replaces all rows. The current sort and filter are not
// reapplied; callers follow with FilterRows and KeepSorting as needed.
func (m *Manager) CreateRows(values [][]any, fontColors [][]string, hasIndex bool, defaultColor string) {
	m.all = CreateRows(values, fontColors, hasIndex, defaultColor)
	m.rows = append([]*Row(nil), m.all...)
}

// Rows returns the rows in render order. Callers must not modify it.
func (m *Manager) Rows() []*Row { return m.rows }

// Row returns the row rendered at i, or nil.
func (m *Manager) Row(i int) *Row {
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return m.rows[i]
}

// RowCount is the number of rows after filtering.
func (m *Manager) RowCount() int { return len(m.rows) }

// TakeRows returns the rows rendered in [start, end).
func (m *Manager) TakeRows(start, end int) []*Row {
	start = max(0, min(start, len(m.rows)))
	end = max(start, min(end, len(m.rows)))
	return append([]*Row(nil), m.rows[start:end]...)
}

// ValueByColumn returns the value of a column in the row rendered at row.
// Index columns resolve to the row index.
func (m *Manager) ValueByColumn(row, column int, columnType model.ColumnType) any {
	r := m.Row(row)
	if r == nil {
		return datatype.Undefined
	}
	if columnType == model.BodyColumn {
		return r.Value(column)
	}
	return r.Index
}

// RowsToShow returns the page length, or AllRows.
func (m *Manager) RowsToShow() int { return m.rowsToShow }

// SetRowsToShow changes the page length.
func (m *Manager) SetRowsToShow(n int) {
	m.rowsToShow = n
	if m.opts.OnRowsToShow != nil {
		m.opts.OnRowsToShow()
	}
}

// SortedBy returns the column of the last sort, or nil.
func (m *Manager) SortedBy() Column { return m.sortedBy }

// SortByColumn stable-sorts the current rows by col. Index columns and
// NoSort order by logical index.
func (m *Manager) SortByColumn(col Column) {
	m.sortedBy = col
	order := col.SortOrder()
	resolve := col.ValueResolver()
	value := func(r *Row) any { return resolve(r.Value(col.Index())) }
	if col.Type() == model.IndexColumn || order == model.NoSort {
		value = func(r *Row) any { return resolve(r.Index) }
	}
	m.sortRows(value, order == model.SortDesc)
}

func (m *Manager) sortRows(value func(*Row) any, reverse bool) {
	sort.SliceStable(m.rows, func(i, j int) bool {
		c := datatype.Compare(value(m.rows[i]), value(m.rows[j]))
		if reverse {
			return c > 0
		}
		return c < 0
	})
}

// KeepSorting reapplies the last sort.
func (m *Manager) KeepSorting() {
	if m.sortedBy != nil {
		m.SortByColumn(m.sortedBy)
	}
}

// ResetSorting restores creation order and forgets the sort column.
func (m *Manager) ResetSorting() {
	m.sortedBy = nil
	rank := make(map[*Row]int, len(m.all))
	for i, r := range m.all {
		rank[r] = i
	}
	sort.SliceStable(m.rows, func(i, j int) bool { return rank[m.rows[i]] < rank[m.rows[j]] })
}

// FilterExpression returns the expression applied by the last filter pass.
func (m *Manager) FilterExpression() string { return m.expression }

// FilterRows applies the joined column filters to all rows. On an invalid
// expression the current rows are kept and a warning is logged.
func (m *Manager) FilterRows() {
	cols := m.columns.FilterColumns()
	var parts []string
	for _, c := range cols {
		if f := strings.TrimSpace(c.Filter()); f != "" {
			parts = append(parts, f)
		}
	}
	m.expression = strings.TrimSpace(strings.Join(parts, " && "))

	if m.expression == "" {
		m.rows = append([]*Row(nil), m.all...)
		m.KeepSorting()
		m.filtered()
		return
	}

	expr, err := filter.Parse(m.expression)
	if err != nil {
		m.logger.Warn("filter ignored", "expression", m.expression, "error", err)
		return
	}
	vars := bindings(cols)
	var kept []*Row
	for _, r := range m.all {
		ok, err := expr.Match(rowScope{row: r, vars: vars})
		if err != nil {
			m.logger.Warn("filter ignored", "expression", m.expression, "error", err)
			return
		}
		if ok {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	m.KeepSorting()
	m.filtered()
}

// SearchRows runs the type-to-search pass. It shares FilterRows' evaluator.
func (m *Manager) SearchRows() {
	m.FilterRows()
}

func (m *Manager) filtered() {
	if m.opts.OnFiltered != nil {
		m.opts.OnFiltered()
	}
}

// Destroy drops all rows.
func (m *Manager) Destroy() {
	m.all, m.rows, m.sortedBy = nil, nil, nil
}

type binding struct {
	index bool
	col   int
}

func bindings(cols []Column) map[string]binding {
	vars := make(map[string]binding, 2*len(cols))
	for _, c := range cols {
		b := binding{index: c.Type() == model.IndexColumn, col: c.Index()}
		escaped := EscapeColumnName(c.Name())
		vars[VarPrefix(c.Name())+escaped] = b
		vars["col_"+escaped] = b
	}
	return vars
}

type rowScope struct {
	row  *Row
	vars map[string]binding
}

func (s rowScope) Lookup(name string) (any, bool) {
	b, ok := s.vars[name]
	if !ok {
		return nil, false
	}
	if b.index {
		return s.row.Index, true
	}
	return s.row.Value(b.col), true
}

func (s rowScope) RowIndex() any { return s.row.Index }

func (s rowScope) RowValue(i int) any { return s.row.Value(i) }

var whitespace = regexp.MustCompile(`\s+`)

// EscapeColumnName turns a column name into an expression identifier.
func EscapeColumnName(name string) string {
	return whitespace.ReplaceAllString(name, "_")
}

// VarPrefix is "col_" for names that read as numbers and empty otherwise.
func VarPrefix(name string) string {
	if !math.IsNaN(datatype.ToNumber(name)) {
		return "col_"
	}
	return ""
}

// VarName is the identifier a column is bound to in filter expressions.
func VarName(name string) string {
	return VarPrefix(name) + EscapeColumnName(name)
}

// FilterExpressionFor expands "$" in a user filter to the column variable.
func FilterExpressionFor(colVar, text string) string {
	return strings.ReplaceAll(text, "$", colVar)
}

// SearchExpressionFor builds a substring match over the column variable.
// Text without capitals matches case-insensitively.
func SearchExpressionFor(colVar, text string) string {
	if datatype.HasUpperCase(text) {
		return "contains(String(" + colVar + "), " + strconv.Quote(text) + ")"
	}
	return "contains(lower(String(" + colVar + ")), " + strconv.Quote(text) + ")"
}
