package grid

import (
	"sort"
	"strings"

	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/column"
	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// MenuKind says who handles a context menu item.
type MenuKind int

const (
	// MenuKernel items are sent to the kernel as CONTEXT_MENU_CLICK.
	MenuKernel MenuKind = iota
	// MenuTag items are sent as actiondetails naming the item.
	MenuTag
	// MenuBuiltin items run in the grid.
	MenuBuiltin
)

// MenuItem is one context menu entry.
type MenuItem struct {
	Key   string
	Title string
	Kind  MenuKind
}

// Built-in context menu keys.
const (
	MenuCopy      = "copy"
	MenuSortAsc   = "sort-asc"
	MenuSortDesc  = "sort-desc"
	MenuSortNone  = "sort-none"
	MenuHide      = "hide"
	MenuFreeze    = "freeze"
	MenuHeatmap   = "heatmap"
	MenuUnique    = "unique"
	MenuDataBars  = "databars"
	MenuResetCell = "reset"

	MenuAlignLeft       = "align-left"
	MenuAlignCenter     = "align-center"
	MenuAlignRight      = "align-right"
	MenuResetAlignment  = "reset-alignment"
	MenuResetPositions  = "reset-positions"
	MenuResetFilters    = "reset-filters"
	MenuShowAll         = "show-all"
	menuFormatKeyPrefix = "format-"
)

var builtinItems = []MenuItem{
	{Key: MenuCopy, Title: "Copy cell", Kind: MenuBuiltin},
	{Key: MenuSortAsc, Title: "Sort ascending", Kind: MenuBuiltin},
	{Key: MenuSortDesc, Title: "Sort descending", Kind: MenuBuiltin},
	{Key: MenuSortNone, Title: "No sort", Kind: MenuBuiltin},
	{Key: MenuHide, Title: "Hide column", Kind: MenuBuiltin},
	{Key: MenuFreeze, Title: "Freeze column", Kind: MenuBuiltin},
	{Key: MenuHeatmap, Title: "Heatmap", Kind: MenuBuiltin},
	{Key: MenuUnique, Title: "Color unique entries", Kind: MenuBuiltin},
	{Key: MenuDataBars, Title: "Data bars", Kind: MenuBuiltin},
	{Key: MenuResetCell, Title: "Reset column", Kind: MenuBuiltin},
	{Key: MenuAlignLeft, Title: "Align left", Kind: MenuBuiltin},
	{Key: MenuAlignCenter, Title: "Align center", Kind: MenuBuiltin},
	{Key: MenuAlignRight, Title: "Align right", Kind: MenuBuiltin},
	{Key: MenuResetAlignment, Title: "Reset all alignments", Kind: MenuBuiltin},
	{Key: MenuResetPositions, Title: "Reset column order", Kind: MenuBuiltin},
	{Key: MenuResetFilters, Title: "Clear all filters", Kind: MenuBuiltin},
	{Key: MenuShowAll, Title: "Show all columns", Kind: MenuBuiltin},
}

// MenuFormatKey is the built-in key that switches a column to display
// type t.
func MenuFormatKey(t datatype.Type) string {
	return menuFormatKeyPrefix + t.String()
}

// formatItems lists the display types col may switch to.
func formatItems(col *column.Column) []MenuItem {
	if col == nil {
		return nil
	}
	types := datatype.AllowedDisplayTypes(col.DataType())
	items := make([]MenuItem, len(types))
	for i, t := range types {
		items[i] = MenuItem{Key: MenuFormatKey(t), Title: "Format: " + t.String(), Kind: MenuBuiltin}
	}
	return items
}

// formatDisplay maps a format key back to the display type it selects.
func formatDisplay(col *column.Column, key string) (datatype.DisplayType, bool) {
	name, ok := strings.CutPrefix(key, menuFormatKeyPrefix)
	if !ok {
		return "", false
	}
	for _, t := range datatype.AllowedDisplayTypes(col.DataType()) {
		if t.String() != name {
			continue
		}
		if t == datatype.DoubleWithPrecision {
			if col.DisplayType().IsDoubleWithPrecision() {
				return col.DisplayType(), true
			}
			return datatype.PrecisionDisplay(datatype.DefaultPrecision), true
		}
		return datatype.DisplayOf(t), true
	}
	return "", false
}

// ContextMenu lists the menu for a body cell: kernel items, tagged items,
// the built-ins and the display types of the column. Header cells have no
// context menu.
func (g *Grid) ContextMenu(data *cell.Data) []MenuItem {
	if data == nil || cell.IsHeader(data) || data.OffsetTop < g.HeaderHeight() {
		return nil
	}
	st := g.store.Current()
	var items []MenuItem
	for _, name := range st.ContextMenuItems() {
		items = append(items, MenuItem{Key: name, Title: name, Kind: MenuKernel})
	}
	tags := make([]string, 0, len(st.Model.ContextMenuTags))
	for name := range st.Model.ContextMenuTags {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	for _, name := range tags {
		items = append(items, MenuItem{Key: name, Title: name, Kind: MenuTag})
	}
	items = append(items, builtinItems...)
	return append(items, formatItems(g.columns.ColumnByCell(data.Region, data.Column))...)
}

// ContextMenuClick runs item for the cell data. It returns the cell text
// for the copy item and "" otherwise.
func (g *Grid) ContextMenuClick(data *cell.Data, item MenuItem) string {
	if data == nil {
		return ""
	}
	rowIndex := data.Row
	if r := g.rows.Row(data.Row); r != nil {
		if i, ok := r.Index.(int); ok {
			rowIndex = i
		}
	}
	col, _ := g.store.Current().ColumnIndexByPosition(column.PositionFromCell(data))
	switch item.Kind {
	case MenuKernel:
		g.signal.Emit(comm.ContextMenuClick{Row: rowIndex, Column: col, ItemKey: item.Key})
		g.logger.Debug("context menu click", "item", item.Key, "row", rowIndex, "column", col)
		return ""
	case MenuTag:
		g.signal.Emit(comm.ActionDetails{
			ActionType:      comm.ActionContextMenuClick,
			Row:             rowIndex,
			Col:             col,
			ContextMenuItem: item.Key,
		})
		g.logger.Debug("context menu action", "item", item.Key, "row", rowIndex, "column", col)
		return ""
	}
	return g.runBuiltin(data, item.Key)
}

func (g *Grid) runBuiltin(data *cell.Data, key string) string {
	col := g.columns.ColumnByCell(data.Region, data.Column)
	if col == nil {
		return ""
	}
	switch key {
	case MenuCopy:
		text, _ := g.FormattedValue(g.CellConfig(data.Region, data.Row, data.Column))
		return text
	case MenuSortAsc:
		col.Sort(model.SortAsc)
	case MenuSortDesc:
		col.Sort(model.SortDesc)
	case MenuSortNone:
		col.Sort(model.NoSort)
	case MenuHide:
		col.Hide()
	case MenuFreeze:
		col.ToggleColumnFrozen()
	case MenuHeatmap:
		col.ToggleHighlighter(model.HeatmapHighlighter)
	case MenuUnique:
		col.ToggleHighlighter(model.UniqueEntriesHighlighter)
	case MenuDataBars:
		col.ToggleDataBarsRenderer(nil)
	case MenuResetCell:
		col.ResetState()
	case MenuAlignLeft:
		col.SetAlignment(model.AlignLeft)
	case MenuAlignCenter:
		col.SetAlignment(model.AlignCenter)
	case MenuAlignRight:
		col.SetAlignment(model.AlignRight)
	case MenuResetAlignment:
		g.columns.ResetColumnsAlignment()
	case MenuResetPositions:
		g.columns.ResetColumnPositions()
	case MenuResetFilters:
		g.columns.ResetFilters()
	case MenuShowAll:
		g.columns.ShowAllColumns()
	default:
		if d, ok := formatDisplay(col, key); ok {
			col.SetDisplayType(d)
		} else {
			g.logger.Debug("unknown menu item", "item", key)
		}
	}
	return ""
}

// VisibleColumns lists the columns in render order: the row header (index
// first, then frozen) followed by the body.
func (g *Grid) VisibleColumns() []*column.Column {
	var cols []*column.Column
	for i, n := 0, g.rowHeader.Count(); i < n; i++ {
		if c := g.columns.ColumnByPosition(model.Position{Region: model.RegionRowHeader, Value: i}); c != nil {
			cols = append(cols, c)
		}
	}
	for i, n := 0, g.body.Count(); i < n; i++ {
		if c := g.columns.ColumnByPosition(model.Position{Region: model.RegionBody, Value: i}); c != nil {
			cols = append(cols, c)
		}
	}
	return cols
}

// Projection returns the header names and formatted rows in render order,
// after sorting and filtering.
func (g *Grid) Projection() (headers []string, rows [][]string) {
	cols := g.VisibleColumns()
	headers = make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name()
	}
	for r, n := 0, g.rows.RowCount(); r < n; r++ {
		line := make([]string, len(cols))
		for i, c := range cols {
			v := g.rows.ValueByColumn(r, c.Index(), c.Type())
			line[i], _ = g.formatSafely(c, v, r)
		}
		rows = append(rows, line)
	}
	return headers, rows
}
