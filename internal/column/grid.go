package column

import (
	"github.com/five82/tablegrid/internal/cell"
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/surface"
)

// Grid is the coordinator surface columns call back into.
type Grid interface {
	CellAt(x, y int) *cell.Data
	RowHeaderSections() surface.SectionGeometry
	ColumnSections() surface.SectionGeometry
	ColumnHeaderSections() surface.SectionGeometry

	AddColumnHighlighter(c *Column, t model.HighlighterType)
	RemoveColumnHighlighter(c *Column, t model.HighlighterType)
	ToggleColumnHighlighter(c *Column, t model.HighlighterType)
	// RemoveHighlighters drops every highlighter of c.
	RemoveHighlighters(c *Column)
	RestoreHighlighters(c *Column)

	SetInitialSectionWidth(c *Column)
	UpdateWidgetWidth()
	Resize()
	// ResetModel tells the surface that rows or columns changed.
	ResetModel()
	RepaintBody()
}
