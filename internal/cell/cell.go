package cell

import (
	"github.com/five82/tablegrid/internal/model"
	"github.com/five82/tablegrid/internal/surface"
)

// Data describes the cell under a point.
type Data struct {
	Region model.Region
	Type   model.ColumnType
	Column int
	Row    int
	// Delta is the distance from the left edge of the cell.
	Delta int
	// Offset is the left edge of the column in unscrolled surface units.
	Offset int
	// OffsetTop is the top edge of the row, including the header height.
	OffsetTop int
	Width     int
	Value     any
}

// Config is what a renderer knows about the cell it paints.
type Config struct {
	Region model.Region
	Row    int
	Column int
	Value  any
	X, Y   int
	Width  int
	Height int
}

// Geometry is the grid surface as seen by the hit tester.
type Geometry interface {
	RowHeaderSections() surface.SectionGeometry
	ColumnSections() surface.SectionGeometry
	RowSections() surface.SectionGeometry
	ColumnHeaderSections() surface.SectionGeometry
	HeaderWidth() int
	HeaderHeight() int
	BodyWidth() int
	BodyHeight() int
	ScrollX() int
	ScrollY() int
	Value(region model.Region, row, column int) any
}

// TypeByRegion returns the column type rendered at column of region.
func TypeByRegion(region model.Region, column int) model.ColumnType {
	if region.IsRowHeader() && column == 0 {
		return model.IndexColumn
	}
	return model.BodyColumn
}

// IsHeader reports whether d is a header cell.
func IsHeader(d *Data) bool {
	return d != nil && d.Region.IsHeader()
}

// Equal reports whether a and b address the same cell.
func Equal(a, b *Data) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Region == b.Region && a.Row == b.Row && a.Column == b.Column
}

// ColumnOffset returns the left edge of column in region, in unscrolled
// surface units.
func ColumnOffset(g Geometry, column int, region model.Region) int {
	if region.IsRowHeader() {
		return g.RowHeaderSections().OffsetOf(column)
	}
	return g.RowHeaderSections().Length() + g.ColumnSections().OffsetOf(column)
}

// Locate returns the cell under (x, y), or nil outside every section.
func Locate(g Geometry, x, y int) *Data {
	if x < 0 || y < 0 || x > g.HeaderWidth()+g.BodyWidth() || y > g.HeaderHeight()+g.BodyHeight() {
		return nil
	}

	if x < g.HeaderWidth() && y < g.HeaderHeight() {
		index, delta, ok := surface.FindSectionIndex(g.RowHeaderSections(), x)
		if !ok {
			return nil
		}
		return &Data{
			Region:    model.RegionCornerHeader,
			Type:      TypeByRegion(model.RegionCornerHeader, index),
			Column:    index,
			Delta:     delta,
			Offset:    ColumnOffset(g, index, model.RegionCornerHeader),
			OffsetTop: g.HeaderHeight(),
			Width:     g.RowHeaderSections().SizeOf(index),
			Value:     g.Value(model.RegionCornerHeader, 0, index),
		}
	}

	region := model.RegionBody
	sections := g.ColumnSections()
	pos := x + g.ScrollX() - g.HeaderWidth()
	if x < g.RowHeaderSections().Length() {
		region = model.RegionRowHeader
		sections = g.RowHeaderSections()
		pos = x
	}

	column, delta, ok := surface.FindSectionIndex(sections, pos)
	if !ok {
		return nil
	}
	row, _, rowOK := surface.FindSectionIndex(g.RowSections(), y+g.ScrollY()-g.HeaderHeight())
	offsetTop := 0
	if rowOK {
		offsetTop = g.RowSections().OffsetOf(row) + g.ColumnHeaderSections().Length()
	}
	d := &Data{
		Region:    region,
		Type:      TypeByRegion(region, column),
		Column:    column,
		Row:       row,
		Delta:     delta,
		Offset:    ColumnOffset(g, column, region),
		OffsetTop: offsetTop,
		Width:     sections.SizeOf(column),
	}
	if y < g.HeaderHeight() {
		d.Region = model.RegionColumnHeader
		d.Row = 0
		d.OffsetTop = 0
	}
	d.Value = g.Value(d.Region, d.Row, d.Column)
	return d
}
