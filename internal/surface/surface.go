package surface

import "github.com/five82/tablegrid/internal/model"

// SectionGeometry is one axis of one grid region: a run of rows or
// columns with individual sizes.
type SectionGeometry interface {
	// Count is the number of sections.
	Count() int
	// Length is the sum of all section sizes.
	Length() int
	// OffsetOf returns the start of section i, or -1 when out of range.
	OffsetOf(i int) int
	// SizeOf returns the size of section i, or -1 when out of range.
	SizeOf(i int) int
	// IndexOf returns the section containing offset, or -1.
	IndexOf(offset int) int
	// Resize sets the size of section i.
	Resize(i, size int)
}

// PaintSurface triggers repaints.
type PaintSurface interface {
	RepaintBody()
	RepaintRegion(region model.Region)
}

// ScrollController exposes the body viewport.
type ScrollController interface {
	ScrollTo(x, y int)
	ScrollX() int
	ScrollY() int
	PageWidth() int
	PageHeight() int
}

// FindSectionIndex returns the section containing pos and the distance of
// pos from that section's start.
func FindSectionIndex(list SectionGeometry, pos int) (index, delta int, ok bool) {
	if list.Count() == 0 || pos < 0 || pos > list.Length() {
		return 0, 0, false
	}
	index = list.IndexOf(pos)
	if index < 0 {
		return 0, 0, false
	}
	return index, pos - list.OffsetOf(index), true
}
