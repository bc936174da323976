// Package cell maps surface coordinates to logical cells and tracks the
// focused cell and the selection range.
//
// # Coordinates
//
// Locate takes viewport-relative coordinates: x grows right from the left
// edge of the row header, y grows down from the top of the column header.
// Body coordinates are shifted by the scroll offsets; row-header columns do
// not scroll horizontally.
//
// # Column numbering
//
// Column indexes are local to a region. In the row-header region, column 0
// is the index column and 1..N are the frozen columns. Body columns start
// at 0 after the frozen ones. Selection ranges convert to a global column
// number by offsetting body columns with the row-header column count.
package cell
