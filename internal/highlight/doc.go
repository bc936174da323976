// Package highlight computes per-cell background colors from the
// highlighters attached to columns.
//
// A highlighter is built from a stored model.HighlighterState and a live
// column. Its min and max fall back to the column statistics. The Manager
// keeps the registered highlighters in insertion order and resolves a
// cell by letting the last matching highlighter win. BackgroundColor then
// layers focus and selection on top.
package highlight
