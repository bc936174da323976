// Package column owns the live grid columns.
//
// A Column is a thin handle over one column state in the store. Reads go
// to the store on every call; the only state a Column caches is its bound
// format function and the min, max and longest-string statistics, which
// are refreshed by explicit calls.
//
// Writes dispatch exactly one store action and then run the side effects
// that action implies (position recompute, resize, repaint) as explicit
// calls on the Grid. A write against a column whose state is gone is
// logged at debug level and dropped.
//
// Position implements header drag-to-reorder:
//
//	idle --StartDragging--> dragging --DropColumn/StopDragging--> idle
//
// StopDragging is safe to call in any state.
package column
