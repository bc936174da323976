// Package state holds the grid's single source of truth: the model record
// published by the host and one display state per column.
//
// # Overview
//
// Every write goes through Store.Dispatch with one of the actions defined
// in this package. The action set is closed; callers cannot add their own.
// Reads go through selector methods on State.
//
// # Dispatch
//
// Dispatch is copy-on-write:
//
//	store.Dispatch(state.UpdateColumnWidth{Key: key, Width: 120})
//	→ lock
//	→ next := clone(current)
//	→ action.apply(next)       // error: next is dropped, current kept
//	→ current = next
//	→ unlock
//	→ notify subscribers
//
// A State returned by Current is never written again, so a reader holding
// it sees a consistent value even while later actions are applied. Value
// matrices are shared between successive states; actions replace them
// wholesale instead of editing rows.
//
// # Column Positions
//
// Each body column renders either in the frozen row-header region or in
// the scrolling body region. Actions that change the order, the frozen set
// or visibility recompute positions in the same dispatch, so positions are
// never stale relative to those inputs:
//
//	order:   [a b c d]   frozen: {c}   hidden: {a}
//	result:  c → row-header 1
//	         b → body 0, d → body 1, a → body 2
//
// UpdateColumnPositions applies an explicit order and is idempotent.
//
// # Errors
//
// Writes addressed to a missing column fail with ErrUnknownColumn and
// leave the state unchanged. Reads never fail: ColumnState returns
// model.DefaultColumnState on a miss.
//
// # Subscribers
//
// Subscribe registers a callback that runs after each successful dispatch,
// outside the store lock. Callbacks may dispatch.
package state
