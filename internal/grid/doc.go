// Package grid is the coordinator of one table grid.
//
// # Overview
//
// A Grid owns every engine component of a single table and exposes the
// surface a host draws and drives:
//
//	┌──────────────┐
//	│  grid.New()  │ model record → store
//	└──────┬───────┘
//	       ├─────> row.New()            rows in render order
//	       ├─────> column.New()         columns, positions, drag
//	       ├─────> initial size         section widths, header height
//	       ├─────> highlight.New()      stored highlighters
//	       └─────> cell managers        focus and selection
//
// The host reads cells through CellConfig, FormattedValue,
// BackgroundColor, TextColor, Alignment, Renderer and Tooltip, and feeds
// pointer and keyboard input through the Handle* methods.
//
// # Units
//
// Every size is in surface units. Metrics carries the constants the grid
// sizes with; DefaultMetrics uses canvas pixels and TerminalMetrics uses
// character cells.
//
// # Threading
//
// The grid is single-threaded. Store changes are throttled into
// PaintSurface.RepaintBody at most once per RepaintInterval; resizes are
// throttled per ResizeInterval. Deferred calls are queued by their timers
// and run on the host's thread by Flush, so a host must call Flush from
// its loop (the TUI does so on every tick).
//
// # Outbound messages
//
// Double clicks and kernel context menu items emit comm messages on the
// grid's Signal.
package grid
