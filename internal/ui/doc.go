// Package ui renders a grid in the terminal with Bubble Tea.
//
// The grid engine in package grid measures everything in terminal cells
// here. Host implements the engine's paint surface, scroll viewport and host
// capabilities; Model drives the engine from key, mouse and timer messages
// and paints it onto a character canvas once per repaint request.
//
// # Event Flow
//
//  1. Run starts the program and the optional Feed goroutine.
//  2. A tick every FlushInterval drains the grid's deferred work and the
//     callbacks posted by debounced searches.
//  3. Key and mouse messages become grid events. Keys that act on a column
//     use the column of the focused cell.
//  4. UpdateMsg replaces or patches the model record.
//
// The single-key cell shortcuts (h, u, b and the digits) reach the grid only
// while it holds the keyboard focus.
package ui
