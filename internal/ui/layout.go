package ui

import "time"

// Screen rows around the grid.
const (
	// gridTop is the screen row of the grid's first header line.
	gridTop = 1
	// chromeLines are the title bar above the grid and the status and
	// help lines below it.
	chromeLines = 3
)

// Timing constants.
const (
	// FlushInterval is how often the grid's deferred repaints and resizes
	// are drained.
	FlushInterval = 50 * time.Millisecond

	// DoubleClickWindow bounds the gap between the two presses of a double
	// click.
	DoubleClickWindow = 400 * time.Millisecond

	// SearchDebounce is the pause after the last keystroke before a search
	// runs.
	SearchDebounce = 250 * time.Millisecond

	// LogRefreshInterval is the refresh period of the open log overlay.
	LogRefreshInterval = time.Second
)

// Overlay limits.
const (
	// LogTailLines is the number of log lines the overlay keeps.
	LogTailLines = 500

	// TooltipWidth is the wrap width of cell tooltips.
	TooltipWidth = 40

	// modalWidth is the width of the help and menu boxes.
	modalWidth = 44
)
