// Package surface declares the rendering collaborators the grid engine
// paints through and provides Sections, a SectionGeometry backed by a base
// size with per-section overrides.
//
// Units are whatever the host measures in: pixels for a canvas, cells for
// a terminal.
package surface
