// Package model holds the plain data types shared by the grid packages: the
// host model record, per-column state, highlighter state, positions and
// regions.
//
// Types in this package carry no behavior beyond cloning and small value
// helpers. The state package owns every mutation.
package model
