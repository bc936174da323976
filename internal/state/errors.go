package state

import "errors"

var (
	// ErrEmptyModel is returned when a store is built from a record with no
	// columns and no values.
	ErrEmptyModel = errors.New("empty model data")
	// ErrUnknownColumn is returned by writes that target a column the
	// store does not hold. The dispatch leaves the state unchanged.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInvalidWidth is returned when a column width is negative.
	ErrInvalidWidth = errors.New("invalid column width")
)
