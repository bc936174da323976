package filter

import "errors"

var (
	// ErrSyntax is returned by Parse for malformed expressions.
	ErrSyntax = errors.New("syntax error")
	// ErrUndefined is returned when an expression names a variable the
	// scope does not bind.
	ErrUndefined = errors.New("undefined variable")
	// ErrType is returned for calls with the wrong arity and for member
	// access on null or undefined.
	ErrType = errors.New("type error")
)
