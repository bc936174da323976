package kernel

import "errors"

// ErrClosed is returned by Send and Stream after Close.
var ErrClosed = errors.New("kernel client closed")
