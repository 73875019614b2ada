package render

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface indicates Mount was called before a surface was ready.
	ErrNoSurface = errors.New("render: drawing surface unavailable")

	// ErrMounted indicates Mount was called on a renderer that is already running.
	ErrMounted = errors.New("render: renderer already mounted")

	// ErrUnmounted indicates an operation that needs a live renderer.
	ErrUnmounted = errors.New("render: renderer not mounted")
)

// FrameError wraps a failure raised while drawing a frame.
type FrameError struct {
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
