package render

import (
	"context"
	"time"

	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/surface"
)

type CaptureOptions struct {
	// Frames is the number of frames handed to the callback.
	Frames int
	// Skip frames run before the first kept frame. Effects that implement
	// Advancer step through them without drawing.
	Skip int
	// Width and Height default to the surface size.
	Width, Height int
	Start         time.Time
	Step          time.Duration
	Pointer       *proximity.Sample
}

// Capture draws frames of e onto s on a fixed time step, without a
// scheduler. fn runs after each kept frame with its zero-based index.
func Capture(ctx context.Context, e Effect, s surface.Surface, opts CaptureOptions, fn func(frame int) error) error {
	if s == nil {
		return ErrNoSurface
	}
	if opts.Step <= 0 {
		opts.Step = time.Second / 60
	}
	if opts.Start.IsZero() {
		opts.Start = time.Unix(0, 0)
	}
	w, h := s.Size()
	if opts.Width > 0 {
		w = opts.Width
	}
	if opts.Height > 0 {
		h = opts.Height
	}
	if err := fit(e, s, w, h); err != nil {
		return err
	}

	total := opts.Skip + opts.Frames
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		in := Input{Now: opts.Start.Add(time.Duration(i) * opts.Step)}
		if opts.Pointer != nil {
			in.Pointer, in.HasPointer = *opts.Pointer, true
		}
		if i < opts.Skip {
			if adv, ok := e.(Advancer); ok {
				adv.Advance(in)
				continue
			}
		}
		if err := e.Frame(s, in); err != nil {
			return &FrameError{Frame: uint64(i), Err: err}
		}
		if i < opts.Skip || fn == nil {
			continue
		}
		if err := fn(i - opts.Skip); err != nil {
			return err
		}
	}
	return nil
}
