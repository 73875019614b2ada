package render

import (
	"time"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

// Input is what an effect sees at the start of a frame.
type Input struct {
	Now        time.Time
	Pointer    proximity.Sample
	HasPointer bool
}

// Effect is one animated background.
type Effect interface {
	// Resize rebuilds the effect for a canvas of width x height.
	Resize(width, height int)
	// Frame updates the effect and draws it onto s.
	Frame(s surface.Surface, in Input) error
}

// Themed effects can switch colors without a rebuild.
type Themed interface {
	SetTheme(th theme.Theme)
}

// Advancer effects can step their state forward without drawing.
type Advancer interface {
	Advance(in Input)
}

// CanvasSizer effects want a canvas of a different size than the viewport.
type CanvasSizer interface {
	CanvasSize(viewWidth, viewHeight int) (int, int)
}

// NewEffect builds the effect a config describes.
func NewEffect(cfg *config.Config, th theme.Theme) Effect {
	if cfg.Effect == config.EffectDots {
		return NewDotGrid(cfg.Dots, cfg.Clock, th)
	}
	return NewWaveGrid(cfg.Wave, cfg.Clock, th)
}

func canvasSize(e Effect, w, h int) (int, int) {
	if cs, ok := e.(CanvasSizer); ok {
		return cs.CanvasSize(w, h)
	}
	return w, h
}

// fit sizes the surface and the effect for a viewport of w x h.
func fit(e Effect, s surface.Surface, w, h int) error {
	cw, ch := canvasSize(e, w, h)
	if sw, sh := s.Size(); sw != cw || sh != ch {
		if err := s.Resize(cw, ch); err != nil {
			return err
		}
	}
	e.Resize(cw, ch)
	return nil
}
