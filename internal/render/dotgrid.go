package render

import (
	"math"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

// DotGrid is a field of dots that swell under the pointer and ease back
// once it moves away.
type DotGrid struct {
	Spacing     float64
	DotSize     float64
	HeightScale float64
	Color       string

	fixedColor bool
	field      *proximity.Field
	dots       []proximity.Dot
	sized      bool
}

func NewDotGrid(cfg config.DotsConfig, clock config.ClockConfig, th theme.Theme) *DotGrid {
	var easing proximity.Easing = proximity.LerpEasing{Factor: cfg.Ease}
	if cfg.Easing == config.EasingSpring {
		easing = proximity.NewSpringEasing(clock.FPS, cfg.Frequency, cfg.Damping)
	}

	field := proximity.NewField(cfg.InteractionRadius, cfg.GrowthFactor, easing)
	field.Offset = proximity.Offset{X: cfg.OffsetX, Y: cfg.OffsetY}

	d := &DotGrid{
		Spacing:     cfg.Spacing,
		DotSize:     cfg.DotSize,
		HeightScale: cfg.HeightScale,
		Color:       cfg.Color,
		fixedColor:  cfg.Color != "",
		field:       field,
	}
	if !d.fixedColor {
		d.Color = th.Dot
	}
	return d
}

func (d *DotGrid) SetTheme(th theme.Theme) {
	if !d.fixedColor {
		d.Color = th.Dot
	}
}

// CanvasSize stretches the canvas vertically by HeightScale.
func (d *DotGrid) CanvasSize(w, h int) (int, int) {
	if d.HeightScale <= 1 {
		return w, h
	}
	return w, int(math.Round(float64(h) * d.HeightScale))
}

func (d *DotGrid) Resize(width, height int) {
	d.dots = proximity.BuildDots(float64(width), float64(height), d.Spacing, d.DotSize)
	d.sized = true
}

func (d *DotGrid) Dots() []proximity.Dot { return d.dots }

func (d *DotGrid) Field() *proximity.Field { return d.field }

// Advance eases dot sizes one frame without drawing.
func (d *DotGrid) Advance(in Input) {
	if d.sized {
		d.field.Step(d.dots, in.Pointer, in.HasPointer)
	}
}

func (d *DotGrid) Frame(s surface.Surface, in Input) error {
	if !d.sized {
		width, height := s.Size()
		d.Resize(width, height)
	}

	d.field.Step(d.dots, in.Pointer, in.HasPointer)

	s.Clear()
	for i := range d.dots {
		dot := &d.dots[i]
		if err := s.FillCircle(dot.X, dot.Y, dot.Size, d.Color); err != nil {
			return err
		}
	}
	return nil
}
