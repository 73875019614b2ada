package render

import (
	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/lattice"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
	"github.com/san-kum/gridfx/internal/wave"
)

// WaveGrid is the breathing line grid: a lattice whose points drift on a
// noise field, stroked as one path per frame.
type WaveGrid struct {
	Spacing float64
	Params  wave.Params
	Shock   wave.Shock
	Style   surface.Style

	fixedColor bool
	clock      *wave.Clock
	lattice    *lattice.Lattice
}

func NewWaveGrid(cfg config.WaveConfig, clock config.ClockConfig, th theme.Theme) *WaveGrid {
	w := &WaveGrid{
		Spacing: cfg.GridSize,
		Params: wave.Params{
			WaveSpeed:  cfg.WaveSpeed,
			WaveHeight: cfg.WaveHeight,
			NoiseScale: cfg.NoiseScale,
		},
		Shock: wave.Shock{Strength: cfg.ShockStrength, Radius: cfg.InteractionRadius},
		Style: surface.Style{Color: cfg.LineColor, Width: cfg.LineWidth},
		clock: wave.NewClock(cfg.WaveSpeed, wave.ClockMode(clock.Mode)),
	}
	if clock.FPS > 0 {
		w.clock.ReferenceFPS = float64(clock.FPS)
	}
	w.fixedColor = cfg.LineColor != ""
	if !w.fixedColor {
		w.Style.Color = th.GridLine
	}
	return w
}

func (w *WaveGrid) SetTheme(th theme.Theme) {
	if !w.fixedColor {
		w.Style.Color = th.GridLine
	}
}

func (w *WaveGrid) Resize(width, height int) {
	w.lattice = lattice.Build(float64(width), float64(height), w.Spacing)
}

func (w *WaveGrid) Lattice() *lattice.Lattice { return w.lattice }

func (w *WaveGrid) Clock() *wave.Clock { return w.clock }

// Advance moves the clock one frame. Point positions are derived from the
// clock at draw time, so nothing else carries over.
func (w *WaveGrid) Advance(in Input) {
	w.clock.Advance(in.Now)
}

func (w *WaveGrid) Frame(s surface.Surface, in Input) error {
	if w.lattice == nil {
		width, height := s.Size()
		w.Resize(width, height)
	}

	wave.Apply(w.lattice, w.clock.T, w.Params)
	if in.HasPointer {
		wave.ApplyShock(w.lattice, w.Shock, in.Pointer.X, in.Pointer.Y)
	}

	s.Clear()
	s.BeginPath()
	w.lattice.Segments(func(a, b *lattice.GridPoint) {
		s.MoveTo(a.X, a.Y)
		s.LineTo(b.X, b.Y)
	})
	err := s.Stroke(w.Style)

	w.clock.Advance(in.Now)
	return err
}
