package wave

import (
	"math"
	"time"

	"github.com/san-kum/gridfx/internal/lattice"
)

const (
	// DefaultReferenceFPS is the frame rate a delta clock normalizes against.
	DefaultReferenceFPS = 60.0
	maxFrameGap         = 250 * time.Millisecond
)

// Noise is a bounded pseudo-noise field in [0, 1]. Coordinates are folded
// onto a 256x256 integer tile before the sinusoids are evaluated.
func Noise(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0.5
	}
	fx, fy := fold(x), fold(y)
	return math.Sin(fx*0.1+fy*0.1)*math.Cos(fx*0.11+fy*0.09)*0.5 + 0.5
}

func fold(v float64) float64 {
	f := math.Mod(math.Floor(v), 256)
	if f < 0 {
		f += 256
	}
	return f
}

// Params tunes the breathing motion of the wave grid.
type Params struct {
	WaveSpeed  float64
	WaveHeight float64
	NoiseScale float64
}

// Displace returns the frame position of a point anchored at (ox, oy).
// The x and y components come from separate noise lookups so the axes
// never move in lockstep.
func Displace(ox, oy, t float64, p Params) (x, y float64) {
	s := p.NoiseScale
	nx := Noise(ox*s, oy*s+t)
	ny := Noise(ox*s+t, oy*s)
	return ox + (nx*2-1)*p.WaveHeight, oy + (ny*2-1)*p.WaveHeight
}

// Shock pushes points near the pointer outward.
type Shock struct {
	Strength float64
	Radius   float64
}

func (s Shock) Enabled() bool { return s.Strength > 0 && s.Radius > 0 }

// Offset returns the push for a point at (x, y) with the pointer at (px, py).
func (s Shock) Offset(x, y, px, py float64) (dx, dy float64) {
	if !s.Enabled() {
		return 0, 0
	}
	ddx, ddy := x-px, y-py
	d := math.Hypot(ddx, ddy)
	if d >= s.Radius || d == 0 {
		return 0, 0
	}
	push := (1 - d/s.Radius) * s.Strength
	return ddx / d * push, ddy / d * push
}

// Apply displaces every point of l for clock time t.
func Apply(l *lattice.Lattice, t float64, p Params) {
	for i := range l.Points {
		pt := &l.Points[i]
		pt.X, pt.Y = Displace(pt.OriginX, pt.OriginY, t, p)
	}
}

// ApplyShock adds the shock push on top of an already displaced lattice.
func ApplyShock(l *lattice.Lattice, s Shock, px, py float64) {
	if !s.Enabled() {
		return
	}
	for i := range l.Points {
		pt := &l.Points[i]
		dx, dy := s.Offset(pt.OriginX, pt.OriginY, px, py)
		pt.X += dx
		pt.Y += dy
	}
}
