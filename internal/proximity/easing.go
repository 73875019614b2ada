package proximity

import "github.com/charmbracelet/harmonica"

// DefaultEase is the per-frame fraction a dot closes toward its base size.
const DefaultEase = 0.1

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Easing relaxes an out-of-range dot back toward its base size.
type Easing interface {
	Relax(d *Dot)
}

// LerpEasing closes a fixed fraction of the gap each frame, which decays
// the gap exponentially.
type LerpEasing struct {
	Factor float64
}

func (e LerpEasing) Relax(d *Dot) {
	f := e.Factor
	if f <= 0 || f > 1 {
		f = DefaultEase
	}
	d.Size = Lerp(d.Size, d.BaseSize, f)
	d.Velocity = 0
}

// SpringEasing settles dots with a damped spring instead of a lerp.
type SpringEasing struct {
	spring harmonica.Spring
}

func NewSpringEasing(fps int, frequency, damping float64) SpringEasing {
	if fps <= 0 {
		fps = 60
	}
	return SpringEasing{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (e SpringEasing) Relax(d *Dot) {
	d.Size, d.Velocity = e.spring.Update(d.Size, d.Velocity, d.BaseSize)
}

// stepsToConverge is how many lerp steps shrink a gap of gap to within eps.
func stepsToConverge(gap, eps, factor float64) int {
	if gap < 0 {
		gap = -gap
	}
	if gap <= eps {
		return 0
	}
	if factor <= 0 || factor > 1 {
		factor = DefaultEase
	}
	n := 0
	for gap > eps {
		gap *= 1 - factor
		n++
	}
	return n
}
