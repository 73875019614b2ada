package proximity

import "sync/atomic"

// Sample is a pointer position in canvas coordinates.
type Sample struct {
	X, Y float64
}

// Pointer is the last known pointer position. Input producers write it from
// their own goroutine; the frame loop reads it without blocking.
type Pointer struct {
	p atomic.Pointer[Sample]
}

func (p *Pointer) Move(x, y float64) {
	p.p.Store(&Sample{X: x, Y: y})
}

// Leave forgets the pointer, e.g. when it exits the window.
func (p *Pointer) Leave() {
	p.p.Store(nil)
}

// Load returns the last sample and whether the pointer is present.
func (p *Pointer) Load() (Sample, bool) {
	s := p.p.Load()
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}
