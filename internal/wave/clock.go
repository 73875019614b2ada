package wave

import "time"

type ClockMode string

const (
	// ClockFixed advances by Speed once per frame regardless of frame time.
	ClockFixed ClockMode = "fixed"
	// ClockDelta advances by Speed per reference frame of elapsed time.
	ClockDelta ClockMode = "delta"
)

// Clock drives the noise field. T only ever grows.
type Clock struct {
	T            float64
	Speed        float64
	Mode         ClockMode
	ReferenceFPS float64

	last time.Time
}

func NewClock(speed float64, mode ClockMode) *Clock {
	if mode != ClockDelta {
		mode = ClockFixed
	}
	return &Clock{Speed: speed, Mode: mode, ReferenceFPS: DefaultReferenceFPS}
}

// Advance moves the clock forward by one frame observed at now.
func (c *Clock) Advance(now time.Time) {
	if c.Mode != ClockDelta {
		c.T += c.Speed
		return
	}

	fps := c.ReferenceFPS
	if fps <= 0 {
		fps = DefaultReferenceFPS
	}
	frames := 1.0
	if !c.last.IsZero() {
		gap := now.Sub(c.last)
		if gap < 0 {
			gap = 0
		}
		if gap > maxFrameGap {
			gap = maxFrameGap
		}
		frames = gap.Seconds() * fps
	}
	c.last = now
	c.T += c.Speed * frames
}

// Reset rewinds to t=0 and forgets the last frame time.
func (c *Clock) Reset() {
	c.T = 0
	c.last = time.Time{}
}
