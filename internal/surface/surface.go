package surface

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// Surface is a 2D immediate-mode drawing target sized in logical pixels.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int) error
	Clear()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke(style Style) error
	FillCircle(x, y, r float64, color string) error
}

// Style describes how a path is stroked.
type Style struct {
	Color string
	Width float64
}

// ParseColor reads "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA".
func ParseColor(hex string) color.NRGBA {
	c := gg.Hex(hex)
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

type segment struct {
	x0, y0, x1, y1 float64
}

// path collects move/line commands into segments for surfaces that draw
// lines one at a time.
type path struct {
	segs       []segment
	penX, penY float64
	hasPen     bool
}

func (p *path) begin() {
	p.segs = p.segs[:0]
	p.hasPen = false
}

func (p *path) moveTo(x, y float64) {
	p.penX, p.penY, p.hasPen = x, y, true
}

func (p *path) lineTo(x, y float64) {
	if !p.hasPen {
		p.moveTo(x, y)
		return
	}
	p.segs = append(p.segs, segment{p.penX, p.penY, x, y})
	p.penX, p.penY = x, y
}
