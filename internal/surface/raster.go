package surface

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
)

// Raster draws into an anti-aliased software pixmap.
type Raster struct {
	dc         *gg.Context
	background string
}

func NewRaster(width, height int, background string) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	return &Raster{dc: gg.NewContext(width, height), background: background}, nil
}

func (r *Raster) Size() (int, int) { return r.dc.Width(), r.dc.Height() }

func (r *Raster) Resize(width, height int) error {
	return r.dc.Resize(width, height)
}

func (r *Raster) Clear() {
	r.dc.ClearPath()
	if r.background == "" {
		r.dc.Clear()
		return
	}
	r.dc.ClearWithColor(gg.Hex(r.background))
}

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) Stroke(style Style) error {
	r.dc.SetColor(ParseColor(style.Color))
	r.dc.SetLineWidth(style.Width)
	return r.dc.Stroke()
}

func (r *Raster) FillCircle(x, y, radius float64, color string) error {
	r.dc.DrawCircle(x, y, radius)
	r.dc.SetColor(ParseColor(color))
	return r.dc.Fill()
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) Close() error { return r.dc.Close() }
