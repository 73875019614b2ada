package surface

import (
	"fmt"
	"strings"
)

// SVG records frames as a standalone SVG document: one <path> per stroke
// and one <circle> per fill.
type SVG struct {
	width, height int
	background    string

	body strings.Builder
	d    strings.Builder
}

func NewSVG(width, height int, background string) *SVG {
	return &SVG{width: width, height: height, background: background}
}

func (s *SVG) Size() (int, int) { return s.width, s.height }

func (s *SVG) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("svg: invalid size %dx%d", width, height)
	}
	s.width, s.height = width, height
	s.Clear()
	return nil
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.d.Reset()
}

func (s *SVG) BeginPath() { s.d.Reset() }

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.d, "M%.1f,%.1f", x, y)
}

func (s *SVG) LineTo(x, y float64) {
	if s.d.Len() == 0 {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.d, "L%.1f,%.1f", x, y)
}

func (s *SVG) Stroke(style Style) error {
	if s.d.Len() == 0 {
		return nil
	}
	rgb, opacity := svgColor(style.Color)
	fmt.Fprintf(&s.body, `<path fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" d="%s"/>
`, rgb, opacity, style.Width, s.d.String())
	s.d.Reset()
	return nil
}

func (s *SVG) FillCircle(x, y, r float64, color string) error {
	rgb, opacity := svgColor(color)
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, x, y, r, rgb, opacity)
	return nil
}

// Bytes returns the current frame as a complete SVG document.
func (s *SVG) Bytes() []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height))
	if s.background != "" {
		rgb, opacity := svgColor(s.background)
		sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s" fill-opacity="%.3f"/>
`, rgb, opacity))
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

func svgColor(hex string) (string, float64) {
	c := ParseColor(hex)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255
}
