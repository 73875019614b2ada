package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

// BrailleSVG turns a terminal snapshot into an SVG with one circle per lit
// braille dot, dots drawn scale pixels apart.
func BrailleSVG(b *surface.Braille, scale float64, th theme.Theme) string {
	if b == nil {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	dotsX, dotsY := b.Width*2, b.Height*4
	width := float64(dotsX) * scale
	height := float64(dotsY) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, th.Background, string(th.Primary)))

	r := scale * 0.4
	for y := 0; y < dotsY; y++ {
		for x := 0; x < dotsX; x++ {
			if !b.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
