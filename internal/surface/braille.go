package surface

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Braille is a terminal canvas. Each cell holds 2x4 dots and each dot
// covers Scale logical pixels.
type Braille struct {
	Width, Height int // cells
	Scale         float64
	Grid          [][]rune

	path path
}

func NewBraille(cols, rows int, scale float64) *Braille {
	if scale <= 0 {
		scale = 1
	}
	b := &Braille{Scale: scale}
	b.alloc(cols, rows)
	return b
}

func (b *Braille) alloc(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b.Width, b.Height = cols, rows
	b.Grid = make([][]rune, rows)
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
	}
	b.Clear()
}

// Size is the canvas extent in logical pixels.
func (b *Braille) Size() (int, int) {
	return int(float64(b.Width*2) * b.Scale), int(float64(b.Height*4) * b.Scale)
}

// Resize reallocates the grid to cover width x height logical pixels.
func (b *Braille) Resize(width, height int) error {
	cols := int(math.Ceil(float64(width) / (2 * b.Scale)))
	rows := int(math.Ceil(float64(height) / (4 * b.Scale)))
	b.alloc(cols, rows)
	return nil
}

// Set sets a dot at sub-pixel (x, y). The grid is Width*2 x Height*4 dots.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height {
		return
	}
	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at sub-pixel (x, y) is lit.
func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height {
		return false
	}
	return b.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (b *Braille) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line between sub-pixels using Bresenham's algorithm.
func (b *Braille) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Braille) BeginPath()          { b.path.begin() }
func (b *Braille) MoveTo(x, y float64) { b.path.moveTo(x, y) }
func (b *Braille) LineTo(x, y float64) { b.path.lineTo(x, y) }

// Stroke rasterizes the current path. Color and width are left to the host
// that renders the cells.
func (b *Braille) Stroke(Style) error {
	maxX, maxY := float64(b.Width*2), float64(b.Height*4)
	for _, s := range b.path.segs {
		x0, y0 := s.x0/b.Scale, s.y0/b.Scale
		x1, y1 := s.x1/b.Scale, s.y1/b.Scale
		if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= maxX && x1 >= maxX) || (y0 >= maxY && y1 >= maxY) {
			continue
		}
		b.DrawLine(round(x0), round(y0), round(x1), round(y1))
	}
	b.path.begin()
	return nil
}

// FillCircle lights every dot within r of (x, y); a dot is always lit at
// the center so small circles stay visible.
func (b *Braille) FillCircle(x, y, r float64, _ string) error {
	cx, cy, cr := x/b.Scale, y/b.Scale, r/b.Scale
	b.Set(round(cx), round(cy))
	for py := int(math.Floor(cy - cr)); py <= int(math.Ceil(cy+cr)); py++ {
		for px := int(math.Floor(cx - cr)); px <= int(math.Ceil(cx+cr)); px++ {
			if math.Hypot(float64(px)-cx, float64(py)-cy) <= cr {
				b.Set(px, py)
			}
		}
	}
	return nil
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row) + "\n")
	}
	return sb.String()
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
