package proximity

import "math"

const (
	DefaultSpacing = 30.0
	DefaultDotSize = 1.5
	DefaultRadius  = 100.0
	DefaultGrowth  = 2.5
)

// Dot is one element of the dot grid.
type Dot struct {
	X, Y     float64
	BaseSize float64
	Size     float64
	Velocity float64
}

// BuildDots places dots every spacing pixels strictly inside the canvas,
// starting one spacing in from the top-left corner.
func BuildDots(width, height, spacing, size float64) []Dot {
	if math.IsNaN(spacing) || spacing < 1 {
		spacing = 1
	}
	if math.IsNaN(width) || math.IsNaN(height) || width <= spacing || height <= spacing {
		return nil
	}
	nx := int(math.Ceil(width/spacing)) - 1
	ny := int(math.Ceil(height/spacing)) - 1
	dots := make([]Dot, 0, nx*ny)
	for x := spacing; x < width; x += spacing {
		for y := spacing; y < height; y += spacing {
			dots = append(dots, Dot{X: x, Y: y, BaseSize: size, Size: size})
		}
	}
	return dots
}

// TargetSize returns the grown size for a dot at distance d from the
// pointer, and false when the dot is out of range. A non-positive radius
// puts every dot out of range.
func TargetSize(base, d, radius, growth float64) (float64, bool) {
	if radius <= 0 || math.IsNaN(d) || d >= radius {
		return base, false
	}
	scale := 1 + (radius-d)/radius
	return base * scale * growth, true
}

// Offset maps window pointer coordinates into canvas coordinates for a
// canvas that does not start at the window origin.
type Offset struct {
	X, Y float64
}

// Field holds the dot-grid interaction tuning.
type Field struct {
	Radius float64
	Growth float64
	Offset Offset
	Easing Easing
}

func NewField(radius, growth float64, easing Easing) *Field {
	if easing == nil {
		easing = LerpEasing{Factor: DefaultEase}
	}
	return &Field{Radius: radius, Growth: growth, Easing: easing}
}

// Step updates every dot for one frame. Without a pointer all dots relax.
func (f *Field) Step(dots []Dot, s Sample, present bool) {
	px, py := s.X-f.Offset.X, s.Y-f.Offset.Y
	for i := range dots {
		d := &dots[i]
		if present {
			dist := math.Hypot(d.X-px, d.Y-py)
			if size, ok := TargetSize(d.BaseSize, dist, f.Radius, f.Growth); ok {
				d.Size = size
				d.Velocity = 0
				continue
			}
		}
		f.Easing.Relax(d)
	}
}
