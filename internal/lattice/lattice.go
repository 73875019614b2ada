package lattice

import "math"

// MinSpacing is the smallest spacing a lattice is built with.
const MinSpacing = 1.0

// GridPoint is one sample of the lattice. Origin is fixed at build time;
// X and Y hold the displaced position of the current frame.
type GridPoint struct {
	OriginX, OriginY float64
	X, Y             float64
}

// Lattice is a row-major grid of Cols x Rows points spaced Spacing apart.
// It overscans the viewport by one cell on the right and bottom edges.
type Lattice struct {
	Cols, Rows int
	Spacing    float64
	Points     []GridPoint
}

// Dims returns the column and row counts for a viewport.
func Dims(width, height, spacing float64) (cols, rows int) {
	spacing = clampSpacing(spacing)
	width, height = clampExtent(width), clampExtent(height)
	cols = int(math.Floor(width/spacing)) + 2
	rows = int(math.Floor(height/spacing)) + 2
	return cols, rows
}

// Build lays out a fresh lattice over width x height.
func Build(width, height, spacing float64) *Lattice {
	spacing = clampSpacing(spacing)
	cols, rows := Dims(width, height, spacing)

	l := &Lattice{
		Cols:    cols,
		Rows:    rows,
		Spacing: spacing,
		Points:  make([]GridPoint, 0, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x, y := float64(col)*spacing, float64(row)*spacing
			l.Points = append(l.Points, GridPoint{OriginX: x, OriginY: y, X: x, Y: y})
		}
	}
	return l
}

func (l *Lattice) Len() int { return len(l.Points) }

// At returns the point at (col, row), or nil when out of range.
func (l *Lattice) At(col, row int) *GridPoint {
	if col < 0 || row < 0 || col >= l.Cols || row >= l.Rows {
		return nil
	}
	return &l.Points[row*l.Cols+col]
}

// Segments visits every edge of the lattice: all horizontal edges row by
// row, then all vertical edges column by column.
func (l *Lattice) Segments(fn func(a, b *GridPoint)) {
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols-1; col++ {
			i := row*l.Cols + col
			fn(&l.Points[i], &l.Points[i+1])
		}
	}
	for col := 0; col < l.Cols; col++ {
		for row := 0; row < l.Rows-1; row++ {
			i := row*l.Cols + col
			fn(&l.Points[i], &l.Points[i+l.Cols])
		}
	}
}

// SegmentCount is the number of edges Segments visits.
func (l *Lattice) SegmentCount() int {
	if l.Cols == 0 || l.Rows == 0 {
		return 0
	}
	return l.Rows*(l.Cols-1) + l.Cols*(l.Rows-1)
}

func clampSpacing(s float64) float64 {
	if math.IsNaN(s) || s < MinSpacing {
		return MinSpacing
	}
	return s
}

func clampExtent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return 0
	}
	return v
}
