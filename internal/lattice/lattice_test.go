package lattice

import (
	"math"
	"testing"
)

func TestDims(t *testing.T) {
	tests := []struct {
		w, h, spacing float64
		cols, rows    int
	}{
		{800, 600, 20, 42, 32},
		{1920, 1080, 25, 78, 45},
		{0, 0, 20, 2, 2},
		{19, 19, 20, 2, 2},
		{100, 50, 0, 102, 52},
		{100, 50, -5, 102, 52},
		{-10, -10, 10, 2, 2},
	}

	for _, tt := range tests {
		cols, rows := Dims(tt.w, tt.h, tt.spacing)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("Dims(%v, %v, %v) = %d x %d, want %d x %d", tt.w, tt.h, tt.spacing, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestBuild_EndToEndCount(t *testing.T) {
	l := Build(800, 600, 20)
	if l.Len() != 1344 {
		t.Fatalf("expected 1344 points, got %d", l.Len())
	}
	if l.Cols*l.Rows != l.Len() {
		t.Errorf("cols*rows = %d, len = %d", l.Cols*l.Rows, l.Len())
	}
}

func TestBuild_RowMajorOrigins(t *testing.T) {
	l := Build(100, 60, 20)
	for i, p := range l.Points {
		col, row := i%l.Cols, i/l.Cols
		if p.OriginX != float64(col)*20 || p.OriginY != float64(row)*20 {
			t.Fatalf("point %d origin = (%v, %v), want (%v, %v)", i, p.OriginX, p.OriginY, float64(col)*20, float64(row)*20)
		}
		if p.X != p.OriginX || p.Y != p.OriginY {
			t.Fatalf("point %d not at rest", i)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(1234, 567, 17)
	b := Build(1234, 567, 17)
	if a.Len() != b.Len() {
		t.Fatalf("length differs: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs", i)
		}
	}
}

func TestBuild_ResizeIndependentOfPrior(t *testing.T) {
	first := Build(300, 200, 20)
	first.Points[0].X = 99

	second := Build(640, 480, 20)
	want := (int(math.Floor(640.0/20)) + 2) * (int(math.Floor(480.0/20)) + 2)
	if second.Len() != want {
		t.Errorf("expected %d points, got %d", want, second.Len())
	}
	if second.Points[0].X != 0 {
		t.Error("new lattice must not carry prior state")
	}
}

func TestAt(t *testing.T) {
	l := Build(40, 40, 20)
	p := l.At(2, 1)
	if p == nil || p.OriginX != 40 || p.OriginY != 20 {
		t.Errorf("At(2,1) = %+v", p)
	}
	if l.At(-1, 0) != nil || l.At(l.Cols, 0) != nil || l.At(0, l.Rows) != nil {
		t.Error("expected nil for out-of-range")
	}
}

func TestSegments(t *testing.T) {
	l := Build(60, 40, 20)
	count := 0
	l.Segments(func(a, b *GridPoint) {
		dx, dy := b.OriginX-a.OriginX, b.OriginY-a.OriginY
		if !(dx == 20 && dy == 0) && !(dx == 0 && dy == 20) {
			t.Errorf("segment is not a lattice edge: (%v,%v)->(%v,%v)", a.OriginX, a.OriginY, b.OriginX, b.OriginY)
		}
		count++
	})
	if count != l.SegmentCount() {
		t.Errorf("visited %d segments, SegmentCount = %d", count, l.SegmentCount())
	}
}
