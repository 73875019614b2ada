package proximity

import (
	"math"
	"sync"
	"testing"
)

func TestPointer(t *testing.T) {
	var p Pointer
	if _, ok := p.Load(); ok {
		t.Fatal("new pointer should be absent")
	}
	p.Move(3, 4)
	s, ok := p.Load()
	if !ok || s.X != 3 || s.Y != 4 {
		t.Errorf("Load = %+v, %v", s, ok)
	}
	p.Leave()
	if _, ok := p.Load(); ok {
		t.Error("pointer should be absent after Leave")
	}
}

func TestPointer_ConcurrentWriter(t *testing.T) {
	var p Pointer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p.Move(float64(i), float64(i))
		}
	}()
	for i := 0; i < 1000; i++ {
		if s, ok := p.Load(); ok && s.X != s.Y {
			t.Fatalf("torn sample %+v", s)
		}
	}
	wg.Wait()
}

func TestTargetSize_Monotonic(t *testing.T) {
	base, radius, growth := 1.5, 100.0, 2.5
	prev := math.Inf(1)
	for d := 0.0; d < radius; d += 0.5 {
		size, ok := TargetSize(base, d, radius, growth)
		if !ok {
			t.Fatalf("d=%v should be in range", d)
		}
		if size > prev {
			t.Fatalf("size grew with distance at d=%v", d)
		}
		prev = size
	}

	if size, _ := TargetSize(base, 0, radius, growth); size != base*2*growth {
		t.Errorf("size under pointer = %v, want %v", size, base*2*growth)
	}
}

func TestTargetSize_OutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		d, radius float64
	}{
		{"beyond", 150, 100},
		{"on edge", 100, 100},
		{"zero radius", 0, 0},
		{"negative radius", 0, -10},
		{"nan distance", math.NaN(), 100},
	}
	for _, tt := range tests {
		size, ok := TargetSize(1.5, tt.d, tt.radius, 2.5)
		if ok {
			t.Errorf("%s: expected out of range", tt.name)
		}
		if size != 1.5 || math.IsNaN(size) {
			t.Errorf("%s: size = %v", tt.name, size)
		}
	}
}

func TestLerpEasing_Converges(t *testing.T) {
	d := Dot{BaseSize: 1.5, Size: 1.5 * 2 * 2.5}
	n := stepsToConverge(d.Size-d.BaseSize, 1e-3, DefaultEase)
	e := LerpEasing{Factor: DefaultEase}
	for i := 0; i < n; i++ {
		e.Relax(&d)
	}
	if math.Abs(d.Size-d.BaseSize) > 1e-3 {
		t.Errorf("after %d steps size = %v, base = %v", n, d.Size, d.BaseSize)
	}
	if n > 100 {
		t.Errorf("convergence took %d steps", n)
	}
}

func TestStepsToConverge_UnitGap(t *testing.T) {
	n := stepsToConverge(1, 1e-3, 0.1)
	if n < 60 || n > 70 {
		t.Errorf("unit gap converged in %d steps", n)
	}
	if stepsToConverge(0.0001, 1e-3, 0.1) != 0 {
		t.Error("gap inside eps needs no steps")
	}
}

func TestSpringEasing_Settles(t *testing.T) {
	e := NewSpringEasing(60, 6, 1)
	d := Dot{BaseSize: 1.5, Size: 7.5}
	for i := 0; i < 600; i++ {
		e.Relax(&d)
	}
	if math.Abs(d.Size-d.BaseSize) > 1e-3 {
		t.Errorf("spring did not settle: %v", d.Size)
	}
}

func TestBuildDots(t *testing.T) {
	dots := BuildDots(100, 70, 30, 1.5)
	// x in {30,60,90}, y in {30,60}
	if len(dots) != 6 {
		t.Fatalf("expected 6 dots, got %d", len(dots))
	}
	if dots[0].X != 30 || dots[0].Y != 30 || dots[1].Y != 60 {
		t.Errorf("unexpected layout: %+v", dots[:2])
	}
	for _, d := range dots {
		if d.X >= 100 || d.Y >= 70 {
			t.Errorf("dot outside canvas: %+v", d)
		}
	}
	if BuildDots(10, 10, 30, 1.5) != nil {
		t.Error("canvas smaller than spacing has no dots")
	}
}

func TestField_Step(t *testing.T) {
	dots := BuildDots(300, 300, 30, 1.5)
	f := NewField(100, 2.5, nil)

	f.Step(dots, Sample{X: 30, Y: 30}, true)
	if dots[0].Size != 1.5*2*2.5 {
		t.Errorf("dot under pointer size = %v", dots[0].Size)
	}
	far := dots[len(dots)-1]
	if far.Size != far.BaseSize {
		t.Errorf("far dot grew: %v", far.Size)
	}

	f.Step(dots, Sample{}, false)
	want := Lerp(7.5, 1.5, DefaultEase)
	if math.Abs(dots[0].Size-want) > 1e-12 {
		t.Errorf("relaxed size = %v, want %v", dots[0].Size, want)
	}
}

func TestField_Offset(t *testing.T) {
	dots := BuildDots(100, 100, 30, 1)
	f := NewField(10, 2, nil)
	f.Offset = Offset{Y: 500}
	f.Step(dots, Sample{X: 30, Y: 530}, true)
	if dots[0].Size != 4 {
		t.Errorf("offset pointer should hit the first dot, size = %v", dots[0].Size)
	}
}

func TestField_ZeroRadiusNeverGrows(t *testing.T) {
	dots := BuildDots(100, 100, 30, 1)
	f := NewField(0, 2.5, nil)
	f.Step(dots, Sample{X: 30, Y: 30}, true)
	for _, d := range dots {
		if d.Size != d.BaseSize || math.IsNaN(d.Size) {
			t.Fatalf("dot changed with zero radius: %+v", d)
		}
	}
}
