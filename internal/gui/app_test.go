package gui

import "testing"

func TestClampScroll(t *testing.T) {
	tests := []struct {
		scroll float32
		ch, sh int
		want   float32
	}{
		{-10, 3600, 720, 0},
		{100, 3600, 720, 100},
		{5000, 3600, 720, 2880},
		{50, 600, 720, 0},
	}
	for _, tt := range tests {
		if got := clampScroll(tt.scroll, tt.ch, tt.sh); got != tt.want {
			t.Errorf("clampScroll(%v, %d, %d) = %v, want %v", tt.scroll, tt.ch, tt.sh, got, tt.want)
		}
	}
}

func TestToColor(t *testing.T) {
	c := toColor("#ffffff14")
	if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 0x14 {
		t.Errorf("unexpected color %+v", c)
	}
	if toColor("").A != 0 {
		t.Error("empty color should be transparent")
	}
}
