package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/gridfx/internal/surface"
)

type segment struct {
	a, b rl.Vector2
}

// Surface draws into an off-screen render texture so a paused effect keeps
// its last frame on screen.
type Surface struct {
	width, height int
	background    rl.Color
	target        rl.RenderTexture2D
	loaded        bool
	active        bool

	segs   []segment
	pen    rl.Vector2
	hasPen bool
}

func NewSurface(width, height int, background string) *Surface {
	s := &Surface{background: toColor(background)}
	s.alloc(width, height)
	return s
}

func toColor(hex string) rl.Color {
	if hex == "" {
		return rl.Blank
	}
	c := surface.ParseColor(hex)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (s *Surface) alloc(width, height int) {
	s.width, s.height = max(width, 1), max(height, 1)
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(int32(s.width), int32(s.height))
	s.loaded = true
}

// Begin routes drawing into the texture until End.
func (s *Surface) Begin() {
	rl.BeginTextureMode(s.target)
	s.active = true
}

func (s *Surface) End() {
	rl.EndTextureMode()
	s.active = false
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) Resize(width, height int) error {
	active := s.active
	if active {
		s.End()
	}
	s.alloc(width, height)
	if active {
		s.Begin()
	}
	return nil
}

func (s *Surface) SetBackground(hex string) { s.background = toColor(hex) }

func (s *Surface) Clear() {
	rl.ClearBackground(s.background)
	s.BeginPath()
}

func (s *Surface) BeginPath() {
	s.segs = s.segs[:0]
	s.hasPen = false
}

func (s *Surface) MoveTo(x, y float64) {
	s.pen = rl.NewVector2(float32(x), float32(y))
	s.hasPen = true
}

func (s *Surface) LineTo(x, y float64) {
	p := rl.NewVector2(float32(x), float32(y))
	if s.hasPen {
		s.segs = append(s.segs, segment{s.pen, p})
	}
	s.pen = p
	s.hasPen = true
}

func (s *Surface) Stroke(style surface.Style) error {
	col := toColor(style.Color)
	w := float32(style.Width)
	for _, seg := range s.segs {
		rl.DrawLineEx(seg.a, seg.b, w, col)
	}
	s.BeginPath()
	return nil
}

func (s *Surface) FillCircle(x, y, r float64, color string) error {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(color))
	return nil
}

// Blit draws the window-sized slice of the texture starting at scroll.
func (s *Surface) Blit(screenW, screenH int, scroll float32) {
	h := float32(min(screenH, s.height))
	// render textures are stored upside down
	src := rl.NewRectangle(0, float32(s.height)-scroll-h, float32(s.width), -h)
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (s *Surface) Close() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}
