package export

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

func effect(t *testing.T, preset string) render.Effect {
	t.Helper()
	cfg, err := config.Resolve(preset)
	if err != nil {
		t.Fatal(err)
	}
	return render.NewEffect(cfg, theme.Dark)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 200, Height: 100, Background: theme.Dark.Background, Frame: 10}
	if err := WriteSVG(context.Background(), &buf, effect(t, "hero"), opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `width="200" height="100"`) {
		t.Error("missing document size")
	}
	if strings.Count(out, "<path") != 1 {
		t.Errorf("expected a single path, got %d", strings.Count(out, "<path"))
	}
}

func TestWriteSVG_Dots(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 100, Height: 70, Pointer: &proximity.Sample{X: 30, Y: 30}}
	if err := WriteSVG(context.Background(), &buf, effect(t, "dots"), opts); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "<circle"); n != 6 {
		t.Errorf("expected 6 dots, got %d", n)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 64, Height: 48, Background: theme.Dark.Background}
	if err := WritePNG(context.Background(), &buf, effect(t, "about"), opts); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("expected 64x48, got %v", b)
	}
}

func TestWriteSVG_WarmupBound(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 20, Height: 20, Frame: MaxWarmup + 1}
	if err := WriteSVG(context.Background(), &buf, effect(t, "hero"), opts); err == nil {
		t.Error("expected error for warmup past MaxWarmup")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on a rejected request")
	}
}

func TestKeptFrames(t *testing.T) {
	tests := []struct {
		format string
		frames int
		want   int
	}{
		{FormatSVG, 60, 1},
		{FormatPNG, 0, 1},
		{FormatGIF, 0, 1},
		{FormatGIF, 60, 60},
		{FormatGIF, 1000, MaxFrames},
	}
	for _, tt := range tests {
		if got := (Options{Frames: tt.frames}).KeptFrames(tt.format); got != tt.want {
			t.Errorf("%s frames=%d: got %d, want %d", tt.format, tt.frames, got, tt.want)
		}
	}
}

func TestWriteGIF(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Width: 40, Height: 30, Background: theme.Dark.Background, Frames: 4}
	if err := WriteGIF(context.Background(), &buf, effect(t, "hero"), opts); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("invalid gif: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Errorf("expected 4 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 2 {
		t.Errorf("expected 2cs delay at 60fps, got %d", anim.Delay[0])
	}
}

func TestWrite_Validation(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	if err := Write(ctx, "bmp", &buf, effect(t, "hero"), Options{Width: 10, Height: 10}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Write(ctx, FormatSVG, &buf, effect(t, "hero"), Options{Width: MaxSize + 1, Height: 10}); err == nil {
		t.Error("expected size error")
	}
	if err := Write(ctx, FormatPNG, &buf, effect(t, "hero"), Options{}); err == nil {
		t.Error("expected size error for zero size")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out/hero.GIF": "gif",
		"frame.svg":    "svg",
		"a.b.png":      "png",
		"noext":        "",
	}
	for in, want := range tests {
		if got := FormatFromPath(in); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBrailleSVG(t *testing.T) {
	b := surface.NewBraille(2, 1, 1)
	b.Set(0, 0)
	b.Set(3, 3)

	out := BrailleSVG(b, 2, theme.Dark)
	if strings.Count(out, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(out, "<circle"))
	}
	if !strings.Contains(out, `width="8" height="8"`) {
		t.Errorf("unexpected size in %q", out[:120])
	}
	if BrailleSVG(nil, 1, theme.Dark) != "" {
		t.Error("nil canvas should give empty output")
	}
}
