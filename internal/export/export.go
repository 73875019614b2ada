// Package export renders effects headlessly to SVG, PNG and animated GIF.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/surface"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatGIF = "gif"

	MaxSize   = 4096
	MaxFrames = 600
	MaxWarmup = 10000
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Options selects what to render. Stills draw Frame frames of warmup and
// keep the last one; GIFs keep Frames frames starting there.
type Options struct {
	Width, Height int
	Background    string
	Frame         int
	Frames        int
	Step          time.Duration
	Pointer       *proximity.Sample
}

func (o Options) validate() (Options, error) {
	if o.Width <= 0 || o.Height <= 0 || o.Width > MaxSize || o.Height > MaxSize {
		return o, fmt.Errorf("export: size %dx%d out of range 1..%d", o.Width, o.Height, MaxSize)
	}
	if o.Frame < 0 {
		o.Frame = 0
	}
	if o.Frame > MaxWarmup {
		return o, fmt.Errorf("export: frame %d out of range 0..%d", o.Frame, MaxWarmup)
	}
	if o.Frames <= 0 {
		o.Frames = 1
	}
	if o.Frames > MaxFrames {
		o.Frames = MaxFrames
	}
	if o.Step <= 0 {
		o.Step = time.Second / 60
	}
	return o, nil
}

func (o Options) capture(frames int) render.CaptureOptions {
	return render.CaptureOptions{
		Frames:  frames,
		Skip:    o.Frame,
		Width:   o.Width,
		Height:  o.Height,
		Step:    o.Step,
		Pointer: o.Pointer,
	}
}

// KeptFrames is how many frames a write in format keeps: one for stills,
// Frames clamped to 1..MaxFrames for GIFs.
func (o Options) KeptFrames(format string) int {
	if format != FormatGIF {
		return 1
	}
	return min(max(o.Frames, 1), MaxFrames)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Write dispatches on format.
func Write(ctx context.Context, format string, w io.Writer, e render.Effect, opts Options) error {
	switch format {
	case FormatSVG:
		return WriteSVG(ctx, w, e, opts)
	case FormatPNG:
		return WritePNG(ctx, w, e, opts)
	case FormatGIF:
		return WriteGIF(ctx, w, e, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func WriteSVG(ctx context.Context, w io.Writer, e render.Effect, opts Options) error {
	opts, err := opts.validate()
	if err != nil {
		return err
	}
	svg := surface.NewSVG(opts.Width, opts.Height, opts.Background)
	if err := render.Capture(ctx, e, svg, opts.capture(1), nil); err != nil {
		return err
	}
	_, err = w.Write(svg.Bytes())
	return err
}

func WritePNG(ctx context.Context, w io.Writer, e render.Effect, opts Options) error {
	opts, err := opts.validate()
	if err != nil {
		return err
	}
	r, err := surface.NewRaster(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := render.Capture(ctx, e, r, opts.capture(1), nil); err != nil {
		return err
	}
	return r.EncodePNG(w)
}

// WriteGIF encodes an animated GIF, dithering each frame onto the Plan 9
// palette.
func WriteGIF(ctx context.Context, w io.Writer, e render.Effect, opts Options) error {
	opts, err := opts.validate()
	if err != nil {
		return err
	}
	r, err := surface.NewRaster(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return err
	}
	defer r.Close()

	delay := int(math.Round(opts.Step.Seconds() * 100))
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{}
	err = render.Capture(ctx, e, r, opts.capture(opts.Frames), func(int) error {
		img := r.Image()
		pal := image.NewPaletted(img.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, img.Bounds(), img, img.Bounds().Min)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}
	return gif.EncodeAll(w, anim)
}
