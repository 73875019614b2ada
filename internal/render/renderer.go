package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/gridfx/internal/logging"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

type State int

const (
	Unmounted State = iota
	Idle
	Animating
)

func (s State) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// FrameStats describes one drawn frame.
type FrameStats struct {
	Frame   uint64
	Now     time.Time
	Elapsed time.Duration
	Width   int
	Height  int
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDebounce holds a resize back until no newer resize has arrived for d.
func WithDebounce(d time.Duration) Option {
	return func(r *Renderer) { r.debounce = d }
}

// WithFrameHook is called after every drawn frame, outside the renderer lock.
func WithFrameHook(fn func(FrameStats)) Option {
	return func(r *Renderer) { r.hook = fn }
}

type viewport struct {
	width, height int
	at            time.Time
}

// Renderer drives one effect on one surface.
type Renderer struct {
	effect   Effect
	sched    Scheduler
	log      *slog.Logger
	debounce time.Duration
	hook     func(FrameStats)

	pointer proximity.Pointer
	resize  atomic.Pointer[viewport]

	mu      sync.Mutex
	state   State
	surface surface.Surface
	pending FrameID
	gen     uint64
	frames  uint64
	err     error
	done    chan struct{}
}

func NewRenderer(e Effect, sched Scheduler, opts ...Option) *Renderer {
	r := &Renderer{
		effect: e,
		sched:  sched,
		log:    logging.Nop(),
		done:   make(chan struct{}),
	}
	close(r.done)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount attaches the surface and schedules the first frame. A nil surface
// leaves the renderer unmounted with nothing scheduled.
func (r *Renderer) Mount(s surface.Surface) error {
	if s == nil {
		return ErrNoSurface
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Unmounted {
		return ErrMounted
	}

	r.gen++
	r.surface = s
	r.err = nil
	r.done = make(chan struct{})
	r.state = Idle

	if r.resize.Load() == nil {
		w, h := s.Size()
		r.resize.Store(&viewport{width: w, height: h})
	}

	r.schedule()
	r.log.Debug("mounted", "gen", r.gen)
	return nil
}

// Unmount cancels the pending frame. No draw happens on the surface once
// Unmount returns.
func (r *Renderer) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teardown(nil)
}

// Pause cancels the pending frame but keeps the surface.
func (r *Renderer) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Animating {
		return
	}
	r.sched.Cancel(r.pending)
	r.pending = 0
	r.state = Idle
}

func (r *Renderer) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case Unmounted:
		return ErrUnmounted
	case Idle:
		r.schedule()
	}
	return nil
}

// Resize records the viewport size. The surface and effect are rebuilt at
// the start of the next frame; only the latest size is applied.
func (r *Renderer) Resize(width, height int) {
	r.resize.Store(&viewport{width: width, height: height, at: time.Now()})
}

func (r *Renderer) PointerMove(x, y float64) { r.pointer.Move(x, y) }

func (r *Renderer) PointerLeave() { r.pointer.Leave() }

// SetTheme recolors the effect if it supports themes.
func (r *Renderer) SetTheme(th theme.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.effect.(Themed); ok {
		t.SetTheme(th)
	}
}

// Run mounts s and unmounts when ctx ends or a frame fails.
func (r *Renderer) Run(ctx context.Context, s surface.Surface) error {
	if err := r.Mount(s); err != nil {
		return err
	}
	done := r.Done()
	select {
	case <-ctx.Done():
		r.Unmount()
	case <-done:
	}
	return r.Err()
}

func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Err reports the frame error that tore the renderer down, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed when the current mount ends.
func (r *Renderer) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Renderer) Effect() Effect { return r.effect }

// schedule must be called with mu held.
func (r *Renderer) schedule() {
	gen := r.gen
	r.pending = r.sched.Request(func(now time.Time) { r.tick(gen, now) })
	r.state = Animating
}

// teardown must be called with mu held.
func (r *Renderer) teardown(err error) {
	if r.state == Unmounted {
		return
	}
	if r.pending != 0 {
		r.sched.Cancel(r.pending)
		r.pending = 0
	}
	r.state = Unmounted
	r.surface = nil
	r.err = err
	close(r.done)
	if err != nil {
		r.log.Error("renderer stopped", "err", err)
		return
	}
	r.log.Debug("unmounted", "gen", r.gen, "frames", r.frames)
}

func (r *Renderer) tick(gen uint64, now time.Time) {
	r.mu.Lock()
	if r.state != Animating || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.pending = 0

	start := time.Now()
	err := r.draw(now)
	if err != nil {
		r.teardown(&FrameError{Frame: r.frames, Err: err})
		r.mu.Unlock()
		return
	}
	r.frames++
	w, h := r.surface.Size()
	stats := FrameStats{Frame: r.frames, Now: now, Elapsed: time.Since(start), Width: w, Height: h}
	r.schedule()
	r.mu.Unlock()

	if r.hook != nil {
		r.hook(stats)
	}
}

func (r *Renderer) draw(now time.Time) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()

	if vp := r.resize.Load(); vp != nil && r.settled(vp, now) {
		r.resize.CompareAndSwap(vp, nil)
		if err := fit(r.effect, r.surface, vp.width, vp.height); err != nil {
			return fmt.Errorf("resize %dx%d: %w", vp.width, vp.height, err)
		}
		r.log.Debug("resized", "width", vp.width, "height", vp.height)
	}

	in := Input{Now: now}
	in.Pointer, in.HasPointer = r.pointer.Load()
	return r.effect.Frame(r.surface, in)
}

func (r *Renderer) settled(vp *viewport, now time.Time) bool {
	if r.debounce <= 0 || vp.at.IsZero() {
		return true
	}
	return now.Sub(vp.at) >= r.debounce
}
