package render_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

type failingEffect struct {
	after int
	calls int
	panic bool
}

func (f *failingEffect) Resize(int, int) {}

func (f *failingEffect) Frame(surface.Surface, render.Input) error {
	f.calls++
	if f.calls <= f.after {
		return nil
	}
	if f.panic {
		panic("boom")
	}
	return errors.New("surface lost")
}

var _ = Describe("Renderer", func() {
	var (
		sched *render.QueueScheduler
		rec   *surface.Recorder
		grid  *render.WaveGrid
		r     *render.Renderer
		now   time.Time
	)

	flush := func(n int) {
		for i := 0; i < n; i++ {
			now = now.Add(time.Second / 60)
			sched.Flush(now)
		}
	}

	BeforeEach(func() {
		sched = render.NewQueueScheduler()
		rec = surface.NewRecorder(800, 600)
		grid = render.NewWaveGrid(config.GetPreset("hero").Wave, config.ClockConfig{Mode: "fixed"}, theme.Dark)
		r = render.NewRenderer(grid, sched)
		now = time.Unix(1000, 0)
	})

	Describe("Mount", func() {
		It("schedules the first frame immediately", func() {
			Expect(r.State()).To(Equal(render.Unmounted))
			Expect(r.Mount(rec)).To(Succeed())
			Expect(r.State()).To(Equal(render.Animating))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("refuses a missing surface and schedules nothing", func() {
			Expect(r.Mount(nil)).To(MatchError(render.ErrNoSurface))
			Expect(r.State()).To(Equal(render.Unmounted))
			Expect(sched.Pending()).To(BeZero())
		})

		It("refuses a second mount", func() {
			Expect(r.Mount(rec)).To(Succeed())
			Expect(r.Mount(rec)).To(MatchError(render.ErrMounted))
		})

		It("draws the 800x600 lattice within the wave height on the first frame", func() {
			Expect(r.Mount(rec)).To(Succeed())
			flush(1)

			l := grid.Lattice()
			Expect(l.Len()).To(Equal(1344))
			for _, p := range l.Points {
				Expect(math.Abs(p.X - p.OriginX)).To(BeNumerically("<=", 5))
				Expect(math.Abs(p.Y - p.OriginY)).To(BeNumerically("<=", 5))
			}
			Expect(rec.Strokes).To(Equal(1))
			Expect(r.Frames()).To(Equal(uint64(1)))
		})
	})

	Describe("Unmount", func() {
		It("stops all drawing", func() {
			Expect(r.Mount(rec)).To(Succeed())
			flush(3)
			draws := rec.Draws()

			r.Unmount()
			Expect(r.State()).To(Equal(render.Unmounted))
			Expect(sched.Pending()).To(BeZero())

			flush(10)
			Expect(rec.Draws()).To(Equal(draws))
			Eventually(r.Done()).Should(BeClosed())
		})

		It("turns a late callback into a no-op", func() {
			stale := render.NewQueueScheduler()
			late := render.NewRenderer(grid, &leakyScheduler{QueueScheduler: stale})
			Expect(late.Mount(rec)).To(Succeed())
			late.Unmount()

			Expect(stale.Pending()).To(Equal(1))
			stale.Flush(now)
			Expect(rec.Draws()).To(BeZero())
		})

		It("is safe to call twice", func() {
			Expect(r.Mount(rec)).To(Succeed())
			r.Unmount()
			r.Unmount()
			Expect(r.Err()).NotTo(HaveOccurred())
		})

		It("allows mounting again", func() {
			Expect(r.Mount(rec)).To(Succeed())
			r.Unmount()
			Expect(r.Mount(rec)).To(Succeed())
			flush(1)
			Expect(rec.Strokes).To(Equal(1))
		})
	})

	Describe("Resize", func() {
		It("applies only the latest size at the next frame", func() {
			Expect(r.Mount(rec)).To(Succeed())
			flush(1)
			resizes := rec.Resizes

			r.Resize(400, 300)
			r.Resize(500, 300)
			r.Resize(1000, 500)
			flush(1)

			Expect(rec.Resizes).To(Equal(resizes + 1))
			w, h := rec.Size()
			Expect(w).To(Equal(1000))
			Expect(h).To(Equal(500))
			Expect(grid.Lattice().Len()).To(Equal((50 + 2) * (25 + 2)))
		})

		It("waits out the debounce window", func() {
			r = render.NewRenderer(grid, sched, render.WithDebounce(time.Hour))
			Expect(r.Mount(rec)).To(Succeed())
			flush(1)

			r.Resize(400, 300)
			flush(1)
			w, _ := rec.Size()
			Expect(w).To(Equal(800))

			now = time.Now().Add(2 * time.Hour)
			sched.Flush(now)
			w, _ = rec.Size()
			Expect(w).To(Equal(400))
		})
	})

	Describe("Pause", func() {
		It("idles without losing the surface", func() {
			Expect(r.Mount(rec)).To(Succeed())
			r.Pause()
			Expect(r.State()).To(Equal(render.Idle))
			flush(2)
			Expect(rec.Draws()).To(BeZero())

			Expect(r.Resume()).To(Succeed())
			flush(1)
			Expect(rec.Draws()).To(Equal(1))
		})

		It("cannot resume an unmounted renderer", func() {
			Expect(r.Resume()).To(MatchError(render.ErrUnmounted))
		})
	})

	Describe("frame failures", func() {
		It("tears down on an error", func() {
			fe := &failingEffect{after: 2}
			r = render.NewRenderer(fe, sched)
			Expect(r.Mount(rec)).To(Succeed())
			flush(5)

			Expect(r.State()).To(Equal(render.Unmounted))
			Expect(sched.Pending()).To(BeZero())
			Expect(fe.calls).To(Equal(3))

			var frameErr *render.FrameError
			Expect(errors.As(r.Err(), &frameErr)).To(BeTrue())
			Expect(frameErr.Frame).To(Equal(uint64(2)))
		})

		It("recovers a panicking frame", func() {
			r = render.NewRenderer(&failingEffect{panic: true}, sched)
			Expect(r.Mount(rec)).To(Succeed())
			flush(1)
			Expect(r.Err()).To(MatchError(ContainSubstring("panic: boom")))
			Expect(r.State()).To(Equal(render.Unmounted))
		})
	})

	Describe("frame hook", func() {
		It("reports each frame", func() {
			var stats []render.FrameStats
			r = render.NewRenderer(grid, sched, render.WithFrameHook(func(s render.FrameStats) {
				stats = append(stats, s)
			}))
			Expect(r.Mount(rec)).To(Succeed())
			flush(3)
			Expect(stats).To(HaveLen(3))
			Expect(stats[2].Frame).To(Equal(uint64(3)))
			Expect(stats[0].Width).To(Equal(800))
		})
	})

	Describe("Run", func() {
		It("unmounts when the context ends", func() {
			ts := render.NewTickerScheduler(time.Millisecond)
			defer ts.Stop()
			r = render.NewRenderer(grid, ts)

			ctx, cancel := context.WithCancel(context.Background())
			errc := make(chan error, 1)
			go func() { errc <- r.Run(ctx, rec) }()

			Eventually(r.Frames).Should(BeNumerically(">=", 2))
			cancel()
			Eventually(errc).Should(Receive(BeNil()))
			Expect(r.State()).To(Equal(render.Unmounted))

			draws := rec.Draws()
			Consistently(rec.Draws, 30*time.Millisecond).Should(Equal(draws))
		})
	})
})

// leakyScheduler ignores Cancel, so frames keep firing after unmount.
type leakyScheduler struct {
	*render.QueueScheduler
}

func (leakyScheduler) Cancel(render.FrameID) {}
