// Package render runs grid effects against a drawing surface.
//
// The package is built from three pieces:
//
//   - [Effect]: per-frame update and draw of one background variant
//     ([WaveGrid], [DotGrid]); [NewEffect] builds either from a config
//   - [Scheduler]: a cancellable "run before the next repaint" primitive
//     ([QueueScheduler] for hosts that pump frames, [TickerScheduler] for
//     timer-driven hosts)
//   - [Renderer]: the mount/animate/unmount lifecycle tying the two together
//
// # Example
//
//	sched := render.NewTickerScheduler(time.Second / 60)
//	r := render.NewRenderer(render.NewEffect(cfg, theme.Dark), sched)
//	err := r.Run(ctx, surface.NewSVG(800, 600, ""))
//
// # Concurrency
//
// Frames run one at a time. Resize and pointer input may arrive from other
// goroutines: both are stored atomically and picked up at the start of the
// next frame, so input never blocks on drawing.
package render
