package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	_ "github.com/joho/godotenv/autoload"
	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/export"
	"github.com/san-kum/gridfx/internal/gui"
	"github.com/san-kum/gridfx/internal/logging"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/server"
	"github.com/san-kum/gridfx/internal/storage"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
	"github.com/san-kum/gridfx/internal/tui"
	"github.com/spf13/cobra"
)

var (
	env        = config.FromEnv()
	log        = logging.Nop()
	configFile string
	themeName  string
	dataDir    string
	logLevel   string

	addr   string
	asJSON bool
)

type renderOptions struct {
	output   string
	format   string
	width    int
	height   int
	frame    int
	frames   int
	pointer  string
	noRecord bool
}

type profileOptions struct {
	width   int
	height  int
	frames  int
	pointer string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridfx",
		Short: "pointer-reactive wave and dot grids",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.New(logLevel, env.LogFormat, os.Stderr)
			gg.SetLogger(log.With("component", "gg"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Pick(pickTheme(nil), dataDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "theme (dark, light)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")

	playCmd := &cobra.Command{
		Use:   "play [preset]",
		Short: "play an effect in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}

	windowCmd := &cobra.Command{
		Use:   "window [preset]",
		Short: "play an effect in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve frames and streams over http",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", env.Addr, "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEFFECT\tTHEME")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, cfg.Effect, cfg.Theme)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded renders",
		RunE:  listRenders,
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print as json")

	showCmd := &cobra.Command{
		Use:   "show [render_id]",
		Short: "show a recorded render and its frame timings",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	configCmd := &cobra.Command{
		Use:   "config [preset] [file]",
		Short: "write a preset as an editable yaml config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := config.Save(args[1], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, windowCmd, newRenderCmd(), newProfileCmd(), serveCmd, presetsCmd, listCmd, showCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig picks the config file when given, else the named preset.
func loadConfig(args []string) (string, *config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load config: %w", err)
		}
		name := strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		return name, cfg, nil
	}
	name := "hero"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := config.Resolve(name)
	if err != nil {
		return "", nil, err
	}
	return name, cfg, nil
}

func pickTheme(cfg *config.Config) theme.Theme {
	if themeName != "" {
		return theme.Get(themeName)
	}
	if cfg != nil {
		return theme.Get(cfg.Theme)
	}
	return theme.Dark
}

func parsePointer(s string) (*proximity.Sample, error) {
	if s == "" {
		return nil, nil
	}
	var p proximity.Sample
	if _, err := fmt.Sscanf(s, "%g,%g", &p.X, &p.Y); err != nil {
		return nil, fmt.Errorf("invalid pointer %q: want x,y", s)
	}
	return &p, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runPlay(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	return tui.Play(tui.PlayerOptions{
		Name:        name,
		Config:      cfg,
		Theme:       pickTheme(cfg),
		SnapshotDir: dataDir,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	name, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return gui.Run(ctx, gui.Options{
		Name:   name,
		Config: cfg,
		Theme:  pickTheme(cfg),
		Logger: log,
	})
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render frames to svg, png or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <preset>.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", "", "svg, png or gif (default from output extension)")
	cmd.Flags().IntVar(&opts.width, "width", 800, "width in px")
	cmd.Flags().IntVar(&opts.height, "height", 600, "height in px")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "frames run before the first kept frame")
	cmd.Flags().IntVar(&opts.frames, "frames", 60, "frames kept (gif only)")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "pointer position x,y")
	cmd.Flags().BoolVar(&opts.noRecord, "no-record", false, "skip the render log")
	return cmd
}

func newProfileCmd() *cobra.Command {
	var opts profileOptions
	cmd := &cobra.Command{
		Use:   "profile [preset]",
		Short: "time headless frames and plot them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", 1280, "width in px")
	cmd.Flags().IntVar(&opts.height, "height", 720, "height in px")
	cmd.Flags().IntVar(&opts.frames, "frames", 300, "frames to time")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "pointer position x,y")
	return cmd
}

func runRender(ro renderOptions, args []string) error {
	name, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	p, err := parsePointer(ro.pointer)
	if err != nil {
		return err
	}

	format := ro.format
	if format == "" {
		format = export.FormatFromPath(ro.output)
	}
	if format == "" {
		format = export.FormatSVG
	}
	output := ro.output
	if output == "" {
		output = fmt.Sprintf("%s.%s", name, format)
	}

	th := pickTheme(cfg)
	opts := export.Options{
		Width:      ro.width,
		Height:     ro.height,
		Background: th.Background,
		Frame:      ro.frame,
		Frames:     ro.frames,
		Step:       cfg.FrameInterval(),
		Pointer:    p,
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	if err := export.Write(ctx, format, f, render.NewEffect(cfg, th), opts); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("wrote %s in %v\n", output, elapsed.Round(time.Millisecond))

	if ro.noRecord {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()
	id, err := st.Save(storage.Record{
		Preset:  name,
		Effect:  cfg.Effect,
		Theme:   th.Name,
		Width:   ro.width,
		Height:  ro.height,
		Frames:  opts.KeptFrames(format),
		Format:  format,
		Output:  output,
		Elapsed: elapsed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("render id: %s\n", id)
	return nil
}

func runProfile(po profileOptions, args []string) error {
	name, cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	p, err := parsePointer(po.pointer)
	if err != nil {
		return err
	}
	th := pickTheme(cfg)

	ras, err := surface.NewRaster(po.width, po.height, th.Background)
	if err != nil {
		return err
	}
	defer ras.Close()

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("profiling %s at %dx%d\n\n", name, po.width, po.height)
	e := render.NewEffect(cfg, th)
	timings := make([]time.Duration, 0, po.frames)
	last := time.Now()
	start := last
	err = render.Capture(ctx, e, ras, render.CaptureOptions{
		Frames:  po.frames,
		Width:   po.width,
		Height:  po.height,
		Step:    cfg.FrameInterval(),
		Pointer: p,
	}, func(int) error {
		now := time.Now()
		timings = append(timings, now.Sub(last))
		last = now
		return nil
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printTimings(os.Stdout, timings, cfg.FrameInterval())
	fmt.Println(describeEffect(e))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()
	id, err := st.Save(storage.Record{
		Preset:  name,
		Effect:  cfg.Effect,
		Theme:   th.Name,
		Width:   po.width,
		Height:  po.height,
		Frames:  len(timings),
		Format:  "profile",
		Elapsed: elapsed,
	})
	if err != nil {
		return err
	}
	if err := st.SaveTimings(id, timings); err != nil {
		return err
	}
	fmt.Printf("profile id: %s\n", id)
	return nil
}

// describeEffect reports how much an effect draws per frame.
func describeEffect(e render.Effect) string {
	switch fx := e.(type) {
	case *render.WaveGrid:
		l := fx.Lattice()
		return fmt.Sprintf("wave grid: %dx%d points, %d segments per stroke", l.Cols, l.Rows, l.SegmentCount())
	case *render.DotGrid:
		return fmt.Sprintf("dot grid: %d dots", len(fx.Dots()))
	}
	return fmt.Sprintf("%T", e)
}

func printTimings(w io.Writer, timings []time.Duration, budget time.Duration) {
	if len(timings) == 0 {
		fmt.Fprintln(w, "no frame timings")
		return
	}
	data := make([]float64, len(timings))
	var worst, total time.Duration
	for i, d := range timings {
		data[i] = float64(d.Microseconds())
		worst = max(worst, d)
		total += d
	}
	fmt.Fprintln(w, asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (µs)"),
	))
	fmt.Fprintln(w)
	avg := total / time.Duration(len(timings))
	fmt.Fprintf(w, "frames: %d  avg: %v  worst: %v", len(timings), avg, worst)
	if budget > 0 {
		fmt.Fprintf(w, "  budget: %v", budget)
	}
	fmt.Fprintln(w)
}

func runServe(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := signalContext()
	defer cancel()

	srv := server.New(st, log.With("component", "server"))
	log.Info("listening", slog.String("addr", addr))
	return srv.Run(ctx, addr)
}

func showRender(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()
	return writeRender(os.Stdout, st, args[0])
}

// writeRender prints a render record and, for profiles, its timing plot.
func writeRender(w io.Writer, st *storage.Store, id string) error {
	rec, err := st.Load(id)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", rec.ID)
	fmt.Fprintf(tw, "preset:\t%s (%s, %s)\n", rec.Preset, rec.Effect, rec.Theme)
	fmt.Fprintf(tw, "created:\t%s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "size:\t%dx%d\n", rec.Width, rec.Height)
	fmt.Fprintf(tw, "frames:\t%d\n", rec.Frames)
	fmt.Fprintf(tw, "format:\t%s\n", rec.Format)
	fmt.Fprintf(tw, "elapsed:\t%v\n", rec.Elapsed.Round(time.Millisecond))
	if rec.Output != "" {
		fmt.Fprintf(tw, "output:\t%s\n", rec.Output)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	timings, err := st.LoadTimings(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	printTimings(w, timings, 0)
	return nil
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	defer st.Close()

	recs, err := st.List()
	if err != nil {
		return err
	}
	if asJSON {
		return storage.ExportJSON(os.Stdout, recs)
	}
	if len(recs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFRAMES\tFORMAT\tELAPSED\tOUTPUT")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%s\t%v\t%s\n",
			rec.ID,
			rec.Preset,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Width, rec.Height,
			rec.Frames,
			rec.Format,
			rec.Elapsed.Round(time.Millisecond),
			rec.Output,
		)
	}
	return w.Flush()
}
