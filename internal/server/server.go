// Package server serves rendered frames over HTTP: stills as SVG or PNG and
// a live SVG stream as server-sent events.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/export"
	"github.com/san-kum/gridfx/internal/logging"
	"github.com/san-kum/gridfx/internal/proximity"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/storage"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

const streamBuffer = 4

type Server struct {
	engine *gin.Engine
	store  *storage.Store
	log    *slog.Logger
}

// New builds the router. store may be nil, in which case the render log
// is reported empty.
func New(store *storage.Store, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{engine: gin.New(), store: store, log: log}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/presets", s.presets)
	api.GET("/frame.svg", s.frame(export.FormatSVG, "image/svg+xml"))
	api.GET("/frame.png", s.frame(export.FormatPNG, "image/png"))
	api.GET("/stream", s.stream)
	api.GET("/renders", s.renders)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

type presetInfo struct {
	Name   string         `json:"name"`
	Effect string         `json:"effect"`
	Config *config.Config `json:"config"`
}

func (s *Server) presets(c *gin.Context) {
	names := config.ListPresets()
	out := make([]presetInfo, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		out = append(out, presetInfo{Name: name, Effect: cfg.Effect, Config: cfg})
	}
	c.JSON(http.StatusOK, out)
}

// frameQuery is shared by the still and stream endpoints.
type frameQuery struct {
	Preset string   `form:"preset"`
	Theme  string   `form:"theme"`
	Width  int      `form:"w" binding:"omitempty,min=1,max=4096"`
	Height int      `form:"h" binding:"omitempty,min=1,max=4096"`
	Frame  int      `form:"frame" binding:"omitempty,min=0,max=10000"`
	Frames int      `form:"frames" binding:"omitempty,min=0,max=100000"`
	PX     *float64 `form:"px"`
	PY     *float64 `form:"py"`
}

func (q *frameQuery) defaults() {
	if q.Preset == "" {
		q.Preset = "hero"
	}
	if q.Width == 0 {
		q.Width = 800
	}
	if q.Height == 0 {
		q.Height = 600
	}
}

func (q *frameQuery) pointer() *proximity.Sample {
	if q.PX == nil || q.PY == nil {
		return nil
	}
	return &proximity.Sample{X: *q.PX, Y: *q.PY}
}

// resolve parses the query and builds the effect it names.
func (s *Server) resolve(c *gin.Context) (*frameQuery, *config.Config, theme.Theme, bool) {
	var q frameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, theme.Theme{}, false
	}
	q.defaults()

	cfg, err := config.Resolve(q.Preset)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, nil, theme.Theme{}, false
	}
	name := q.Theme
	if name == "" {
		name = cfg.Theme
	}
	return &q, cfg, theme.Get(name), true
}

func (s *Server) frame(format, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, cfg, th, ok := s.resolve(c)
		if !ok {
			return
		}

		opts := export.Options{
			Width:      q.Width,
			Height:     q.Height,
			Background: th.Background,
			Frame:      q.Frame,
			Step:       cfg.FrameInterval(),
			Pointer:    q.pointer(),
		}
		var buf bytes.Buffer
		if err := export.Write(c.Request.Context(), format, &buf, render.NewEffect(cfg, th), opts); err != nil {
			s.log.Error("frame failed", "preset", q.Preset, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}

// snapshotEffect copies each drawn frame out of the SVG surface while the
// renderer still holds it.
type snapshotEffect struct {
	render.Effect
	svg    *surface.SVG
	frames chan []byte
}

func (e *snapshotEffect) Frame(s surface.Surface, in render.Input) error {
	if err := e.Effect.Frame(s, in); err != nil {
		return err
	}
	select {
	case e.frames <- e.svg.Bytes():
	default:
	}
	return nil
}

// stream sends SVG frames as server-sent events until the client leaves or
// the requested number of frames has been sent.
func (s *Server) stream(c *gin.Context) {
	q, cfg, th, ok := s.resolve(c)
	if !ok {
		return
	}

	svg := surface.NewSVG(q.Width, q.Height, th.Background)
	effect := &snapshotEffect{
		Effect: render.NewEffect(cfg, th),
		svg:    svg,
		frames: make(chan []byte, streamBuffer),
	}
	sched := render.NewTickerScheduler(cfg.FrameInterval())
	defer sched.Stop()

	r := render.NewRenderer(effect, sched, render.WithLogger(s.log))
	if p := q.pointer(); p != nil {
		r.PointerMove(p.X, p.Y)
	}
	if err := r.Mount(svg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer r.Unmount()

	s.log.Debug("stream opened", "preset", q.Preset)
	ctx := c.Request.Context()
	sent := 0
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-r.Done():
			if err := r.Err(); err != nil {
				c.SSEvent("error", err.Error())
			}
			return false
		case frame := <-effect.frames:
			c.SSEvent("frame", string(frame))
			sent++
			return q.Frames == 0 || sent < q.Frames
		}
	})
	s.log.Debug("stream closed", "preset", q.Preset, "frames", sent)
}

func (s *Server) renders(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, []storage.Record{})
		return
	}
	recs, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}
