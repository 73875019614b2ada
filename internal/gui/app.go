package gui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/logging"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/theme"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	scrollStep    = 40
	fontPath      = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

type Options struct {
	Name   string
	Config *config.Config
	Theme  theme.Theme
	Logger *slog.Logger
}

type App struct {
	Name    string
	Theme   theme.Theme
	Font    rl.Font
	ShowHUD bool
	Scroll  float32

	cfg      *config.Config
	sched    *render.QueueScheduler
	renderer *render.Renderer
	surface  *Surface
	log      *slog.Logger
}

func initWindow(title string, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens a window for one effect and blocks until it is closed or ctx
// ends. The renderer is unmounted on every way out.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	initWindow("gridfx :: "+opts.Name, cfg.Clock.FPS)
	defer rl.CloseWindow()

	app := NewApp(opts)
	defer app.Close()
	return app.RunLoop(ctx)
}

// NewApp needs an open window.
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	sched := render.NewQueueScheduler()
	return &App{
		Name:     opts.Name,
		Theme:    opts.Theme,
		Font:     loadFont(),
		ShowHUD:  true,
		cfg:      cfg,
		sched:    sched,
		renderer: render.NewRenderer(render.NewEffect(cfg, opts.Theme), sched, render.WithLogger(log), render.WithDebounce(cfg.Resize.Debounce)),
		surface:  NewSurface(rl.GetScreenWidth(), rl.GetScreenHeight(), opts.Theme.Background),
		log:      log,
	}
}

func (a *App) RunLoop(ctx context.Context) error {
	if err := a.renderer.Mount(a.surface); err != nil {
		return err
	}
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if quit := a.Update(); quit {
			break
		}
		a.Draw()
		if err := a.renderer.Err(); err != nil {
			return err
		}
	}
	a.renderer.Unmount()
	return nil
}

func (a *App) Close() {
	a.renderer.Unmount()
	a.surface.Close()
}

// Update feeds input to the renderer and reports whether to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		if a.renderer.State() == render.Animating {
			a.renderer.Pause()
		} else if err := a.renderer.Resume(); err != nil {
			a.log.Warn("resume failed", "err", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Theme = theme.Next(a.Theme)
		a.renderer.SetTheme(a.Theme)
		a.surface.SetBackground(a.Theme.Background)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyS) {
		name := fmt.Sprintf("%s_%d.png", a.Name, time.Now().Unix())
		rl.TakeScreenshot(name)
		a.log.Info("screenshot", "file", name)
	}

	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	if rl.IsWindowResized() {
		a.renderer.Resize(sw, sh)
	}

	_, ch := a.surface.Size()
	a.Scroll = clampScroll(a.Scroll-rl.GetMouseWheelMove()*scrollStep, ch, sh)

	if rl.IsCursorOnScreen() {
		m := rl.GetMousePosition()
		a.renderer.PointerMove(float64(m.X), float64(m.Y+a.Scroll))
	} else {
		a.renderer.PointerLeave()
	}
	return false
}

// clampScroll keeps the visible slice of a canvas of height ch inside it.
func clampScroll(scroll float32, ch, screenH int) float32 {
	limit := float32(ch - screenH)
	if limit < 0 {
		limit = 0
	}
	return min(max(scroll, 0), limit)
}

func (a *App) Draw() {
	a.surface.Begin()
	a.sched.Flush(time.Now())
	a.surface.End()

	rl.BeginDrawing()
	rl.ClearBackground(toColor(a.Theme.Background))
	a.surface.Blit(rl.GetScreenWidth(), rl.GetScreenHeight(), a.Scroll)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.drawText("gridfx", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 120, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if a.renderer.State() != render.Animating {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, sw-130, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [T] THEME  [S] SHOT  [H] HUD  [Q] QUIT", sw-560, sh-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  %d FRAMES", rl.GetFPS(), a.renderer.Frames()), 30, sh-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
