package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/export"
	"github.com/san-kum/gridfx/internal/render"
	"github.com/san-kum/gridfx/internal/surface"
	"github.com/san-kum/gridfx/internal/theme"
)

const (
	defaultCols  = 80
	defaultRows  = 24
	statsWidth   = 36
	historyLimit = 120

	// DefaultScale is how many logical pixels one braille dot covers.
	DefaultScale = 5.0

	// canvas padding, matches canvasStyle
	padX, padY = 2, 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(padY, padX)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// frameLog collects draw times from the renderer's frame hook.
type frameLog struct {
	micros []float64
	last   render.FrameStats
}

func (l *frameLog) record(s render.FrameStats) {
	l.last = s
	l.micros = append(l.micros, float64(s.Elapsed)/float64(time.Microsecond))
	if len(l.micros) > historyLimit {
		l.micros = l.micros[len(l.micros)-historyLimit:]
	}
}

type PlayerOptions struct {
	Name        string
	Config      *config.Config
	Theme       theme.Theme
	Scale       float64
	SnapshotDir string
}

// Player shows one effect on a braille canvas. Ticks pump the scheduler;
// window and mouse events feed the renderer.
type Player struct {
	name     string
	cfg      *config.Config
	th       theme.Theme
	scale    float64
	snapDir  string
	interval time.Duration

	canvas   *surface.Braille
	sched    *render.QueueScheduler
	renderer *render.Renderer
	frames   *frameLog

	width, height int
	lastTick      time.Time
	fps           []float64
	showHelp      bool
	status        string
	err           error
}

func NewPlayer(opts PlayerOptions) Player {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	log := &frameLog{}
	sched := render.NewQueueScheduler()
	r := render.NewRenderer(render.NewEffect(cfg, opts.Theme), sched,
		render.WithDebounce(cfg.Resize.Debounce),
		render.WithFrameHook(log.record),
	)

	return Player{
		name:     opts.Name,
		cfg:      cfg,
		th:       opts.Theme,
		scale:    scale,
		snapDir:  opts.SnapshotDir,
		interval: cfg.FrameInterval(),
		canvas:   surface.NewBraille(defaultCols, defaultRows, scale),
		sched:    sched,
		renderer: r,
		frames:   log,
	}
}

func (p Player) Renderer() *render.Renderer { return p.renderer }

func (p Player) Canvas() *surface.Braille { return p.canvas }

func (p Player) Err() error { return p.err }

func (p Player) Init() tea.Cmd {
	if err := p.renderer.Mount(p.canvas); err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return tick(p.interval)
}

type errMsg struct{ err error }

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			p.renderer.Unmount()
			return p, tea.Quit
		case " ", "p":
			if p.renderer.State() == render.Animating {
				p.renderer.Pause()
			} else if err := p.renderer.Resume(); err != nil {
				p.status = err.Error()
			}
		case "t":
			p.th = theme.Next(p.th)
			p.renderer.SetTheme(p.th)
		case "s":
			p.status = p.snapshot()
		case "?":
			p.showHelp = !p.showHelp
		}

	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		cols, rows := p.canvasCells()
		p.renderer.Resize(int(float64(cols*2)*p.scale), int(float64(rows*4)*p.scale))

	case tea.MouseMsg:
		x, y, inside := p.toCanvas(msg.X, msg.Y)
		if inside {
			p.renderer.PointerMove(x, y)
		} else {
			p.renderer.PointerLeave()
		}

	case TickMsg:
		now := time.Time(msg)
		if !p.lastTick.IsZero() {
			if dt := now.Sub(p.lastTick).Seconds(); dt > 0 {
				p.fps = append(p.fps, 1/dt)
				if len(p.fps) > historyLimit {
					p.fps = p.fps[len(p.fps)-historyLimit:]
				}
			}
		}
		p.lastTick = now
		p.sched.Flush(now)

		if err := p.renderer.Err(); err != nil {
			p.err = err
			return p, tea.Quit
		}
		return p, tick(p.interval)

	case errMsg:
		p.err = msg.err
		return p, tea.Quit
	}
	return p, nil
}

// canvasCells is the braille area left after the stats panel.
func (p Player) canvasCells() (int, int) {
	cols := p.width - statsWidth - 2*padX - 1
	rows := p.height - 2*padY
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// toCanvas maps a terminal cell to the logical pixel at its center.
func (p Player) toCanvas(col, row int) (float64, float64, bool) {
	cx, cy := col-padX, row-padY
	if cx < 0 || cy < 0 || cx >= p.canvas.Width || cy >= p.canvas.Height {
		return 0, 0, false
	}
	x := (float64(cx*2) + 1) * p.scale
	y := (float64(cy*4) + 2) * p.scale
	return x, y, true
}

func (p Player) snapshot() string {
	dir := p.snapDir
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("%s_%d.svg", p.name, time.Now().Unix())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(export.BrailleSVG(p.canvas, 4, p.th)), 0644); err != nil {
		return "snapshot failed: " + err.Error()
	}
	return "saved " + path
}

func (p Player) View() string {
	canvas := lipgloss.NewStyle().Foreground(p.th.Primary).Render(p.canvas.String())
	canvasView := canvasStyle.Render(canvas)

	header := lipgloss.NewStyle().Foreground(p.th.Accent).Bold(true).MarginBottom(1)
	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(p.name)) + "\n")
	s.WriteString(strings.ToUpper(p.renderer.State().String()) + "\n\n")

	if len(p.frames.micros) > 1 {
		chart := asciigraph.Plot(p.frames.micros, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("frame µs"))
		s.WriteString(lipgloss.NewStyle().Foreground(p.th.Accent).Render(chart) + "\n\n")
	}

	fps := 0.0
	if len(p.fps) > 0 {
		fps = p.fps[len(p.fps)-1]
	}
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Effect", p.cfg.Effect)
	row("Theme", p.th.Name)
	row("Frames", fmt.Sprintf("%d", p.renderer.Frames()))
	row("FPS", fmt.Sprintf("%.0f %s", fps, sparkline(p.fps, 12)))
	row("Canvas", fmt.Sprintf("%dx%d", p.frames.last.Width, p.frames.last.Height))
	if p.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(p.th.Muted).Render(p.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause T:Theme S:Snap\n?:Help    Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if p.showHelp {
		return `
╔══════════════════════════════════╗
║         KEYBOARD SHORTCUTS       ║
╠══════════════════════════════════╣
║  Space  - Pause/Resume           ║
║  T      - Cycle themes           ║
║  S      - Save SVG snapshot      ║
║  Mouse  - Move the pointer       ║
║  Q      - Quit                   ║
║  ?      - Toggle this help       ║
╚══════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var sb strings.Builder
	for _, v := range data {
		idx := int((v - lo) / span * 7)
		sb.WriteRune(chars[max(0, min(idx, 7))])
	}
	return sb.String()
}

// Play runs a player full screen until the user quits.
func Play(opts PlayerOptions) error {
	prog := tea.NewProgram(NewPlayer(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if p, ok := final.(Player); ok {
		p.renderer.Unmount()
		return p.err
	}
	return nil
}
