package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridfx/internal/config"
	"github.com/san-kum/gridfx/internal/theme"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var presetInfo = map[string]string{
	"hero":         "landing page grid",
	"about":        "slower, wider grid",
	"ripple":       "grid pushed by the pointer",
	"dots":         "dots swell near the pointer",
	"dots-section": "dots over a tall page",
	"dots-spring":  "dots settle on a spring",
}

type screen int

const (
	screenMenu screen = iota
	screenTune
	screenPlay
)

// param is one tunable number of a config.
type param struct {
	name string
	v    *float64
}

func params(cfg *config.Config) []param {
	if cfg.Effect == config.EffectDots {
		d := &cfg.Dots
		return []param{
			{"spacing", &d.Spacing},
			{"dot_size", &d.DotSize},
			{"radius", &d.InteractionRadius},
			{"growth", &d.GrowthFactor},
			{"ease", &d.Ease},
		}
	}
	w := &cfg.Wave
	return []param{
		{"grid_size", &w.GridSize},
		{"line_width", &w.LineWidth},
		{"wave_speed", &w.WaveSpeed},
		{"height", &w.WaveHeight},
		{"noise", &w.NoiseScale},
		{"shock", &w.ShockStrength},
	}
}

// Picker lists presets, lets the user tune one and then plays it.
type Picker struct {
	screen  screen
	cursor  int
	presets []string
	th      theme.Theme
	snapDir string

	selected string
	cfg      *config.Config
	params   []param
	pcursor  int
	editing  bool
	editBuf  string

	player *Player
	width  int
	height int
}

func NewPicker(th theme.Theme, snapDir string) Picker {
	return Picker{presets: config.ListPresets(), th: th, snapDir: snapDir}
}

func (m Picker) Init() tea.Cmd { return nil }

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.screen == screenPlay && m.player != nil {
		if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "q" || key.String() == "esc") {
			m.player.renderer.Unmount()
			m.player = nil
			m.screen = screenTune
			return m, tea.ClearScreen
		}
		next, cmd := m.player.Update(msg)
		p := next.(Player)
		m.player = &p
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.screen == screenTune {
			return m.tuneKey(msg)
		}
		return m.menuKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.params = params(m.cfg)
		m.pcursor = 0
		m.screen = screenTune
	}
	return m, nil
}

func (m Picker) tuneKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				*m.params[m.pcursor].v = val
				m.cfg.Validate()
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.pcursor > 0 {
			m.pcursor--
		}
	case "down", "j":
		if m.pcursor < len(m.params)-1 {
			m.pcursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%g", *m.params[m.pcursor].v)
	case "left", "h":
		m.nudge(0.9)
	case "right", "l":
		m.nudge(1.1)
	case "s":
		p := NewPlayer(PlayerOptions{Name: m.selected, Config: m.cfg, Theme: m.th, SnapshotDir: m.snapDir})
		m.player = &p
		m.screen = screenPlay
		size := func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} }
		return m, tea.Batch(tea.ClearScreen, p.Init(), size)
	}
	return m, nil
}

func (m *Picker) nudge(factor float64) {
	v := m.params[m.pcursor].v
	if *v == 0 {
		*v = 0.001
	}
	*v *= factor
	m.cfg.Validate()
}

func (m Picker) View() string {
	switch m.screen {
	case screenTune:
		return m.viewTune()
	case screenPlay:
		if m.player != nil {
			return m.player.View()
		}
	}
	return m.viewMenu()
}

func (m Picker) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("             " + cyan.Render("g r i d f x") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter tune   q quit") + "\n")
	return b.String()
}

func (m Picker) viewTune() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected) + "  " + dim.Render(presetInfo[m.selected]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, p := range m.params {
		val := fmt.Sprintf("%8.3f", *p.v)
		if m.editing && i == m.pcursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.pcursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", p.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", p.name)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

// Pick runs the preset picker full screen.
func Pick(th theme.Theme, snapDir string) error {
	prog := tea.NewProgram(NewPicker(th, snapDir), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Picker); ok && m.player != nil {
		m.player.renderer.Unmount()
		return m.player.err
	}
	return nil
}
