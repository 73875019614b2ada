package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme handed to effects and hosts. Colors for the
// canvas are #RRGGBBAA strings; the terminal chrome uses lipgloss colors.
type Theme struct {
	Name       string
	Dark       bool
	GridLine   string
	Dot        string
	Background string

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
}

var (
	Dark = Theme{
		Name:       "dark",
		Dark:       true,
		GridLine:   "#ffffff14", // white at 0.08
		Dot:        "#ffffff4d", // white at 0.3
		Background: "#0a0a0a",
		Primary:    lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#666666"),
	}

	Light = Theme{
		Name:       "light",
		Dark:       false,
		GridLine:   "#00000014", // black at 0.08
		Dot:        "#00000033", // black at 0.2
		Background: "#fafafa",
		Primary:    lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#0077be"),
		Text:       lipgloss.Color("#333333"),
		Muted:      lipgloss.Color("#888888"),
	}

	Themes = []Theme{Dark, Light}
)

// Get returns a theme by name, falling back to Dark.
func Get(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Dark
}

// Next cycles to the theme after t.
func Next(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Dark
}

func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
