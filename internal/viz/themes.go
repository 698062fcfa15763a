package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the viewer panels.
type Theme struct {
	Name    string
	Header  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Chart   lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeReef = Theme{
		Name:    "reef",
		Header:  lipgloss.Color("86"),
		Label:   lipgloss.Color("245"),
		Value:   lipgloss.Color("252"),
		Accent:  lipgloss.Color("205"),
		Muted:   lipgloss.Color("240"),
		Chart:   lipgloss.Color("49"),
		Border:  lipgloss.Color("240"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeAbyss = Theme{
		Name:    "abyss",
		Header:  lipgloss.Color("#00a8cc"),
		Label:   lipgloss.Color("#4488aa"),
		Value:   lipgloss.Color("#e0f0ff"),
		Accent:  lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#335577"),
		Chart:   lipgloss.Color("#0077be"),
		Border:  lipgloss.Color("#224466"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Header:  lipgloss.Color("#ffffff"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#555555"),
		Chart:   lipgloss.Color("#aaaaaa"),
		Border:  lipgloss.Color("#444444"),
		Warning: lipgloss.Color("#ffffff"),
	}

	CurrentTheme = ThemeReef

	Themes = []Theme{
		ThemeReef,
		ThemeAbyss,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to reef.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeReef
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeReef
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
