package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the palette for the player.
type Theme struct {
	Name      string
	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Swapped   lipgloss.Color
	Sorted    lipgloss.Color
	Pivot     lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Bar:       lipgloss.Color("242"),
		Comparing: lipgloss.Color("220"),
		Swapped:   lipgloss.Color("203"),
		Sorted:    lipgloss.Color("82"),
		Pivot:     lipgloss.Color("213"),
		Accent:    lipgloss.Color("86"),
		Text:      lipgloss.Color("255"),
		Muted:     lipgloss.Color("238"),
		Error:     lipgloss.Color("196"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Bar:       lipgloss.Color("#4488aa"),
		Comparing: lipgloss.Color("#ffd700"),
		Swapped:   lipgloss.Color("#ff4444"),
		Sorted:    lipgloss.Color("#00ff88"),
		Pivot:     lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#224455"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Bar:       lipgloss.Color("#8b6b8c"),
		Comparing: lipgloss.Color("#feca57"),
		Swapped:   lipgloss.Color("#ff6b6b"),
		Sorted:    lipgloss.Color("#5fd068"),
		Pivot:     lipgloss.Color("#ff9ff3"),
		Accent:    lipgloss.Color("#ffc048"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#4d3b4e"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Bar:       lipgloss.Color("#005500"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapped:   lipgloss.Color("#88ff88"),
		Sorted:    lipgloss.Color("#00ff00"),
		Pivot:     lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#003300"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Bar:       lipgloss.Color("#888888"),
		Comparing: lipgloss.Color("#ffffff"),
		Swapped:   lipgloss.Color("#cccccc"),
		Sorted:    lipgloss.Color("#555555"),
		Pivot:     lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#333333"),
		Error:     lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{ThemeDefault, ThemeOcean, ThemeSunset, ThemeRetro, ThemeMono}
)

// GetTheme returns the named theme, or the default one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func (t Theme) style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
