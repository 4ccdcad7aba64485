package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the board and the panels around it.
type Theme struct {
	Name   string
	Alive  lipgloss.Color
	Dead   lipgloss.Color
	Border lipgloss.Color
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	// Loop colors the board once replay has reached the cycle start.
	Loop lipgloss.Color
}

var (
	ThemeRetro = Theme{
		Name:   "retro",
		Alive:  lipgloss.Color("#00ff00"), // green phosphor
		Dead:   lipgloss.Color("#002200"),
		Border: lipgloss.Color("#005500"),
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#007700"),
		Accent: lipgloss.Color("#ffff00"),
		Loop:   lipgloss.Color("#88ff88"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Alive:  lipgloss.Color("#ff00ff"),
		Dead:   lipgloss.Color("#1a001a"),
		Border: lipgloss.Color("#444466"),
		Title:  lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#ffff00"),
		Loop:   lipgloss.Color("#00ffff"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Alive:  lipgloss.Color("#ffffff"),
		Dead:   lipgloss.Color("#222222"),
		Border: lipgloss.Color("#555555"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#0088ff"),
		Loop:   lipgloss.Color("#0088ff"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Alive:  lipgloss.Color("#00a8cc"),
		Dead:   lipgloss.Color("#001a33"),
		Border: lipgloss.Color("#0077be"),
		Title:  lipgloss.Color("#e0f0ff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#ffd700"),
		Loop:   lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Alive:  lipgloss.Color("#ff6b6b"),
		Dead:   lipgloss.Color("#2d1b2e"),
		Border: lipgloss.Color("#8b6b8c"),
		Title:  lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#ff9ff3"),
		Loop:   lipgloss.Color("#feca57"),
	}

	Themes = []Theme{
		ThemeRetro,
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns the named theme, falling back to retro.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRetro
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t in Themes, wrapping around.
func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
