package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/lifeloop/internal/config"
	"github.com/san-kum/lifeloop/internal/search"
)

const (
	stateMenu = iota
	stateRun
)

// App lets the user pick a preset and then hands over to a Model.
type App struct {
	ctx     context.Context
	base    *config.Config
	logger  *log.Logger
	state   int
	cursor  int
	presets []string
	err     error
	live    Model
	st      styles
	theme   Theme
	width   int
	height  int
}

// NewApp builds the preset picker. Presets supply the grid size and
// budgets; everything else comes from base.
func NewApp(ctx context.Context, base *config.Config, logger *log.Logger) App {
	t := GetTheme(base.Theme)
	return App{
		ctx:     ctx,
		base:    base,
		logger:  logger,
		state:   stateMenu,
		presets: config.ListPresets(),
		theme:   t,
		st:      newStyles(t),
		width:   80,
		height:  24,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateRun {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return a.menuKey(msg)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "t":
		a.theme = nextTheme(a.theme)
		a.st = newStyles(a.theme)
	case "enter", " ":
		return a.start()
	}
	return a, nil
}

// selected merges the preset under the cursor with base.
func (a App) selected() *config.Config {
	cfg := config.GetPreset(a.presets[a.cursor])
	cfg.MaxAttempts = a.base.MaxAttempts
	cfg.Seed = a.base.Seed
	cfg.Delay = a.base.Delay
	cfg.Detector = a.base.Detector
	cfg.ReplayFrom = a.base.ReplayFrom
	cfg.Theme = a.theme.Name
	return cfg
}

func (a App) start() (tea.Model, tea.Cmd) {
	cfg := a.selected()
	s, err := search.New(cfg.SearchConfig(), a.logger)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil
	a.live = NewModel(a.ctx, s, cfg.ReplayOptions(), cfg.Theme)
	a.live.width, a.live.height = a.width, a.height
	a.state = stateRun
	return a, a.live.Init()
}

func (a App) View() string {
	if a.state == stateRun {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n    " + GradientText("LIFELOOP", a.theme.Title, a.theme.Accent) + "\n")
	b.WriteString("    " + a.st.muted.Render("game of life loop finder") + "\n")
	b.WriteString("    " + a.st.muted.Render("────────────────────────") + "\n\n")

	for i, name := range a.presets {
		p := config.Presets[name]
		desc := fmt.Sprintf("%dx%d  %d gens  loop > %d", p.Width, p.Height, p.MaxGenerations, p.MinLoopLength)
		if i == a.cursor {
			b.WriteString("    " + a.st.accent.Render("▸") + " " + a.st.selected.Render(fmt.Sprintf("%-10s", name)) + " " + a.st.value.Render(desc) + "\n")
		} else {
			b.WriteString("      " + a.st.muted.Render(fmt.Sprintf("%-10s", name)+" "+desc) + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + StatusFailed.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + a.st.hints("j/k", "navigate", "enter", "search", "t", "theme", "q", "quit") + "\n")
	return b.String()
}

// RunMenu shows the preset picker in a full-screen program.
func RunMenu(ctx context.Context, base *config.Config, logger *log.Logger) error {
	_, err := tea.NewProgram(NewApp(ctx, base, logger), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
