package viz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifeloop/internal/life"
	"github.com/san-kum/lifeloop/internal/search"
)

const (
	searchBatch      = 40 * time.Millisecond
	minFrameDelay    = 16 * time.Millisecond
	chartWidth       = 40
	chartHeight      = 5
	populationWindow = 120
	// Grids wider than this start in braille mode.
	brailleThreshold = 40
)

type phase int

const (
	phaseSearching phase = iota
	phaseReplay
	phaseFailed
)

// TickMsg advances replay by one generation. Ticks left over from an
// earlier replay carry a stale id and are dropped.
type TickMsg struct{ id int }

// searchMsg reports a batch of attempts run off the UI goroutine.
type searchMsg struct {
	attempts []search.Attempt
	result   *search.Result
	err      error
}

// Model searches for a loop and then replays it. While a search batch is in
// flight the game belongs to the batch; Update touches it only in replay.
type Model struct {
	ctx           context.Context
	searcher      *search.Searcher
	cfg           search.Config
	opts          search.ReplayOptions
	phase         phase
	attempts      int
	outcomes      map[search.Outcome]int
	last          search.Attempt
	result        *search.Result
	frame         search.Frame
	population    []float64
	err           error
	tickID        int
	running       bool
	braille       bool
	showHelp      bool
	spinner       int
	theme         Theme
	st            styles
	width, height int
}

func NewModel(ctx context.Context, s *search.Searcher, opts search.ReplayOptions, theme string) Model {
	t := GetTheme(theme)
	return Model{
		ctx:      ctx,
		searcher: s,
		cfg:      s.Config(),
		opts:     opts,
		phase:    phaseSearching,
		outcomes: make(map[search.Outcome]int),
		running:  true,
		braille:  s.Config().Width > brailleThreshold,
		theme:    t,
		st:       newStyles(t),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.searchCmd()
}

// Result is the loop being replayed, or nil while searching.
func (m Model) Result() *search.Result { return m.result }

// Frame is the generation on screen during replay.
func (m Model) Frame() search.Frame { return m.frame }

func (m Model) searchCmd() tea.Cmd {
	ctx, s := m.ctx, m.searcher
	return func() tea.Msg { return runBatch(ctx, s, searchBatch) }
}

// runBatch makes attempts for about budget and reports them together, so
// the view refreshes without a message per attempt.
func runBatch(ctx context.Context, s *search.Searcher, budget time.Duration) searchMsg {
	var msg searchMsg
	deadline := time.Now().Add(budget)
	for {
		if err := s.CheckBudget(); err != nil {
			msg.err = err
			return msg
		}
		a, res, err := s.Attempt(ctx)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.attempts = append(msg.attempts, a)
		if res != nil {
			msg.result = res
			return msg
		}
		if !time.Now().Before(deadline) {
			return msg
		}
	}
}

func (m Model) tick() tea.Cmd {
	id := m.tickID
	delay := max(m.opts.Delay, minFrameDelay)
	return tea.Tick(delay, func(time.Time) tea.Msg { return TickMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case searchMsg:
		return m.onSearch(msg)
	case TickMsg:
		if m.phase != phaseReplay || msg.id != m.tickID {
			return m, nil
		}
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) onSearch(msg searchMsg) (tea.Model, tea.Cmd) {
	for _, a := range msg.attempts {
		m.outcomes[a.Outcome]++
		m.last = a
	}
	m.attempts += len(msg.attempts)
	m.spinner++

	switch {
	case msg.err != nil:
		if errors.Is(msg.err, context.Canceled) {
			return m, tea.Quit
		}
		m.phase, m.err = phaseFailed, msg.err
		return m, nil
	case msg.result != nil:
		m.startReplay(msg.result)
		return m, m.tick()
	}
	return m, m.searchCmd()
}

func (m *Model) startReplay(res *search.Result) {
	m.result = res
	m.phase = phaseReplay
	m.running = true
	m.tickID++
	m.population = nil

	from := res.CycleStart
	if m.opts.FromInitial {
		from = 0
	}
	m.seek(from)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "t":
		m.theme = nextTheme(m.theme)
		m.st = newStyles(m.theme)
		return m, nil
	case "b":
		m.braille = !m.braille
		return m, nil
	}

	if m.phase != phaseReplay {
		return m, nil
	}
	switch msg.String() {
	case " ":
		m.running = !m.running
	case "[":
		m.running = false
		m.rewind()
	case "]":
		m.running = false
		m.step()
	case "i":
		m.seek(0)
	case "s":
		m.seek(m.result.CycleStart)
	case "n":
		m.phase = phaseSearching
		m.result = nil
		m.tickID++
		return m, m.searchCmd()
	}
	return m, nil
}

func (m *Model) step() {
	m.searcher.Game().Step()
	m.observe()
}

// rewind moves back one generation. Generations past detection were never
// recorded, so they are folded back into the loop.
func (m *Model) rewind() {
	target := m.frame.Generation - 1
	if target < 0 {
		return
	}
	if res := m.result; target >= res.DetectedAt && res.LoopLength > 0 {
		target = res.CycleStart + (target-res.CycleStart)%res.LoopLength
	}
	m.seek(target)
}

func (m *Model) seek(generation int) {
	if m.searcher.Game().RevertTo(generation) {
		m.observe()
	}
}

func (m *Model) observe() {
	m.frame = m.searcher.Frame(m.result)
	m.population = append(m.population, float64(m.frame.Grid.Population()))
	if len(m.population) > populationWindow {
		m.population = m.population[len(m.population)-populationWindow:]
	}
}

func (m Model) View() string {
	var body string
	switch m.phase {
	case phaseSearching:
		body = m.viewSearching()
	case phaseReplay:
		body = m.viewReplay()
	case phaseFailed:
		body = m.viewFailed()
	}
	if m.showHelp {
		body = m.viewHelp() + "\n\n" + body
	}
	header := GradientText("LIFELOOP", m.theme.Title, m.theme.Accent) + "  " +
		m.st.muted.Render(fmt.Sprintf("%dx%d torus · %s detector", m.cfg.Width, m.cfg.Height, m.cfg.Detector))
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (m Model) viewSearching() string {
	var s strings.Builder
	s.WriteString(m.st.accent.Render(AnimatedSpinner(m.spinner)) + " " +
		m.st.title.Render(fmt.Sprintf("Searching for a loop longer than %d", m.cfg.MinLoopLength)) + "\n\n")
	s.WriteString(m.st.row("Attempt", m.attempts) + "\n")
	s.WriteString(m.st.row("No cycle", m.outcomes[search.Exhausted]) + "\n")
	s.WriteString(m.st.row("Died out", m.outcomes[search.Empty]) + "\n")
	s.WriteString(m.st.row("Too short", m.outcomes[search.TooShort]) + "\n")
	if m.attempts > 0 {
		s.WriteString(m.st.row("Last seed", m.last.Seed) + "\n")
		s.WriteString(m.st.row("Last result", fmt.Sprintf("%s after %d generations", m.last.Outcome, m.last.Generations)) + "\n")
	}
	if m.cfg.MaxAttempts > 0 {
		pct := float64(m.attempts) / float64(m.cfg.MaxAttempts)
		s.WriteString("\n" + ProgressBar(pct, 30) + m.st.muted.Render(fmt.Sprintf(" %d/%d", m.attempts, m.cfg.MaxAttempts)) + "\n")
	}
	s.WriteString("\n" + m.st.hints("q", "quit", "t", "theme", "?", "help"))
	return m.st.panel.Render(s.String())
}

func (m Model) viewReplay() string {
	f, res := m.frame, m.result
	board := m.st.panel.Render(m.renderBoard(f.Grid, f.Phase >= 0))

	var s strings.Builder
	if m.running {
		s.WriteString(StatusRunning.Render("▶ REPLAYING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("⏸ PAUSED") + "\n\n")
	}
	phaseText := "before loop"
	if f.Phase >= 0 {
		phaseText = fmt.Sprintf("%d of %d", f.Phase+1, f.LoopLength)
	}
	s.WriteString(m.st.row("Generation", f.Generation) + "\n")
	s.WriteString(m.st.row("Phase", phaseText) + "\n")
	s.WriteString(m.st.row("Loop length", res.LoopLength) + "\n")
	s.WriteString(m.st.row("Cycle start", res.CycleStart) + "\n")
	s.WriteString(m.st.row("Detected at", res.DetectedAt) + "\n")
	s.WriteString(m.st.row("Attempt", res.Attempt) + "\n")
	s.WriteString(m.st.row("Seed", res.Seed) + "\n")
	s.WriteString(m.st.row("Population", f.Grid.Population()) + "\n")

	if len(res.Metrics) > 0 {
		s.WriteString("\n" + m.st.title.Render("LOOP METRICS") + "\n")
		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			s.WriteString(m.st.row(name, fmt.Sprintf("%.3f", res.Metrics[name])) + "\n")
		}
	}

	s.WriteString("\n" + SparklineChart(m.population, chartWidth) + "\n")
	if pops := floats(res.Populations); plottable(pops) {
		chart := asciigraph.Plot(pops,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("population until detection"))
		s.WriteString("\n" + m.st.muted.Render(chart) + "\n")
	}

	s.WriteString("\n" + m.st.hints("space", "pause", "[ ]", "step", "i", "initial", "s", "loop start"))
	s.WriteString("\n" + m.st.hints("n", "next loop", "b", "braille", "t", "theme", "q", "quit"))
	stats := m.st.panel.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, board, " ", stats)
}

func (m Model) viewFailed() string {
	var s strings.Builder
	s.WriteString(StatusFailed.Render("✗ SEARCH STOPPED") + "\n\n")
	s.WriteString(m.st.value.Render(m.err.Error()) + "\n\n")
	s.WriteString(m.st.row("Attempts", m.attempts) + "\n")
	s.WriteString("\n" + m.st.hints("q", "quit"))
	return m.st.panel.Render(s.String())
}

func (m Model) viewHelp() string {
	lines := []string{
		"space  pause or resume replay",
		"[      back one generation",
		"]      forward one generation",
		"i      rewind to the initial grid",
		"s      rewind to the cycle start",
		"n      search for the next loop",
		"b      toggle braille rendering",
		"t      cycle themes",
		"?      toggle this help",
		"q      quit",
	}
	return m.st.panel.Render(m.st.title.Render("KEYS") + "\n\n" + strings.Join(lines, "\n"))
}

// renderBoard draws g with two columns per cell, or as braille dots.
func (m Model) renderBoard(g *life.Grid, inLoop bool) string {
	on := m.st.alive
	if inLoop {
		on = m.st.loop
	}
	if m.braille {
		return on.Render(GridCanvas(g).String())
	}

	alive, dead := on.Render("██"), m.st.dead.Render("··")
	rows := make([]string, g.Height())
	for r := range rows {
		var b strings.Builder
		for c := 0; c < g.Width(); c++ {
			if g.Alive(r, c) {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

func floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// plottable reports whether asciigraph has a range to scale.
func plottable(values []float64) bool {
	return len(values) > 1 && slices.Min(values) != slices.Max(values)
}

// Run searches and replays in a full-screen program until the user quits
// or ctx is canceled.
func Run(ctx context.Context, s *search.Searcher, opts search.ReplayOptions, theme string) error {
	p := tea.NewProgram(NewModel(ctx, s, opts, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.phase == phaseFailed {
		return m.err
	}
	return nil
}
