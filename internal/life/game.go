package life

// Status is the position of a Game in its reset/step lifecycle.
type Status int

const (
	Fresh Status = iota
	Advancing
	CycleFound
)

func (s Status) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Advancing:
		return "advancing"
	case CycleFound:
		return "cycle found"
	default:
		return "unknown"
	}
}

// Game owns the current state and the history of visited states since the
// last reset.
type Game struct {
	width, height int
	current       State
	history       History
	status        Status
}

type Option func(*Game)

// WithHistory selects the cycle detector. The default is a ScanHistory.
func WithHistory(h History) Option {
	return func(g *Game) { g.history = h }
}

func New(width, height int, opts ...Option) *Game {
	g := &Game{
		width:  max(width, 0),
		height: max(height, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.history == nil {
		g.history = NewScanHistory()
	}
	g.Reset()
	return g
}

// Reset clears history and replaces the current state with an all-dead
// grid at generation 0.
func (g *Game) Reset() {
	g.history.Clear()
	g.current = State{Generation: 0, Grid: NewGrid(g.width, g.height)}
	g.status = Fresh
}

// Randomize fills the current grid from src. Generation and history are
// unchanged.
func (g *Game) Randomize(src RandomSource) {
	g.current.Grid.Randomize(src)
}

// Step advances one generation. If the new grid equals a recorded grid it
// returns that state's generation and true, and the new state is not
// recorded.
func (g *Game) Step() (int, bool) {
	if g.history.Len() == 0 {
		g.history.Record(g.current.Clone())
	}

	g.current = State{
		Generation: g.current.Generation + 1,
		Grid:       g.current.Grid.Next(),
	}

	if start, ok := g.history.Match(g.current.Grid); ok {
		g.status = CycleFound
		return start, true
	}

	// After a rewind the generation may already be recorded.
	if _, exists := g.history.Lookup(g.current.Generation); !exists {
		g.history.Record(g.current.Clone())
	}
	g.status = Advancing
	return 0, false
}

// RunUntilCycle steps at most maxGenerations times and returns the start
// generation of the first cycle found.
func (g *Game) RunUntilCycle(maxGenerations int) (int, bool) {
	for i := 0; i < maxGenerations; i++ {
		if start, ok := g.Step(); ok {
			return start, true
		}
	}
	return 0, false
}

// RevertTo replaces the current state with a copy of the state recorded at
// generation. History is not modified. It reports false, and does nothing,
// when no such state was recorded.
func (g *Game) RevertTo(generation int) bool {
	s, ok := g.history.Lookup(generation)
	if !ok {
		return false
	}
	g.current = s.Clone()
	return true
}

func (g *Game) RevertToInitial() bool {
	return g.RevertTo(0)
}

func (g *Game) Generation() int { return g.current.Generation }
func (g *Game) Status() Status  { return g.status }
func (g *Game) IsEmpty() bool   { return g.current.Grid.IsEmpty() }
func (g *Game) Width() int      { return g.width }
func (g *Game) Height() int     { return g.height }
func (g *Game) HistoryLen() int { return g.history.Len() }

// Grid returns a copy of the current grid.
func (g *Game) Grid() *Grid {
	return g.current.Grid.Clone()
}

// State returns a copy of the current state.
func (g *Game) State() State {
	return g.current.Clone()
}

// States returns copies of the recorded states in generation order.
func (g *Game) States() []State {
	recorded := g.history.States()
	out := make([]State, len(recorded))
	for i, s := range recorded {
		out[i] = s.Clone()
	}
	return out
}

func (g *Game) Generations() []int {
	recorded := g.history.States()
	out := make([]int, len(recorded))
	for i, s := range recorded {
		out[i] = s.Generation
	}
	return out
}

// Populations returns the live cell count of each recorded state.
func (g *Game) Populations() []int {
	recorded := g.history.States()
	out := make([]int, len(recorded))
	for i, s := range recorded {
		out[i] = s.Grid.Population()
	}
	return out
}
