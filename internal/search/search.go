package search

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lifeloop/internal/life"
	"github.com/san-kum/lifeloop/internal/metrics"
)

type Searcher struct {
	cfg       Config
	game      *life.Game
	logger    *log.Logger
	observers []AttemptObserver
	attempts  int
}

// New validates cfg and prepares a game of the configured size. A nil
// logger discards output.
func New(cfg Config, logger *log.Logger) (*Searcher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	history, err := life.NewHistory(cfg.Detector)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Searcher{
		cfg:       cfg,
		game:      life.New(cfg.Width, cfg.Height, life.WithHistory(history)),
		logger:    logger,
		observers: make([]AttemptObserver, 0),
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.MaxGenerations <= 0 {
		return fmt.Errorf("%w: max generations must be positive, got %d", ErrInvalidConfig, cfg.MaxGenerations)
	}
	if cfg.MinLoopLength < 0 {
		return fmt.Errorf("%w: min loop length must not be negative, got %d", ErrInvalidConfig, cfg.MinLoopLength)
	}
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("%w: max attempts must not be negative, got %d", ErrInvalidConfig, cfg.MaxAttempts)
	}
	return nil
}

func (s *Searcher) AddObserver(o AttemptObserver) { s.observers = append(s.observers, o) }

func (s *Searcher) Config() Config   { return s.cfg }
func (s *Searcher) Attempts() int    { return s.attempts }
func (s *Searcher) Game() *life.Game { return s.game }

// Attempt runs one reset, randomize and run. The Result is nil unless the
// attempt was accepted.
func (s *Searcher) Attempt(ctx context.Context) (Attempt, *Result, error) {
	if err := ctx.Err(); err != nil {
		return Attempt{}, nil, err
	}

	s.attempts++
	seed := s.cfg.Seed + uint64(s.attempts)

	s.game.Reset()
	s.game.Randomize(life.NewRNG(seed))
	initial := s.game.Grid()

	a := Attempt{Number: s.attempts, Seed: seed}
	start, found := s.game.RunUntilCycle(s.cfg.MaxGenerations)
	a.Generations = s.game.Generation()

	if found {
		a.CycleStart = start
		a.LoopLength = s.game.Generation() - start
	}
	switch {
	case !found:
		a.Outcome = Exhausted
	case s.game.IsEmpty():
		a.Outcome = Empty
	case a.LoopLength <= s.cfg.MinLoopLength:
		a.Outcome = TooShort
	default:
		a.Outcome = Accepted
	}

	for _, o := range s.observers {
		o.OnAttempt(a)
	}

	if a.Outcome != Accepted {
		s.logger.Debug("attempt rejected", "attempt", a.Number, "outcome", a.Outcome, "generations", a.Generations, "loop", a.LoopLength)
		return a, nil, nil
	}

	res := s.result(a, initial)
	s.logger.Info("loop found", "attempt", a.Number, "seed", a.Seed, "start", res.CycleStart, "length", res.LoopLength)
	return a, res, nil
}

func (s *Searcher) result(a Attempt, initial *life.Grid) *Result {
	states := s.game.States()
	loop := make([]life.State, 0, a.LoopLength)
	for _, st := range states {
		if st.Generation >= a.CycleStart {
			loop = append(loop, st)
		}
	}
	grids := make([]*life.Grid, len(loop))
	for i, st := range loop {
		grids[i] = st.Grid
	}

	return &Result{
		Attempt:     a.Number,
		Seed:        a.Seed,
		Width:       s.cfg.Width,
		Height:      s.cfg.Height,
		CycleStart:  a.CycleStart,
		DetectedAt:  a.Generations,
		LoopLength:  a.LoopLength,
		Initial:     initial,
		Loop:        grids,
		Populations: s.game.Populations(),
		Metrics:     metrics.Collect(metrics.Default(), loop),
	}
}

// Run attempts until a loop is accepted, the attempt budget is spent or ctx
// is canceled.
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	for {
		if err := s.CheckBudget(); err != nil {
			return nil, err
		}

		_, res, err := s.Attempt(ctx)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
}

// CheckBudget returns ErrExhausted once MaxAttempts attempts have been made.
func (s *Searcher) CheckBudget() error {
	if s.cfg.MaxAttempts > 0 && s.attempts >= s.cfg.MaxAttempts {
		return fmt.Errorf("%w after %d attempts", ErrExhausted, s.attempts)
	}
	return nil
}
