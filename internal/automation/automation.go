package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifeloop/internal/config"
	"github.com/san-kum/lifeloop/internal/export"
	"github.com/san-kum/lifeloop/internal/search"
)

var (
	ErrUnknownPreset = errors.New("automation: unknown preset")
	ErrEmptyScenario = errors.New("automation: scenario has no steps")
	ErrInvalidSweep  = errors.New("automation: sweep needs a positive attempt count")
)

// Scenario defines a scripted sequence of searches
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single search. Zero fields keep the preset's value.
type ScenarioStep struct {
	Name           string  `yaml:"name"`
	Preset         string  `yaml:"preset"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	MaxGenerations int     `yaml:"max_generations"`
	MinLoopLength  int     `yaml:"min_loop_length"`
	MaxAttempts    int     `yaml:"max_attempts"`
	Seed           *uint64 `yaml:"seed"`
	Detector       string  `yaml:"detector"`
	SaveAs         string  `yaml:"save_as"`
}

// StepResult is the outcome of one step. Result is nil when the attempt
// budget ran out before a loop was accepted.
type StepResult struct {
	Step     int
	Name     string
	Attempts int
	Result   *search.Result
	Elapsed  time.Duration
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}

	return &scenario, nil
}

// Config resolves the step's preset and overrides.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, s.Preset, config.ListPresets())
		}
	}

	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.MaxGenerations > 0 {
		cfg.MaxGenerations = s.MaxGenerations
	}
	if s.MinLoopLength > 0 {
		cfg.MinLoopLength = s.MinLoopLength
	}
	if s.MaxAttempts > 0 {
		cfg.MaxAttempts = s.MaxAttempts
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Detector != "" {
		cfg.Detector = s.Detector
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. A step that exhausts its
// attempts is reported, not treated as an error.
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		s, err := search.New(cfg.SearchConfig(), logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		start := time.Now()
		res, err := s.Run(ctx)
		sr := StepResult{Step: i + 1, Name: name, Attempts: s.Attempts(), Result: res, Elapsed: time.Since(start)}
		switch {
		case errors.Is(err, search.ErrExhausted):
			logger.Warn("no loop found", "step", i+1, "attempts", sr.Attempts)
		case err != nil:
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		case step.SaveAs != "":
			if err := export.SaveJSON(step.SaveAs, export.NewReport(res)); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("saved report", "step", i+1, "path", step.SaveAs)
		}

		results = append(results, sr)
	}

	return results, nil
}

type Size struct {
	Width, Height int
}

// Sweep runs a fixed number of attempts for every size and detector pair.
type Sweep struct {
	Sizes          []Size
	Detectors      []string
	Attempts       int
	MaxGenerations int
	Seed           uint64
}

// SweepResult holds the totals for one size and detector
type SweepResult struct {
	Size        Size
	Detector    string
	Attempts    int
	Generations int
	// Cycles counts attempts that found any cycle, empty or not.
	Cycles  int
	Elapsed time.Duration
}

func (r SweepResult) GenerationsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Generations) / r.Elapsed.Seconds()
}

// RunSweep executes a sweep. Equal seeds give every detector the same
// starting grids.
func RunSweep(ctx context.Context, sweep *Sweep, logger *log.Logger) ([]SweepResult, error) {
	if sweep.Attempts <= 0 {
		return nil, ErrInvalidSweep
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]SweepResult, 0, len(sweep.Sizes)*len(sweep.Detectors))

	for _, size := range sweep.Sizes {
		for _, detector := range sweep.Detectors {
			s, err := search.New(search.Config{
				Width:          size.Width,
				Height:         size.Height,
				MaxGenerations: sweep.MaxGenerations,
				MaxAttempts:    sweep.Attempts,
				Seed:           sweep.Seed,
				Detector:       detector,
			}, nil)
			if err != nil {
				return nil, err
			}

			r := SweepResult{Size: size, Detector: detector}
			s.AddObserver(search.ObserverFunc(func(a search.Attempt) {
				r.Generations += a.Generations
				if a.Outcome != search.Exhausted {
					r.Cycles++
				}
			}))

			start := time.Now()
			for s.CheckBudget() == nil {
				if _, _, err := s.Attempt(ctx); err != nil {
					return nil, err
				}
			}
			r.Elapsed = time.Since(start)
			r.Attempts = s.Attempts()

			logger.Debug("sweep point", "size", fmt.Sprintf("%dx%d", size.Width, size.Height), "detector", detector, "generations", r.Generations)
			results = append(results, r)
		}
	}

	return results, nil
}
