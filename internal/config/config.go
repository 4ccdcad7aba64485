package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifeloop/internal/life"
	"github.com/san-kum/lifeloop/internal/search"
)

const (
	DefaultWidth          = 10
	DefaultHeight         = 10
	DefaultMaxGenerations = 1000
	DefaultMinLoopLength  = 5
	DefaultDelay          = 100 * time.Millisecond
	DefaultDetector       = "scan"
	DefaultRenderer       = "tui"
	DefaultTheme          = "retro"
	DefaultReplayFrom     = "start"
)

var (
	Renderers   = []string{"tui", "term"}
	ReplayFroms = []string{"start", "initial"}
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	MaxGenerations int           `yaml:"max_generations"`
	MinLoopLength  int           `yaml:"min_loop_length"`
	MaxAttempts    int           `yaml:"max_attempts"`
	Seed           uint64        `yaml:"seed"`
	Delay          time.Duration `yaml:"delay"`
	Detector       string        `yaml:"detector"`
	Renderer       string        `yaml:"renderer"`
	Theme          string        `yaml:"theme"`
	ReplayFrom     string        `yaml:"replay_from"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		MaxGenerations: DefaultMaxGenerations,
		MinLoopLength:  DefaultMinLoopLength,
		Delay:          DefaultDelay,
		Detector:       DefaultDetector,
		Renderer:       DefaultRenderer,
		Theme:          DefaultTheme,
		ReplayFrom:     DefaultReplayFrom,
	}
}

// Load reads a yaml file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return Read(path, DefaultConfig())
}

// Read reads a yaml file over a copy of base.
func Read(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.MaxGenerations <= 0:
		return fmt.Errorf("%w: max_generations %d", ErrInvalid, c.MaxGenerations)
	case c.MinLoopLength < 0:
		return fmt.Errorf("%w: min_loop_length %d", ErrInvalid, c.MinLoopLength)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts %d", ErrInvalid, c.MaxAttempts)
	case c.Delay < 0:
		return fmt.Errorf("%w: delay %s", ErrInvalid, c.Delay)
	case !slices.Contains(life.Detectors(), c.Detector):
		return fmt.Errorf("%w: detector %q (available: %v)", ErrInvalid, c.Detector, life.Detectors())
	case !slices.Contains(Renderers, c.Renderer):
		return fmt.Errorf("%w: renderer %q (available: %v)", ErrInvalid, c.Renderer, Renderers)
	case !slices.Contains(ReplayFroms, c.ReplayFrom):
		return fmt.Errorf("%w: replay_from %q (available: %v)", ErrInvalid, c.ReplayFrom, ReplayFroms)
	}
	return nil
}

func (c *Config) SearchConfig() search.Config {
	return search.Config{
		Width:          c.Width,
		Height:         c.Height,
		MaxGenerations: c.MaxGenerations,
		MinLoopLength:  c.MinLoopLength,
		MaxAttempts:    c.MaxAttempts,
		Seed:           c.Seed,
		Detector:       c.Detector,
	}
}

func (c *Config) ReplayOptions() search.ReplayOptions {
	return search.ReplayOptions{
		FromInitial: c.ReplayFrom == "initial",
		Delay:       c.Delay,
	}
}
