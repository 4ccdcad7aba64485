package search

import (
	"time"

	"github.com/san-kum/lifeloop/internal/life"
)

type Config struct {
	Width          int
	Height         int
	MaxGenerations int
	// MinLoopLength rejects loops whose length is not strictly greater.
	MinLoopLength int
	// MaxAttempts of 0 searches until a loop is found or ctx is canceled.
	MaxAttempts int
	Seed        uint64
	Detector    string
}

func DefaultConfig() Config {
	return Config{
		Width:          10,
		Height:         10,
		MaxGenerations: 1000,
		MinLoopLength:  5,
		Detector:       "scan",
	}
}

// Outcome classifies a finished attempt.
type Outcome int

const (
	Exhausted Outcome = iota
	Empty
	TooShort
	Accepted
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "exhausted"
	case Empty:
		return "empty"
	case TooShort:
		return "too short"
	case Accepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// Attempt summarizes one reset, randomize and run.
type Attempt struct {
	Number      int
	Seed        uint64
	Outcome     Outcome
	Generations int
	CycleStart  int
	LoopLength  int
}

type AttemptObserver interface {
	OnAttempt(a Attempt)
}

// ObserverFunc adapts a function to AttemptObserver.
type ObserverFunc func(a Attempt)

func (f ObserverFunc) OnAttempt(a Attempt) { f(a) }

// Result describes an accepted loop.
type Result struct {
	Attempt    int
	Seed       uint64
	Width      int
	Height     int
	CycleStart int
	// DetectedAt is the generation whose grid repeated CycleStart.
	DetectedAt int
	LoopLength int
	Initial    *life.Grid
	// Loop holds one grid per loop phase, starting at CycleStart.
	Loop        []*life.Grid
	Populations []int
	Metrics     map[string]float64
}

// Frame is one replayed generation handed to a Sink. Grid is a copy.
type Frame struct {
	Generation int
	// Phase is the offset into the loop, or -1 before the cycle start.
	Phase      int
	CycleStart int
	LoopLength int
	Attempt    int
	Grid       *life.Grid
}

// Sink displays replayed frames. It must not retain Grid past the call
// unless it owns the copy.
type Sink interface {
	Render(f Frame) error
}

type ReplayOptions struct {
	// FromInitial replays from generation 0 instead of the cycle start.
	FromInitial bool
	Delay       time.Duration
	// Frames of 0 replays until ctx is canceled.
	Frames int
}
