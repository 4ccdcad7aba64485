package life

import (
	"fmt"
	"sort"
)

// State pairs a generation index with the grid reached at that generation.
type State struct {
	Generation int
	Grid       *Grid
}

func (s State) Clone() State {
	return State{Generation: s.Generation, Grid: s.Grid.Clone()}
}

// History records visited states for cycle detection. Recorded states must
// have strictly increasing generations; Match returns the earliest
// generation whose grid equals g.
type History interface {
	Record(s State)
	Match(g *Grid) (int, bool)
	Lookup(generation int) (State, bool)
	Len() int
	States() []State
	Clear()
}

// ScanHistory compares against every recorded grid in order.
type ScanHistory struct {
	states []State
}

func NewScanHistory() *ScanHistory {
	return &ScanHistory{states: make([]State, 0, 64)}
}

func (h *ScanHistory) Record(s State) { h.states = append(h.states, s) }

func (h *ScanHistory) Match(g *Grid) (int, bool) {
	for _, s := range h.states {
		if s.Grid.Equal(g) {
			return s.Generation, true
		}
	}
	return 0, false
}

func (h *ScanHistory) Lookup(generation int) (State, bool) {
	return lookup(h.states, generation)
}

func (h *ScanHistory) Len() int        { return len(h.states) }
func (h *ScanHistory) States() []State { return h.states }
func (h *ScanHistory) Clear()          { h.states = h.states[:0] }

// IndexHistory keeps a map from grid key to the first generation that
// produced it, so Match costs one key computation instead of a scan.
type IndexHistory struct {
	states []State
	index  map[string]int
}

func NewIndexHistory() *IndexHistory {
	return &IndexHistory{
		states: make([]State, 0, 64),
		index:  make(map[string]int),
	}
}

func (h *IndexHistory) Record(s State) {
	h.states = append(h.states, s)
	key := s.Grid.Key()
	if _, seen := h.index[key]; !seen {
		h.index[key] = s.Generation
	}
}

func (h *IndexHistory) Match(g *Grid) (int, bool) {
	gen, ok := h.index[g.Key()]
	return gen, ok
}

func (h *IndexHistory) Lookup(generation int) (State, bool) {
	return lookup(h.states, generation)
}

func (h *IndexHistory) Len() int        { return len(h.states) }
func (h *IndexHistory) States() []State { return h.states }

func (h *IndexHistory) Clear() {
	h.states = h.states[:0]
	clear(h.index)
}

// lookup binary-searches states, which are sorted by generation.
func lookup(states []State, generation int) (State, bool) {
	i := sort.Search(len(states), func(i int) bool { return states[i].Generation >= generation })
	if i < len(states) && states[i].Generation == generation {
		return states[i], true
	}
	return State{}, false
}

var detectors = map[string]func() History{
	"scan":  func() History { return NewScanHistory() },
	"index": func() History { return NewIndexHistory() },
}

// NewHistory returns the detector registered under name.
func NewHistory(name string) (History, error) {
	fn, ok := detectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
	}
	return fn(), nil
}

// Detectors lists the registered detector names in sorted order.
func Detectors() []string {
	names := make([]string, 0, len(detectors))
	for name := range detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
