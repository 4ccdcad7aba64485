package metrics

import "github.com/san-kum/lifeloop/internal/life"

// Metric accumulates a single summary value over a sequence of states.
type Metric interface {
	Name() string
	Observe(s life.State)
	Value() float64
	Reset()
}

// Default returns the metrics reported for every found loop.
func Default() []Metric {
	return []Metric{
		NewPopulation(),
		NewPeak(),
		NewDensity(),
		NewActivity(),
	}
}

// Collect resets ms, feeds them states in order and returns the values by name.
func Collect(ms []Metric, states []life.State) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range states {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
