package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lifeloop/internal/life"
)

func blinkerStates(t *testing.T) []life.State {
	t.Helper()
	h, err := life.ParseGrid(".....\n.....\n.###.\n.....\n.....")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return []life.State{
		{Generation: 0, Grid: h},
		{Generation: 1, Grid: h.Next()},
	}
}

func TestCollect_Blinker(t *testing.T) {
	got := Collect(Default(), blinkerStates(t))

	want := map[string]float64{
		"population": 3,
		"peak":       3,
		"density":    3.0 / 25.0,
		"activity":   4.0 / 25.0,
	}
	for name, v := range want {
		if math.Abs(got[name]-v) > 1e-9 {
			t.Errorf("%s = %f, want %f", name, got[name], v)
		}
	}
}

func TestActivity_StillLife(t *testing.T) {
	block, err := life.ParseGrid("....\n.##.\n.##.\n....")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := NewActivity()
	for gen := 0; gen < 4; gen++ {
		a.Observe(life.State{Generation: gen, Grid: block})
	}
	if a.Value() != 0 {
		t.Errorf("activity of a still life = %f, want 0", a.Value())
	}
}

func TestMetricReset(t *testing.T) {
	states := blinkerStates(t)
	for _, m := range Default() {
		for _, s := range states {
			m.Observe(s)
		}
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s = %f after reset, want 0", m.Name(), m.Value())
		}
	}
}

func TestDensity_Degenerate(t *testing.T) {
	d := NewDensity()
	d.Observe(life.State{Grid: life.NewGrid(0, 0)})
	if d.Value() != 0 {
		t.Errorf("density of an empty board = %f, want 0", d.Value())
	}
}
