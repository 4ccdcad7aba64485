package metrics

import "github.com/san-kum/lifeloop/internal/life"

// Activity is the mean fraction of cells that change between consecutive
// observations. A still life scores 0.
type Activity struct {
	name        string
	prev        *life.Grid
	sum         float64
	transitions int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(s life.State) {
	g := s.Grid
	if a.prev != nil && a.prev.Width() == g.Width() && a.prev.Height() == g.Height() {
		area := g.Width() * g.Height()
		if area > 0 {
			changed := 0
			for r := 0; r < g.Height(); r++ {
				for c := 0; c < g.Width(); c++ {
					if a.prev.Alive(r, c) != g.Alive(r, c) {
						changed++
					}
				}
			}
			a.sum += float64(changed) / float64(area)
		}
		a.transitions++
	}
	a.prev = g
}

func (a *Activity) Value() float64 {
	if a.transitions == 0 {
		return 0
	}
	return a.sum / float64(a.transitions)
}

func (a *Activity) Reset() {
	a.prev = nil
	a.sum = 0
	a.transitions = 0
}
