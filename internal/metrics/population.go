package metrics

import "github.com/san-kum/lifeloop/internal/life"

// Population is the mean number of live cells.
type Population struct {
	name    string
	total   int
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s life.State) {
	p.total += s.Grid.Population()
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.total) / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// Peak is the largest number of live cells seen.
type Peak struct {
	name string
	peak int
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s life.State) {
	p.peak = max(p.peak, s.Grid.Population())
}

func (p *Peak) Value() float64 { return float64(p.peak) }
func (p *Peak) Reset()         { p.peak = 0 }

// Density is the mean fraction of live cells.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(s life.State) {
	area := s.Grid.Width() * s.Grid.Height()
	if area > 0 {
		d.sum += float64(s.Grid.Population()) / float64(area)
	}
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}
