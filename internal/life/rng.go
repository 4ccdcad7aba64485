package life

import "math/rand/v2"

// RandomSource supplies one independent boolean per cell when randomizing.
type RandomSource interface {
	Bool() bool
}

// RNG is a deterministic RandomSource backed by a PCG generator.
type RNG struct {
	r *rand.Rand
}

func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// Bool returns a fair coin flip.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}
