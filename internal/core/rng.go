package core

import "math/rand/v2"

// pcgStream selects the PCG sequence; the seed selects the position in it.
const pcgStream = 0x9e3779b97f4a7c15

// RNG draws the random quantities of plate growth. Two RNGs built from the
// same seed produce the same draws.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), pcgStream))}
}

// FromRand wraps an existing source.
func FromRand(r *rand.Rand) *RNG { return &RNG{r: r} }

// Uniform returns a value in [lo, hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// PointIn returns a point drawn uniformly from [0,w) x [0,h).
func (r *RNG) PointIn(w, h float64) (float64, float64) {
	x := r.Uniform(0, w)
	return x, r.Uniform(0, h)
}
