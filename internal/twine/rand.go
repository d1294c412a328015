package twine

import "math/rand/v2"

// pcgStream is the fixed PCG stream selector; the seed picks the state.
const pcgStream = 0x9e3779b97f4a7c15

// Rand is the single random source of a generation run.
// It is not safe for concurrent use.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int32) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(uint64(uint32(seed)), pcgStream))}
}

// Range returns a uniform float in [min, max).
func (r *Rand) Range(min, max float32) float32 {
	return min + r.r.Float32()*(max-min)
}

// IntRange returns a uniform int in [min, max). It returns min when max <= min.
func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min)
}
