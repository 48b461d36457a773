package ewn

import "math/rand"

// Randomness abstracts the single process-wide PRNG so tests can
// substitute a deterministic sequence (§5: "a single pseudo-random
// generator is seeded from the wall clock at startup; all stochastic
// selections... draw from it in the order they are performed").
// Grounded on Gongo's Randomness interface (robot.go).
type Randomness interface {
	// Intn returns a pseudo-random number in [0,n).
	Intn(n int) int
}

// realRandomness wraps math/rand.Rand to satisfy Randomness.
type realRandomness struct {
	r *rand.Rand
}

// NewRandomness builds the production Randomness backed by
// math/rand, seeded as directed by the caller (the agent loop seeds
// it from the wall clock once at process start).
func NewRandomness(seed int64) Randomness {
	return realRandomness{r: rand.New(rand.NewSource(seed))}
}

func (r realRandomness) Intn(n int) int { return r.r.Intn(n) }
