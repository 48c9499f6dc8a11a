package hnsw

import (
	"math"
	"math/rand"
)

// Sampler draws the per-insertion layer index (component F). It owns its
// own PRNG: given the same seed and the same sequence of Insert calls, it
// reproduces the same sequence of levels, and therefore the same graph
// (spec §4.6, §8 Determinism law).
type Sampler struct {
	rng    *rand.Rand
	invLnM float64
	seed   int64
	calls  uint64
}

// NewSampler returns a sampler for degree parameter m, seeded
// deterministically from seed.
func NewSampler(m int, seed int64) *Sampler {
	return &Sampler{
		rng:    rand.New(rand.NewSource(seed)),
		invLnM: 1 / math.Log(float64(m)),
		seed:   seed,
	}
}

// Sample returns a level ℓ ≥ 0 drawn from a geometric distribution with
// parameter 1/ln(M), per Malkov & Yashunin §4 Algorithm 1 line 4:
// floor(-ln(u) / ln(M)) for u drawn uniformly from (0, 1].
func (s *Sampler) Sample() int {
	s.calls++
	u := s.rng.Float64()
	for u == 0 {
		u = s.rng.Float64()
	}
	return int(-math.Log(u) * s.invLnM)
}

// Seed returns the seed this sampler was constructed with.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Calls returns the number of times Sample has been called.
func (s *Sampler) Calls() uint64 {
	return s.calls
}

// restoreSampler reconstructs a sampler's exact PRNG position by replaying
// `calls` draws against a freshly-seeded generator. Used by Import to
// resume level assignment deterministically after a graph is reloaded
// (spec §8 Determinism law).
func restoreSampler(m int, seed int64, calls uint64) *Sampler {
	s := NewSampler(m, seed)
	for i := uint64(0); i < calls; i++ {
		s.Sample()
	}
	return s
}
