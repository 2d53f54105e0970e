package strip

import (
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// RandomSource supplies uniformly distributed bounded integers. A source is
// not safe for concurrent use; give each goroutine its own.
type RandomSource interface {
	// IntN returns a uniformly distributed integer in [0, n). n must be > 0.
	IntN(n int) int
}

// Source is a seeded PCG RandomSource. The same seed always yields the same
// sequence of values.
type Source struct {
	seed uint64
	r    *rand.Rand
}

// NewSource creates a deterministic RandomSource from seed.
func NewSource(seed uint64) *Source {
	return &Source{seed: seed, r: rand.New(rand.NewPCG(seed, 0))}
}

// IntN returns a uniformly distributed integer in [0, n).
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

var seedCounter atomic.Uint64

// RandomSeed returns a non-deterministic seed. The wall clock alone repeats
// when called many times within one clock tick, so every call also mixes in a
// process-wide counter.
func RandomSeed() uint64 {
	n := seedCounter.Add(1)
	return uint64(time.Now().UnixNano()) ^ (n * 0x9E3779B97F4A7C15)
}

// Shuffle permutes s in place with a backward Fisher-Yates sweep: for i from
// the last index down to 1, element i is swapped with a uniformly chosen
// element in [0, i].
func Shuffle[T any](rs RandomSource, s []T) {
	for i := len(s) - 1; i >= 1; i-- {
		j := rs.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
