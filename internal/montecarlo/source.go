package montecarlo

import "time"

// Source supplies uniform draws in [0, 1). *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// SplitMix is a small SplitMix64 generator. It is not safe for concurrent
// use; give each goroutine its own.
type SplitMix struct {
	state uint64
}

// NewSource returns a SplitMix seeded with seed. Equal seeds give equal streams.
func NewSource(seed uint64) *SplitMix {
	return &SplitMix{state: seed}
}

func (r *SplitMix) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 uses the top 53 bits so the result is always < 1.
func (r *SplitMix) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// MaxSeed bounds RandomSeed so the seed survives a round trip through a
// JSON number in a browser (2^53 - 1).
const MaxSeed = 1<<53 - 1

// RandomSeed returns a seed for runs that do not need to be reproducible.
func RandomSeed() uint64 {
	return NewSource(uint64(time.Now().UnixNano())).Uint64() & MaxSeed
}
