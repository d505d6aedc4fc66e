// Package evrand provides deterministic pseudo-random helpers for host
// drivers that sample a plausible initial state of charge; the DP itself
// stays deterministic given its inputs, with SoC realizations held
// outside one solve. Built on gonum's stat/distuv.Normal, which accepts a
// pluggable rand.Source and matches this seeded-sampling shape.
package evrand

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seedable normal-sampling source, bundling seed/reseed/sample
// as one small type instead of free functions over hidden global state.
type Source struct {
	rng rand.Source
}

// NewSource constructs a source seeded deterministically from seed.
func NewSource(seed uint64) *Source {
	return &Source{rng: rand.NewSource(seed)}
}

// Reseed reseeds an existing source in place, for drivers that reseed
// between days without reallocating.
func (s *Source) Reseed(seed uint64) {
	s.rng = rand.NewSource(seed)
}

// Normal draws one N(mean, std^2) sample.
func (s *Source) Normal(mean, std float64) float64 {
	d := distuv.Normal{Mu: mean, Sigma: std, Src: s.rng}
	return d.Rand()
}

// ClampedSoC draws a normal sample and clamps it into [0, 1], the shape
// drivers need when sampling a plausible starting state of charge.
func (s *Source) ClampedSoC(mean, std float64) float64 {
	v := s.Normal(mean, std)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
