// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// prob_fn.go — node prior and edge probability distributions.

package builder

import "math/rand"

// ProbabilityFn produces a probability given an optional *rand.Rand source.
// It must be deterministic for a given RNG state.
type ProbabilityFn func(rng *rand.Rand) float64

// ConstantProbability always yields p. Panics unless p ∈ [0,1].
func ConstantProbability(p float64) ProbabilityFn {
	mustProbability("ConstantProbability", p)
	return func(_ *rand.Rand) float64 { return p }
}

// UniformProbability samples uniformly in [lo, hi). Panics unless
// 0 ≤ lo ≤ hi ≤ 1. With a nil rng it yields the midpoint.
func UniformProbability(lo, hi float64) ProbabilityFn {
	mustProbability("UniformProbability", lo)
	mustProbability("UniformProbability", hi)
	if hi < lo {
		panic("builder: UniformProbability: hi < lo")
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil || hi == lo {
			return (lo + hi) / 2
		}
		return lo + rng.Float64()*(hi-lo)
	}
}
