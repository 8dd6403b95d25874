// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/infoprop/network"
)

// BuilderOption customizes a build by mutating builderConfig.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFirstID sets the first allocated NodeID.
func WithFirstID(id network.NodeID) BuilderOption {
	return func(c *builderConfig) { c.firstID = id }
}

// WithPrior sets a constant node prior. Panics unless p ∈ [0,1].
func WithPrior(p float64) BuilderOption {
	return WithPriorFn(ConstantProbability(p))
}

// WithPriorFn sets the node prior generator. Panics on nil.
func WithPriorFn(fn ProbabilityFn) BuilderOption {
	if fn == nil {
		panic("builder: WithPriorFn(nil)")
	}
	return func(c *builderConfig) { c.priorFn = fn }
}

// WithEdgeProbability sets a constant edge probability. Panics unless p ∈ [0,1].
func WithEdgeProbability(p float64) BuilderOption {
	return WithEdgeProbabilityFn(ConstantProbability(p))
}

// WithEdgeProbabilityFn sets the edge probability generator. Panics on nil.
func WithEdgeProbabilityFn(fn ProbabilityFn) BuilderOption {
	if fn == nil {
		panic("builder: WithEdgeProbabilityFn(nil)")
	}
	return func(c *builderConfig) { c.probFn = fn }
}

// WithUniformProbabilities draws priors and edge probabilities from U[lo,hi]
// using the build's RNG.
func WithUniformProbabilities(lo, hi float64) BuilderOption {
	fn := UniformProbability(lo, hi)
	return func(c *builderConfig) {
		c.priorFn = fn
		c.probFn = fn
	}
}

func mustProbability(name string, p float64) {
	if p < 0 || p > 1 || p != p {
		panic(fmt.Sprintf("builder: %s: probability must be in [0,1], got %g", name, p))
	}
}
