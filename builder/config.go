// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • firstID  = 1
//   • rng      = nil  (pure unless seeded)
//   • priorFn  = ConstantProbability(DefaultPrior)
//   • probFn   = ConstantProbability(DefaultEdgeProbability)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/infoprop/network"
)

const (
	// DefaultPrior is the node prior when no option overrides it.
	DefaultPrior = 0.9

	// DefaultEdgeProbability is the edge probability when no option overrides it.
	DefaultEdgeProbability = 0.9

	defaultFirstID network.NodeID = 1
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	firstID network.NodeID
	rng     *rand.Rand
	priorFn ProbabilityFn
	probFn  ProbabilityFn
}

// newBuilderConfig applies opts over the defaults (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		firstID: defaultFirstID,
		priorFn: ConstantProbability(DefaultPrior),
		probFn:  ConstantProbability(DefaultEdgeProbability),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
