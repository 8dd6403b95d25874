// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// impl_random_dag.go — RandomDAG(n, p) and Connect(u, v).
//
// Contract:
//   - RandomDAG: n ≥ 1, p ∈ [0,1]; rng required when 0 < p < 1.
//     Each forward pair (i, j), i < j in allocation order, is an edge with
//     probability p. Trial order: i asc, j asc. Acyclic by construction.
//   - Connect: both endpoints must already be allocated.

package builder

import (
	"slices"

	"github.com/katalvlaran/infoprop/network"
)

const (
	methodRandomDAG   = "RandomDAG"
	methodConnect     = "Connect"
	minRandomDAGNodes = 1
)

// RandomDAG returns a Constructor sampling a random DAG over n new nodes.
func RandomDAG(n int, p float64) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if n < minRandomDAGNodes {
			return builderErrorf(methodRandomDAG, ErrTooFewVertices, "n=%d < min=%d", n, minRandomDAGNodes)
		}
		if p < 0 || p > 1 {
			return builderErrorf(methodRandomDAG, ErrInvalidProbability, "p=%.6f not in [0,1]", p)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return builderErrorf(methodRandomDAG, ErrNeedRandSource, "p=%.6f", p)
		}

		ids := make([]network.NodeID, n)
		for i := range ids {
			ids[i] = s.node(cfg)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if p == 1 || (p > 0 && cfg.rng.Float64() < p) {
					s.edge(cfg, ids[i], ids[j])
				}
			}
		}

		return nil
	}
}

// Connect returns a Constructor adding the edge u→v between allocated nodes.
func Connect(u, v network.NodeID) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if !slices.Contains(s.nodes, u) {
			return builderErrorf(methodConnect, ErrUnknownNode, "from=%d", u)
		}
		if !slices.Contains(s.nodes, v) {
			return builderErrorf(methodConnect, ErrUnknownNode, "to=%d", v)
		}
		s.edge(cfg, u, v)

		return nil
	}
}
