// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// api.go — public entry-point and the Spec staging area.
//
// Design contract:
//   - One orchestrator: Build(bopts, cons...). Resolves cfg, runs cons in order
//     against a fresh Spec, then hands the Spec to network.FromFloats.
//   - Node IDs are allocated consecutively; priors are drawn at allocation,
//     edge probabilities at emission, both from cfg (deterministic per seed).

package builder

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// Constructor adds nodes and edges to s using the resolved configuration.
// Constructors validate parameters first and return sentinel errors.
type Constructor func(s *Spec, cfg builderConfig) error

// Spec is the staging area constructors write into.
type Spec struct {
	next   network.NodeID
	nodes  []network.NodeID
	edges  []network.Edge
	priors map[network.NodeID]float64
	probs  map[network.Edge]float64
}

func newSpec(cfg builderConfig) *Spec {
	return &Spec{
		next:   cfg.firstID,
		priors: make(map[network.NodeID]float64),
		probs:  make(map[network.Edge]float64),
	}
}

// Nodes returns the allocated node IDs in allocation order.
func (s *Spec) Nodes() []network.NodeID { return slices.Clone(s.nodes) }

// Edges returns the emitted edges in emission order.
func (s *Spec) Edges() []network.Edge { return slices.Clone(s.edges) }

// node allocates the next NodeID with a prior drawn from cfg.
func (s *Spec) node(cfg builderConfig) network.NodeID {
	id := s.next
	s.next++
	s.nodes = append(s.nodes, id)
	s.priors[id] = cfg.priorFn(cfg.rng)

	return id
}

// edge emits u→v with a probability drawn from cfg. Re-emitting an edge keeps
// the first probability.
func (s *Spec) edge(cfg builderConfig, u, v network.NodeID) {
	e := network.Edge{From: u, To: v}
	if _, dup := s.probs[e]; dup {
		return
	}
	s.edges = append(s.edges, e)
	s.probs[e] = cfg.probFn(cfg.rng)
}

// Build resolves bopts, applies cons in order and returns the network.
// Any constructor error is wrapped with "Build: %w".
func Build(bopts []BuilderOption, cons ...Constructor) (*network.Network[prob.Float], error) {
	cfg := newBuilderConfig(bopts...)
	s := newSpec(cfg)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(s, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	n, err := network.FromFloats(s.edges, s.priors, s.probs)
	if err != nil {
		return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
	}

	return n, nil
}
