// SPDX-License-Identifier: MIT
// Package: infoprop/network
//
// network.go — probability layer over Graph.
//
// Contract:
//   - Prior[i] is the activation prior of node ID(i).
//   - EdgeProb[pos] is the probability that edge EdgeAt(pos) transmits.
//   - Every value is Valid() (inside [0,1]); New refuses anything else.
//   - A Network is immutable after construction; sub-networks are new values.

package network

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/infoprop/prob"
)

// Network couples a Graph with node priors and edge probabilities.
type Network[T prob.Value[T]] struct {
	*Graph

	// Prior holds one activation prior per arena index.
	Prior []T

	// EdgeProb holds one transmission probability per edge position.
	EdgeProb []T
}

// New validates the inputs and builds a Network.
//
// Nodes are the union of the keys of priors and the endpoints of edges. Every
// node needs a prior and every edge needs a probability; each value must lie in
// [0,1]. Probabilities supplied for edges that are not in edges are ignored.
//
// Errors:
//   - ErrSelfLoop / ErrDuplicateEdge from NewGraph.
//   - One *ProbabilityError per offending node/edge (ascending order), joined
//     with errors.Join; each unwraps to ErrMissingProbability or
//     ErrInvalidProbability.
//
// Complexity: O((V+E) log(V+E)).
func New[T prob.Value[T]](edges []Edge, priors map[NodeID]T, probs map[Edge]T) (*Network[T], error) {
	nodes := make([]NodeID, 0, len(priors))
	for id := range priors {
		nodes = append(nodes, id)
	}
	g, err := NewGraph(nodes, edges)
	if err != nil {
		return nil, err
	}

	n := &Network[T]{
		Graph:    g,
		Prior:    make([]T, g.Len()),
		EdgeProb: make([]T, g.EdgeCount()),
	}

	var errs []error
	for i, id := range g.ids {
		p, ok := priors[id]
		switch {
		case !ok:
			errs = append(errs, &ProbabilityError{Node: id, Err: ErrMissingProbability})
		case !p.Valid():
			errs = append(errs, &ProbabilityError{Node: id, Value: p.String(), Err: ErrInvalidProbability})
		default:
			n.Prior[i] = p
		}
	}
	for pos, e := range g.edges {
		p, ok := probs[e]
		switch {
		case !ok:
			errs = append(errs, &ProbabilityError{Edge: e, IsEdge: true, Err: ErrMissingProbability})
		case !p.Valid():
			errs = append(errs, &ProbabilityError{Edge: e, IsEdge: true, Value: p.String(), Err: ErrInvalidProbability})
		default:
			n.EdgeProb[pos] = p
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return n, nil
}

// FromFloats is New specialised to point probabilities given as float64.
func FromFloats(edges []Edge, priors map[NodeID]float64, probs map[Edge]float64) (*Network[prob.Float], error) {
	fp := make(map[NodeID]prob.Float, len(priors))
	for id, p := range priors {
		fp[id] = prob.Float(p)
	}
	fe := make(map[Edge]prob.Float, len(probs))
	for e, p := range probs {
		fe[e] = prob.Float(p)
	}

	return New(edges, fp, fe)
}

// PriorOf returns the prior of id.
func (n *Network[T]) PriorOf(id NodeID) (T, bool) {
	i, ok := n.index[id]
	if !ok {
		var zero T
		return zero, false
	}

	return n.Prior[i], true
}

// EdgeProbOf returns the probability of e.
func (n *Network[T]) EdgeProbOf(e Edge) (T, bool) {
	pos, ok := n.EdgeIndexOf(e)
	if !ok {
		var zero T
		return zero, false
	}

	return n.EdgeProb[pos], true
}

// Priors returns a fresh NodeID → prior map.
func (n *Network[T]) Priors() map[NodeID]T {
	out := make(map[NodeID]T, len(n.ids))
	for i, id := range n.ids {
		out[id] = n.Prior[i]
	}

	return out
}

// EdgeProbs returns a fresh Edge → probability map.
func (n *Network[T]) EdgeProbs() map[Edge]T {
	out := make(map[Edge]T, len(n.edges))
	for pos, e := range n.edges {
		out[e] = n.EdgeProb[pos]
	}

	return out
}

// Restrict builds the sub-network over nodes and edges. Every edge must
// already exist in n and connect two members of nodes; its probability is
// copied from n. prior supplies the prior of each member node, which is how
// conditioning overrides priors without touching n.
//
// Values returned by prior are trusted (the caller derives them from already
// validated values), so no probability validation is repeated.
func (n *Network[T]) Restrict(nodes []NodeID, edges []Edge, prior func(NodeID) T) (*Network[T], error) {
	member := make(map[NodeID]struct{}, len(nodes))
	for _, id := range nodes {
		if !n.Has(id) {
			return nil, fmt.Errorf("network: restrict to %d: %w", id, ErrNodeNotFound)
		}
		member[id] = struct{}{}
	}
	for _, e := range edges {
		_, okU := member[e.From]
		_, okV := member[e.To]
		if !okU || !okV {
			return nil, fmt.Errorf("network: restrict edge %s leaves the node set: %w", e, ErrNodeNotFound)
		}
		if _, ok := n.EdgeIndexOf(e); !ok {
			return nil, fmt.Errorf("network: restrict edge %s: %w", e, ErrMissingProbability)
		}
	}

	g, err := NewGraph(slices.Clone(nodes), edges)
	if err != nil {
		return nil, err
	}
	sub := &Network[T]{
		Graph:    g,
		Prior:    make([]T, g.Len()),
		EdgeProb: make([]T, g.EdgeCount()),
	}
	for i, id := range g.ids {
		sub.Prior[i] = prior(id)
	}
	for pos, e := range g.edges {
		sub.EdgeProb[pos], _ = n.EdgeProbOf(e)
	}

	return sub, nil
}
