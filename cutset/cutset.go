// SPDX-License-Identifier: MIT
// Package: infoprop/cutset
//
// cutset.go — greedy cutset minimisation and verification.

package cutset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/network"
)

var (
	// ErrInfeasible indicates some pattern cannot be broken by any candidate.
	// It is informational: propagation still works, just without the bound.
	ErrInfeasible = errors.New("cutset: some diamond patterns cannot be broken")

	// ErrSinkNotFound indicates the requested sink is not a node of the graph.
	ErrSinkNotFound = errors.New("cutset: sink not found")

	// ErrNilClosure indicates Minimize was called without a closure.
	ErrNilClosure = errors.New("cutset: closure is nil")
)

// Result is the outcome of Minimize.
type Result struct {
	// Nodes is the chosen cutset, ascending.
	Nodes []network.NodeID
	// Feasible is false when Uncovered is non-empty.
	Feasible bool
	// Patterns lists every pattern with ≥ 2 vertex-disjoint paths.
	Patterns []diamond.Pattern
	// Uncovered lists the patterns no candidate breaks.
	Uncovered []diamond.Pattern
}

// Err returns ErrInfeasible (wrapped with the count) when r is infeasible.
func (r *Result) Err() error {
	if r == nil || r.Feasible {
		return nil
	}
	return fmt.Errorf("%w: %d uncovered", ErrInfeasible, len(r.Uncovered))
}

// Patterns returns the diamond patterns of m whose fork has at least two
// vertex-disjoint paths to the join in g.
func Patterns(c *closure.Closure, m diamond.Map) []diamond.Pattern {
	g := c.Graph()
	var out []diamond.Pattern
	for _, p := range diamond.Patterns(g, m) {
		f, okF := g.Index(p.Fork)
		j, okJ := g.Index(p.Join)
		if okF && okJ && DisjointPaths(c, f, j, 2) >= 2 {
			out = append(out, p)
		}
	}

	return out
}

// Minimize selects a cutset for the patterns of m with greedy set cover.
//
// Candidates are all nodes except sources and sink. Each round takes the
// candidate breaking the most remaining patterns; ties go to the lowest
// NodeID. The loop ends when nothing remains (Feasible) or when no candidate
// breaks any remaining pattern (infeasible, see Result.Err).
//
// Errors: ErrNilClosure, ErrSinkNotFound. Infeasibility is not an error here.
func Minimize(g *network.Graph, c *closure.Closure, m diamond.Map, sink network.NodeID) (*Result, error) {
	if c == nil {
		return nil, ErrNilClosure
	}
	if g == nil {
		g = c.Graph()
	}
	si, ok := g.Index(sink)
	if !ok {
		return nil, fmt.Errorf("cutset: sink %d: %w", sink, ErrSinkNotFound)
	}

	patterns := Patterns(c, m)
	res := &Result{Patterns: patterns}

	// Coverage sets: which patterns each candidate breaks.
	type candidate struct {
		node   int
		breaks *bitset.BitSet
	}
	var cands []candidate
	removed := bitset.New(uint(g.Len()))
	for v := 0; v < g.Len(); v++ {
		if v == si || g.IsSource(v) {
			continue
		}
		cover := bitset.New(uint(len(patterns)))
		removed.Set(uint(v))
		for k, p := range patterns {
			if breaks(c, v, p, removed) {
				cover.Set(uint(k))
			}
		}
		removed.Clear(uint(v))
		if cover.Any() {
			cands = append(cands, candidate{node: v, breaks: cover})
		}
	}

	remaining := bitset.New(uint(len(patterns)))
	for k := range patterns {
		remaining.Set(uint(k))
	}
	var chosen []int
	for remaining.Any() {
		best, bestGain := -1, uint(0)
		for k, cd := range cands {
			// cands is ascending by index, hence by NodeID; strict > keeps the lowest.
			if gain := cd.breaks.IntersectionCardinality(remaining); gain > bestGain {
				best, bestGain = k, gain
			}
		}
		if best < 0 {
			break
		}
		chosen = append(chosen, cands[best].node)
		remaining.InPlaceDifference(cands[best].breaks)
	}

	slices.Sort(chosen)
	res.Nodes = g.IDsOf(chosen)
	for _, k := range closure.Members(remaining) {
		res.Uncovered = append(res.Uncovered, patterns[k])
	}
	res.Feasible = len(res.Uncovered) == 0

	return res, nil
}

// breaks reports whether removing node v (already set in removed) leaves at
// most one path for p.
func breaks(c *closure.Closure, v int, p diamond.Pattern, removed *bitset.BitSet) bool {
	g := c.Graph()
	f, _ := g.Index(p.Fork)
	j, _ := g.Index(p.Join)
	if v == f || v == j {
		return true
	}

	return CountPaths(c, f, j, removed) <= 1
}

// VerifyCutsetBreaksDiamonds reports whether removing cut from g leaves at
// most one path between the fork and join of every pattern of m. Unknown
// nodes in cut are ignored.
func VerifyCutsetBreaksDiamonds(g *network.Graph, c *closure.Closure, m diamond.Map, cut []network.NodeID) bool {
	if c == nil {
		return false
	}
	if g == nil {
		g = c.Graph()
	}
	removed := bitset.New(uint(g.Len()))
	for _, id := range cut {
		if i, ok := g.Index(id); ok {
			removed.Set(uint(i))
		}
	}
	for _, p := range Patterns(c, m) {
		f, okF := g.Index(p.Fork)
		j, okJ := g.Index(p.Join)
		if !okF || !okJ {
			return false
		}
		if CountPaths(c, f, j, removed) > 1 {
			return false
		}
	}

	return true
}
