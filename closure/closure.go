// SPDX-License-Identifier: MIT
// Package: infoprop/closure
//
// closure.go — iteration sets and transitive closures.

package closure

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/infoprop/network"
)

// ErrCycleDetected indicates the graph is not acyclic.
var ErrCycleDetected = errors.New("closure: cycle detected")

// CycleError lists the nodes left unlayered after Kahn's peeling stopped;
// every cycle of the graph lies inside this set.
type CycleError struct {
	Nodes []network.NodeID
}

// Error implements error.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %d node(s) unreachable by layering: %v", ErrCycleDetected, len(e.Nodes), e.Nodes)
}

// Unwrap exposes ErrCycleDetected.
func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// Closure holds the generations and closures of one Graph.
// It is immutable after Build and safe for concurrent readers.
type Closure struct {
	g           *network.Graph
	generations [][]int // arena indices per generation, ascending inside each
	genOf       []int   // arena index → generation
	order       []int   // generations concatenated
	ancestors   []*bitset.BitSet
	descendants []*bitset.BitSet
}

// Build layers g and computes its closures.
func Build(g *network.Graph) (*Closure, error) {
	n := g.Len()
	c := &Closure{
		g:           g,
		genOf:       make([]int, n),
		order:       make([]int, 0, n),
		ancestors:   make([]*bitset.BitSet, n),
		descendants: make([]*bitset.BitSet, n),
	}

	// 1) Kahn layering: peel every node whose predecessors are all layered.
	remaining := make([]int, n) // unlayered predecessor count
	var frontier []int
	for i := 0; i < n; i++ {
		remaining[i] = len(g.In(i))
		if remaining[i] == 0 {
			frontier = append(frontier, i)
		}
	}
	for gen := 0; len(frontier) > 0; gen++ {
		c.generations = append(c.generations, frontier)
		var next []int
		for _, u := range frontier {
			c.genOf[u] = gen
			c.order = append(c.order, u)
			for _, v := range g.Out(u) {
				remaining[v]--
				if remaining[v] == 0 {
					next = append(next, v)
				}
			}
		}
		slices.Sort(next)
		frontier = next
	}

	// 2) Anything left carries a cycle.
	if len(c.order) != n {
		var stuck []network.NodeID
		for i := 0; i < n; i++ {
			if remaining[i] > 0 {
				stuck = append(stuck, g.ID(i))
			}
		}
		return nil, &CycleError{Nodes: stuck}
	}

	// 3) Ancestors forward in generation order, descendants backward.
	for _, v := range c.order {
		set := bitset.New(uint(n))
		for _, u := range g.In(v) {
			set.Set(uint(u))
			set.InPlaceUnion(c.ancestors[u])
		}
		c.ancestors[v] = set
	}
	for k := len(c.order) - 1; k >= 0; k-- {
		u := c.order[k]
		set := bitset.New(uint(n))
		for _, v := range g.Out(u) {
			set.Set(uint(v))
			set.InPlaceUnion(c.descendants[v])
		}
		c.descendants[u] = set
	}

	return c, nil
}

// Graph returns the graph the closure was built for.
func (c *Closure) Graph() *network.Graph { return c.g }

// Generations returns the iteration sets as arena indices (read-only).
func (c *Closure) Generations() [][]int { return c.generations }

// Order returns the generations concatenated (read-only).
func (c *Closure) Order() []int { return c.order }

// Generation returns the generation of arena index i.
func (c *Closure) Generation(i int) int { return c.genOf[i] }

// Ancestors returns the ancestor set of arena index i (read-only).
func (c *Closure) Ancestors(i int) *bitset.BitSet { return c.ancestors[i] }

// Descendants returns the descendant set of arena index i (read-only).
func (c *Closure) Descendants(i int) *bitset.BitSet { return c.descendants[i] }

// IsAncestor reports whether a has a directed path to b (a ≠ b).
func (c *Closure) IsAncestor(a, b int) bool { return c.ancestors[b].Test(uint(a)) }

// IterationSets returns the generations as NodeIDs.
func (c *Closure) IterationSets() [][]network.NodeID {
	out := make([][]network.NodeID, len(c.generations))
	for k, gen := range c.generations {
		out[k] = c.g.IDsOf(gen)
	}

	return out
}

// AncestorMap returns NodeID → ascending ancestor NodeIDs.
func (c *Closure) AncestorMap() map[network.NodeID][]network.NodeID {
	return c.toMap(c.ancestors)
}

// DescendantMap returns NodeID → ascending descendant NodeIDs.
func (c *Closure) DescendantMap() map[network.NodeID][]network.NodeID {
	return c.toMap(c.descendants)
}

func (c *Closure) toMap(sets []*bitset.BitSet) map[network.NodeID][]network.NodeID {
	out := make(map[network.NodeID][]network.NodeID, len(sets))
	for i, s := range sets {
		out[c.g.ID(i)] = c.g.IDsOf(Members(s))
	}

	return out
}

// Members lists the set bits of s in ascending order.
func Members(s *bitset.BitSet) []int {
	out := make([]int, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}
