// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// condition.go — conditioned sub-network of one diamond assignment.
//
// Prior overrides:
//   - active highest node   → 1
//   - inactive highest node → 0, pruned
//   - entry node            → its current belief
//   - join                  → 1 (the caller applies the join's own prior)
//   - interior nodes        → unchanged
//
// Only the diamond's EdgeList is traversed. Pruning: a node is dropped when
// its prior is 0 or no listed incoming edge from a surviving node with
// non-zero probability remains; afterwards only nodes that
// still reach the join are kept. A dead join yields a nil sub-network (its
// conditioned belief is 0).

package propagate

import (
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// weight is ∏ (active ? belief(h) : 1 − belief(h)) over highest.
func weight[T prob.Value[T]](lvl *level[T], highest []int, state uint64) T {
	w := prob.One[T]()
	for k, h := range highest {
		b := lvl.belief[h]
		if state&(1<<uint(k)) != 0 {
			w = w.Mul(b)
		} else {
			w = w.Mul(b.OneMinus())
		}
	}

	return w
}

// condition builds the sub-network of d for assignment state of highest.
func condition[T prob.Value[T]](lvl *level[T], d diamond.Diamond, highest []int, state uint64, join int) (*network.Network[T], error) {
	net := lvl.net
	g := net.Graph
	n := uint(g.Len())

	relevant := bitset.New(n)
	rel := make([]int, 0, len(d.RelevantNodes))
	for _, id := range d.RelevantNodes {
		i, _ := g.Index(id)
		relevant.Set(uint(i))
		rel = append(rel, i)
	}
	slices.SortStableFunc(rel, func(a, b int) int { return lvl.clo.Generation(a) - lvl.clo.Generation(b) })

	prior := make(map[int]T, len(rel))
	fixed := bitset.New(n) // sub-network sources: highest and entries
	alive := bitset.New(n)
	for k, h := range highest {
		fixed.Set(uint(h))
		if state&(1<<uint(k)) != 0 {
			alive.Set(uint(h))
			prior[h] = prob.One[T]()
		}
	}
	for _, id := range d.EntryNodes {
		e, _ := g.Index(id)
		fixed.Set(uint(e))
		if b := lvl.belief[e]; !prob.IsZero(b) {
			alive.Set(uint(e))
			prior[e] = b
		}
	}

	listed := make(map[int]struct{}, len(d.EdgeList))
	for _, e := range d.EdgeList {
		if pos, ok := g.EdgeIndexOf(e); ok {
			listed[pos] = struct{}{}
		}
	}
	live := func(u, v int) bool {
		if !alive.Test(uint(u)) || !relevant.Test(uint(u)) {
			return false
		}
		pos, ok := g.EdgeIndex(u, v)
		if !ok {
			return false
		}
		_, in := listed[pos]
		return in && !prob.IsZero(net.EdgeProb[pos])
	}

	// Forward: activation support.
	for _, v := range rel {
		if fixed.Test(uint(v)) {
			continue
		}
		p := net.Prior[v]
		if v == join {
			p = prob.One[T]()
		}
		if prob.IsZero(p) {
			continue
		}
		for _, u := range g.In(v) {
			if live(u, v) {
				alive.Set(uint(v))
				prior[v] = p
				break
			}
		}
	}
	if !alive.Test(uint(join)) {
		return nil, nil
	}

	// Backward: keep what still reaches the join.
	keep := bitset.New(n)
	keep.Set(uint(join))
	for k := len(rel) - 1; k >= 0; k-- {
		v := rel[k]
		if !keep.Test(uint(v)) || fixed.Test(uint(v)) {
			continue
		}
		for _, u := range g.In(v) {
			if live(u, v) {
				keep.Set(uint(u))
			}
		}
	}

	var edges []network.Edge
	for _, v := range closure.Members(keep) {
		if fixed.Test(uint(v)) {
			continue
		}
		for _, u := range g.In(v) {
			if keep.Test(uint(u)) && live(u, v) {
				edges = append(edges, network.Edge{From: g.ID(u), To: g.ID(v)})
			}
		}
	}

	return net.Restrict(g.IDsOf(closure.Members(keep)), edges, func(id network.NodeID) T {
		i, _ := g.Index(id)
		return prior[i]
	})
}
