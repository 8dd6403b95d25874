// SPDX-License-Identifier: MIT
// Package: infoprop/cutset
//
// paths.go — vertex-disjoint path counting and saturating path counts.

package cutset

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/infoprop/closure"
)

// DisjointPaths returns min(limit, number of internally vertex-disjoint paths
// from → to), by arena index. Every node except the endpoints is split into an
// in/out pair joined by a unit-capacity arc, and BFS augmenting paths are
// pushed until the limit is reached or the residual network is exhausted.
func DisjointPaths(c *closure.Closure, from, to, limit int) int {
	if from == to || limit <= 0 || !c.IsAncestor(from, to) {
		return 0
	}
	g := c.Graph()

	// Only nodes on some from→to path matter.
	region := c.Descendants(from).Intersection(c.Ancestors(to))
	region.Set(uint(from))
	region.Set(uint(to))

	fn := newFlowNet()
	for _, v := range closure.Members(region) {
		if v != from && v != to {
			fn.add(inNode(v), outNode(v))
		}
		for _, w := range g.Out(v) {
			if region.Test(uint(w)) {
				fn.add(outNode(v), inNode(w))
			}
		}
	}

	s, t := outNode(from), inNode(to)
	flow := 0
	for flow < limit && fn.augment(s, t) {
		flow++
	}

	return flow
}

func inNode(i int) int  { return 2 * i }
func outNode(i int) int { return 2*i + 1 }

// flowNet is a unit-capacity residual network.
type flowNet struct {
	adj map[int][]int
	res map[[2]int]int
}

func newFlowNet() *flowNet {
	return &flowNet{adj: make(map[int][]int), res: make(map[[2]int]int)}
}

func (f *flowNet) add(a, b int) {
	if _, ok := f.res[[2]int{a, b}]; !ok {
		f.adj[a] = append(f.adj[a], b)
		if _, back := f.res[[2]int{b, a}]; !back {
			f.adj[b] = append(f.adj[b], a)
			f.res[[2]int{b, a}] = 0
		}
	}
	f.res[[2]int{a, b}]++
}

// augment finds one shortest augmenting path s→t and pushes a unit along it.
func (f *flowNet) augment(s, t int) bool {
	prev := map[int]int{s: s}
	queue := []int{s}
	for len(queue) > 0 && !hasKey(prev, t) {
		u := queue[0]
		queue = queue[1:]
		for _, v := range f.adj[u] {
			if _, seen := prev[v]; seen || f.res[[2]int{u, v}] <= 0 {
				continue
			}
			prev[v] = u
			queue = append(queue, v)
		}
	}
	if !hasKey(prev, t) {
		return false
	}
	for v := t; v != s; v = prev[v] {
		u := prev[v]
		f.res[[2]int{u, v}]--
		f.res[[2]int{v, u}]++
	}

	return true
}

func hasKey(m map[int]int, k int) bool {
	_, ok := m[k]
	return ok
}

// CountPaths returns the number of from→to paths avoiding removed, saturating
// at 2. Removing from or to yields 0.
func CountPaths(c *closure.Closure, from, to int, removed *bitset.BitSet) int {
	if removed != nil && (removed.Test(uint(from)) || removed.Test(uint(to))) {
		return 0
	}
	if from == to {
		return 1
	}
	g := c.Graph()
	ways := make([]int, g.Len())
	ways[from] = 1
	for _, v := range c.Order() {
		if c.Generation(v) <= c.Generation(from) || v == from {
			continue
		}
		if removed != nil && removed.Test(uint(v)) {
			continue
		}
		for _, u := range g.In(v) {
			ways[v] = min(2, ways[v]+ways[u])
		}
		if v == to {
			break
		}
	}

	return ways[to]
}
