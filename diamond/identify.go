// SPDX-License-Identifier: MIT
// Package: infoprop/diamond
//
// identify.go — per-join grouping of parents by shared correlating forks.
//
// Steps (per join j, ascending):
//  1. S(p) = ({p} ∪ Anc(p)) ∩ correlating, for every parent p of j.
//  2. forks found in two or more S(p) are shared; union–find merges the parents
//     they link.
//  3. each group with a shared fork becomes one Diamond (highest, relevant,
//     entries, edges); the rest are non-diamond parents.
//  4. the highest set grows until its nodes and the entry nodes share no
//     correlating fork, so conditioning on it leaves independent inputs.

package diamond

import (
	"cmp"
	"errors"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/network"
)

// ErrGraphMismatch indicates a closure built over a different graph.
var ErrGraphMismatch = errors.New("diamond: closure does not belong to graph")

// Identify computes the diamond map of g.
//
// Errors: ErrNilClosure, ErrGraphMismatch, or a *MalformedError if a produced
// diamond fails Validate (never expected; it would be an internal bug).
//
// Complexity: O(J·(k·V/64 + E)) time, O(V/64) extra memory per join.
func Identify(g *network.Graph, c *closure.Closure, opts ...Option) (Map, error) {
	if c == nil {
		return nil, ErrNilClosure
	}
	if g == nil {
		g = c.Graph()
	}
	if c.Graph() != g {
		return nil, ErrGraphMismatch
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	correlating := correlatingForks(g, o)
	out := make(Map)
	for _, j := range g.Joins() {
		at, err := identifyAt(g, c, correlating, j)
		if err != nil {
			return nil, err
		}
		if at != nil {
			out[g.ID(j)] = at
		}
	}

	return out, nil
}

// correlatingForks marks the forks whose state is uncertain.
func correlatingForks(g *network.Graph, o Options) *bitset.BitSet {
	out := bitset.New(uint(g.Len()))
	for _, f := range g.Forks() {
		if g.IsSource(f) && o.Certain != nil && o.Certain(g.ID(f)) {
			continue
		}
		out.Set(uint(f))
	}

	return out
}

// Reseed rebuilds every diamond of m around the lowest members of seed that
// lie inside it (entries and the join excluded), widening them the way
// Identify widens the highest forks. A rebuilt diamond replaces the original
// when it conditions on fewer nodes, or on as many over no more relevant
// nodes. m is not modified; opts must match the ones m was identified with.
//
// Errors: as Identify.
func Reseed(g *network.Graph, c *closure.Closure, m Map, seed []network.NodeID, opts ...Option) (Map, error) {
	if c == nil {
		return nil, ErrNilClosure
	}
	if g == nil {
		g = c.Graph()
	}
	if c.Graph() != g {
		return nil, ErrGraphMismatch
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	correlating := correlatingForks(g, o)

	out := make(Map, len(m))
	for id, at := range m {
		j, ok := g.Index(id)
		if !ok {
			return nil, &MalformedError{Join: id, Reason: "join not in graph"}
		}
		re := &AtNode{JoinNode: at.JoinNode, NonDiamondParents: at.NonDiamondParents}
		for _, d := range at.Diamonds {
			inside := bitset.New(uint(g.Len()))
			for _, s := range seed {
				if s != id && slices.Contains(d.RelevantNodes, s) && !slices.Contains(d.EntryNodes, s) {
					i, _ := g.Index(s)
					inside.Set(uint(i))
				}
			}
			inside = minima(c, inside)
			var parents []int
			for _, e := range d.EdgeList {
				if e.To == id {
					p, _ := g.Index(e.From)
					parents = append(parents, p)
				}
			}
			nd := enclose(g, c, correlating, j, parents, inside)
			if err := Validate(c, id, nd); err != nil {
				return nil, err
			}
			if len(nd.HighestNodes) < len(d.HighestNodes) ||
				(len(nd.HighestNodes) == len(d.HighestNodes) && len(nd.RelevantNodes) <= len(d.RelevantNodes)) {
				d = nd
			}
			re.Diamonds = append(re.Diamonds, d)
		}
		out[id] = re
	}

	return out, nil
}

// identifyAt builds the AtNode for join j, or nil when j has no diamond.
func identifyAt(g *network.Graph, c *closure.Closure, correlating *bitset.BitSet, j int) (*AtNode, error) {
	parents := g.In(j)

	// 1) Which parent positions each correlating fork reaches.
	reach := make(map[int][]int)
	for k, p := range parents {
		s := c.Ancestors(p).Intersection(correlating)
		if correlating.Test(uint(p)) {
			s.Set(uint(p))
		}
		for _, f := range closure.Members(s) {
			reach[f] = append(reach[f], k)
		}
	}

	// 2) Shared forks, ascending, and union–find over parent positions.
	var shared []int
	for f, ks := range reach {
		if len(ks) >= 2 {
			shared = append(shared, f)
		}
	}
	if len(shared) == 0 {
		return nil, nil
	}
	slices.Sort(shared)

	uf := newUnionFind(len(parents))
	for _, f := range shared {
		ks := reach[f]
		for _, k := range ks[1:] {
			uf.union(ks[0], k)
		}
	}

	groupForks := make(map[int][]int) // root → shared forks
	for _, f := range shared {
		r := uf.find(reach[f][0])
		groupForks[r] = append(groupForks[r], f)
	}
	groupParents := make(map[int][]int) // root → parent indices
	for k, p := range parents {
		r := uf.find(k)
		groupParents[r] = append(groupParents[r], p)
	}

	at := &AtNode{JoinNode: g.ID(j)}
	roots := make([]int, 0, len(groupForks))
	for k := range parents {
		r := uf.find(k)
		if _, ok := groupForks[r]; !ok {
			at.NonDiamondParents = append(at.NonDiamondParents, g.ID(parents[k]))
			continue
		}
		if !slices.Contains(roots, r) {
			roots = append(roots, r)
		}
	}

	// 3) One diamond per group, in order of the group's first parent.
	for _, r := range roots {
		d := buildDiamond(g, c, correlating, j, groupParents[r], groupForks[r])
		if err := Validate(c, g.ID(j), d); err != nil {
			return nil, err
		}
		at.Diamonds = append(at.Diamonds, d)
	}

	return at, nil
}

// buildDiamond assembles the Diamond of one group from its shared forks.
func buildDiamond(g *network.Graph, c *closure.Closure, correlating *bitset.BitSet, j int, parents, forks []int) Diamond {
	seed := bitset.New(uint(g.Len()))
	for _, f := range forks {
		seed.Set(uint(f))
	}

	return enclose(g, c, correlating, j, parents, seed)
}

// enclose builds the diamond of join j over the group parents, conditioning on
// seed. The conditioning set first takes every parent seed does not reach,
// then grows by each correlating fork that two sources of the sub-network
// (conditioned or entry nodes) have in common, until none is left. Each round
// strictly widens the relevant set, so the loop ends.
func enclose(g *network.Graph, c *closure.Closure, correlating *bitset.BitSet, j int, parents []int, seed *bitset.BitSet) Diamond {
	n := uint(g.Len())

	cond := seed.Clone()
	cond.Clear(uint(j))
	for _, p := range parents {
		if !cond.Test(uint(p)) && c.Ancestors(p).IntersectionCardinality(cond) == 0 {
			cond.Set(uint(p))
		}
	}

	var relevant, entries *bitset.BitSet
	for {
		cond = maxima(c, cond)

		relevant = cond.Clone()
		relevant.Set(uint(j))
		for _, h := range closure.Members(cond) {
			relevant.InPlaceUnion(c.Descendants(h).Intersection(c.Ancestors(j)))
		}
		entries = bitset.New(n)
		for _, m := range closure.Members(relevant.Difference(cond)) {
			if m == j {
				continue
			}
			for _, u := range g.In(m) {
				if !relevant.Test(uint(u)) {
					entries.Set(uint(u))
				}
			}
		}

		seen, shared := bitset.New(n), bitset.New(n)
		for _, s := range closure.Members(cond.Union(entries)) {
			cs := c.Ancestors(s).Intersection(correlating)
			if correlating.Test(uint(s)) {
				cs.Set(uint(s))
			}
			shared.InPlaceUnion(seen.Intersection(cs))
			seen.InPlaceUnion(cs)
		}
		if shared.None() {
			break
		}
		cond.InPlaceUnion(shared)
	}

	// Edges into interior nodes come from the relevant set or an entry; edges
	// into the join only from the group.
	interior := relevant.Difference(cond)
	interior.Clear(uint(j))
	var edges []network.Edge
	for _, v := range closure.Members(interior) {
		for _, u := range g.In(v) {
			edges = append(edges, network.Edge{From: g.ID(u), To: g.ID(v)})
		}
	}
	for _, u := range parents {
		edges = append(edges, network.Edge{From: g.ID(u), To: g.ID(j)})
	}
	slices.SortFunc(edges, func(a, b network.Edge) int {
		if d := cmp.Compare(a.From, b.From); d != 0 {
			return d
		}
		return cmp.Compare(a.To, b.To)
	})
	relevant.InPlaceUnion(entries)

	return Diamond{
		RelevantNodes: g.IDsOf(closure.Members(relevant)),
		HighestNodes:  g.IDsOf(closure.Members(cond)),
		EntryNodes:    g.IDsOf(closure.Members(entries)),
		EdgeList:      edges,
	}
}

// minima keeps the members of s that have no descendant in s.
func minima(c *closure.Closure, s *bitset.BitSet) *bitset.BitSet {
	out := s.Clone()
	for _, v := range closure.Members(s) {
		if c.Descendants(v).IntersectionCardinality(s) > 0 {
			out.Clear(uint(v))
		}
	}

	return out
}

// maxima keeps the members of s that have no ancestor in s.
func maxima(c *closure.Closure, s *bitset.BitSet) *bitset.BitSet {
	out := s.Clone()
	for _, v := range closure.Members(s) {
		if c.Ancestors(v).IntersectionCardinality(s) > 0 {
			out.Clear(uint(v))
		}
	}

	return out
}

// unionFind is a minimal disjoint-set forest with path halving.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union keeps the smaller root so groups are keyed by their first parent.
func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
