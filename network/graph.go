// SPDX-License-Identifier: MIT
// Package: infoprop/network
//
// graph.go — arena-indexed immutable DAG structure.
//
// Invariants (established by NewGraph, never mutated afterwards):
//   - ids is strictly ascending; index[ids[i]] == i.
//   - out[i] / in[i] hold neighbour indices in ascending order.
//   - edges is sorted by (From, To); edgeIdx maps [u,v] index pairs to positions.
//   - No self-loops and no duplicate pairs.
//
// AI-Hints:
//   - Treat every returned slice as read-only; they alias internal storage.
//   - Use Index/ID to move between NodeID space and arena space.

package network

import (
	"cmp"
	"fmt"
	"slices"
)

// Graph is an immutable directed graph over dense indices.
type Graph struct {
	ids     []NodeID       // index → NodeID (ascending)
	index   map[NodeID]int // NodeID → index
	out     [][]int        // successors per index
	in      [][]int        // predecessors per index
	edges   []Edge         // sorted edge list
	edgeIdx map[[2]int]int // (u,v) index pair → position in edges

	sources []int // in-degree 0
	forks   []int // out-degree ≥ 2
	joins   []int // in-degree ≥ 2
	sinks   []int // out-degree 0
}

// NewGraph builds a Graph over the union of nodes and every edge endpoint.
// Duplicates in nodes are tolerated; duplicate edges and self-loops are not.
//
// Complexity: O((V+E) log(V+E)) for sorting, O(V+E) memory.
func NewGraph(nodes []NodeID, edges []Edge) (*Graph, error) {
	// 1) Validate edges before allocating the arena.
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.From == e.To {
			return nil, fmt.Errorf("network: edge %s: %w", e, ErrSelfLoop)
		}
		if _, dup := seen[e]; dup {
			return nil, fmt.Errorf("network: edge %s: %w", e, ErrDuplicateEdge)
		}
		seen[e] = struct{}{}
	}

	// 2) Collect and sort identifiers.
	idSet := make(map[NodeID]struct{}, len(nodes)+len(edges))
	for _, id := range nodes {
		idSet[id] = struct{}{}
	}
	for _, e := range edges {
		idSet[e.From] = struct{}{}
		idSet[e.To] = struct{}{}
	}
	ids := make([]NodeID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	g := &Graph{
		ids:     ids,
		index:   make(map[NodeID]int, len(ids)),
		out:     make([][]int, len(ids)),
		in:      make([][]int, len(ids)),
		edges:   slices.Clone(edges),
		edgeIdx: make(map[[2]int]int, len(edges)),
	}
	for i, id := range ids {
		g.index[id] = i
	}

	// 3) Sort edges deterministically and fill adjacency in that order, which
	//    leaves every neighbour list ascending.
	slices.SortFunc(g.edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	for pos, e := range g.edges {
		u, v := g.index[e.From], g.index[e.To]
		g.out[u] = append(g.out[u], v)
		g.in[v] = append(g.in[v], u)
		g.edgeIdx[[2]int{u, v}] = pos
	}

	// 4) Classify nodes.
	for i := range ids {
		if len(g.in[i]) == 0 {
			g.sources = append(g.sources, i)
		}
		if len(g.in[i]) >= 2 {
			g.joins = append(g.joins, i)
		}
		if len(g.out[i]) >= 2 {
			g.forks = append(g.forks, i)
		}
		if len(g.out[i]) == 0 {
			g.sinks = append(g.sinks, i)
		}
	}

	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ID returns the NodeID stored at index i.
func (g *Graph) ID(i int) NodeID { return g.ids[i] }

// Index returns the arena index of id.
func (g *Graph) Index(id NodeID) (int, bool) {
	i, ok := g.index[id]

	return i, ok
}

// Has reports whether id is a node of g.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.index[id]

	return ok
}

// IDs returns a copy of all NodeIDs in ascending order.
func (g *Graph) IDs() []NodeID { return slices.Clone(g.ids) }

// Out returns the successor indices of i (read-only).
func (g *Graph) Out(i int) []int { return g.out[i] }

// In returns the predecessor indices of i (read-only).
func (g *Graph) In(i int) []int { return g.in[i] }

// Edges returns a copy of the sorted edge list.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeAt returns the edge at position pos of the sorted edge list.
func (g *Graph) EdgeAt(pos int) Edge { return g.edges[pos] }

// EdgeIndex returns the edge position for the index pair (u,v).
func (g *Graph) EdgeIndex(u, v int) (int, bool) {
	pos, ok := g.edgeIdx[[2]int{u, v}]

	return pos, ok
}

// EdgeIndexOf returns the edge position for e expressed in NodeIDs.
func (g *Graph) EdgeIndexOf(e Edge) (int, bool) {
	u, ok := g.index[e.From]
	if !ok {
		return 0, false
	}
	v, ok := g.index[e.To]
	if !ok {
		return 0, false
	}

	return g.EdgeIndex(u, v)
}

// IsSource reports in-degree 0.
func (g *Graph) IsSource(i int) bool { return len(g.in[i]) == 0 }

// IsFork reports out-degree ≥ 2.
func (g *Graph) IsFork(i int) bool { return len(g.out[i]) >= 2 }

// IsJoin reports in-degree ≥ 2.
func (g *Graph) IsJoin(i int) bool { return len(g.in[i]) >= 2 }

// Sources returns indices with in-degree 0 (read-only).
func (g *Graph) Sources() []int { return g.sources }

// Forks returns indices with out-degree ≥ 2 (read-only).
func (g *Graph) Forks() []int { return g.forks }

// Joins returns indices with in-degree ≥ 2 (read-only).
func (g *Graph) Joins() []int { return g.joins }

// Sinks returns indices with out-degree 0 (read-only).
func (g *Graph) Sinks() []int { return g.sinks }

// IDsOf translates a slice of indices into NodeIDs (new slice, same order).
func (g *Graph) IDsOf(idx []int) []NodeID {
	out := make([]NodeID, len(idx))
	for k, i := range idx {
		out[k] = g.ids[i]
	}

	return out
}

// SourceIDs returns the NodeIDs of all sources.
func (g *Graph) SourceIDs() []NodeID { return g.IDsOf(g.sources) }

// ForkIDs returns the NodeIDs of all fork nodes.
func (g *Graph) ForkIDs() []NodeID { return g.IDsOf(g.forks) }

// JoinIDs returns the NodeIDs of all join nodes.
func (g *Graph) JoinIDs() []NodeID { return g.IDsOf(g.joins) }

// SinkIDs returns the NodeIDs of all sinks.
func (g *Graph) SinkIDs() []NodeID { return g.IDsOf(g.sinks) }

// Parents returns the predecessor NodeIDs of id.
func (g *Graph) Parents(id NodeID) ([]NodeID, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("network: node %d: %w", id, ErrNodeNotFound)
	}

	return g.IDsOf(g.in[i]), nil
}

// Children returns the successor NodeIDs of id.
func (g *Graph) Children(id NodeID) ([]NodeID, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("network: node %d: %w", id, ErrNodeNotFound)
	}

	return g.IDsOf(g.out[i]), nil
}
