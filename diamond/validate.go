// SPDX-License-Identifier: MIT
// Package: infoprop/diamond
//
// validate.go — invariant checks, (fork, join) patterns and summaries.

package diamond

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/network"
)

// Validate checks the invariants of d as a diamond converging at join.
func Validate(c *closure.Closure, join network.NodeID, d Diamond) error {
	if len(d.HighestNodes) == 0 {
		return &MalformedError{Join: join, Reason: "no highest nodes"}
	}
	g := c.Graph()
	j, ok := g.Index(join)
	if !ok {
		return &MalformedError{Join: join, Reason: "join not in graph"}
	}
	if !slices.Contains(d.RelevantNodes, join) {
		return &MalformedError{Join: join, Reason: "join missing from relevant nodes"}
	}

	highest := make([]int, 0, len(d.HighestNodes))
	for _, h := range d.HighestNodes {
		i, ok := g.Index(h)
		if !ok || !slices.Contains(d.RelevantNodes, h) {
			return &MalformedError{Join: join, Reason: fmt.Sprintf("highest node %d not relevant", h)}
		}
		highest = append(highest, i)
	}
	for _, a := range highest {
		for _, b := range highest {
			if a != b && c.IsAncestor(a, b) {
				return &MalformedError{Join: join, Reason: fmt.Sprintf("highest node %d is an ancestor of %d", g.ID(a), g.ID(b))}
			}
		}
	}
	for _, id := range d.RelevantNodes {
		if id == join {
			continue
		}
		i, ok := g.Index(id)
		if !ok || !c.IsAncestor(i, j) {
			return &MalformedError{Join: join, Reason: fmt.Sprintf("relevant node %d does not reach the join", id)}
		}
	}

	return nil
}

// Pattern is a (fork, join) pair inside a diamond.
type Pattern struct {
	Fork network.NodeID
	Join network.NodeID
}

// String renders "fork~>join".
func (p Pattern) String() string { return fmt.Sprintf("%d~>%d", p.Fork, p.Join) }

// Patterns lists, per join of m (ascending), every fork node of g other than
// the join that lies in one of the join's diamonds. Pairs are deduplicated and
// sorted by (Join, Fork).
func Patterns(g *network.Graph, m Map) []Pattern {
	joins := make([]network.NodeID, 0, len(m))
	for j := range m {
		joins = append(joins, j)
	}
	slices.Sort(joins)

	var out []Pattern
	for _, j := range joins {
		var forks []network.NodeID
		for _, d := range m[j].Diamonds {
			for _, id := range d.RelevantNodes {
				i, ok := g.Index(id)
				if id == j || !ok || !g.IsFork(i) {
					continue
				}
				forks = append(forks, id)
			}
		}
		slices.Sort(forks)
		for _, f := range slices.Compact(forks) {
			out = append(out, Pattern{Fork: f, Join: j})
		}
	}

	return out
}

// Summary aggregates a Map.
type Summary struct {
	Joins    int // join nodes with at least one diamond
	Diamonds int
	// MaxHighest is the largest |HighestNodes| of any diamond.
	MaxHighest int
	// Assignments is Σ 2^|HighestNodes| over all diamonds: the number of
	// conditioned sub-networks a single propagation level evaluates.
	Assignments uint64
}

// Summarize computes the Summary of m.
func Summarize(m Map) Summary {
	var s Summary
	for _, at := range m {
		s.Joins++
		for _, d := range at.Diamonds {
			s.Diamonds++
			h := len(d.HighestNodes)
			s.MaxHighest = max(s.MaxHighest, h)
			if h < 64 {
				s.Assignments += uint64(1) << h
			}
		}
	}

	return s
}
