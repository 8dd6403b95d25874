// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// impl_chain.go — Chain(n) and Tree(depth, fanout).
//
// Contract:
//   - Chain: n ≥ 2; edges i→i+1 in allocation order.
//   - Tree: depth ≥ 1, fanout ≥ 1; breadth-first allocation, edges parent→child.
//   - Neither shape has a join node, so neither contains a diamond.

package builder

import "github.com/katalvlaran/infoprop/network"

const (
	methodChain   = "Chain"
	methodTree    = "Tree"
	minChainNodes = 2
	minTreeDepth  = 1
	minTreeFanout = 1
)

// Chain returns a Constructor building a simple path of n nodes.
func Chain(n int) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if n < minChainNodes {
			return builderErrorf(methodChain, ErrTooFewVertices, "n=%d < min=%d", n, minChainNodes)
		}
		prev := s.node(cfg)
		for i := 1; i < n; i++ {
			cur := s.node(cfg)
			s.edge(cfg, prev, cur)
			prev = cur
		}

		return nil
	}
}

// Tree returns a Constructor building a rooted out-tree with depth levels
// below the root and fanout children per inner node.
func Tree(depth, fanout int) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if depth < minTreeDepth {
			return builderErrorf(methodTree, ErrTooFewVertices, "depth=%d < min=%d", depth, minTreeDepth)
		}
		if fanout < minTreeFanout {
			return builderErrorf(methodTree, ErrTooFewVertices, "fanout=%d < min=%d", fanout, minTreeFanout)
		}
		level := []network.NodeID{s.node(cfg)}
		for d := 0; d < depth; d++ {
			next := make([]network.NodeID, 0, len(level)*fanout)
			for _, parent := range level {
				for c := 0; c < fanout; c++ {
					child := s.node(cfg)
					s.edge(cfg, parent, child)
					next = append(next, child)
				}
			}
			level = next
		}

		return nil
	}
}
