// SPDX-License-Identifier: MIT
// Package: infoprop/builder
//
// impl_diamond.go — Diamond(width), DiamondChain(k) and Layered(widths...).
//
// Contract:
//   - Diamond: width ≥ 2; fork → width middle nodes → join.
//   - DiamondChain: k ≥ 1 diamonds of width 2, each join is the next fork.
//   - Layered: ≥ 2 layers, each ≥ 1 node; every node of layer i feeds every
//     node of layer i+1. Layered(1,2,2,2,1) is the 8-node nested grid.
//   - Emission order: by source node ascending, then target ascending.

package builder

import "github.com/katalvlaran/infoprop/network"

const (
	methodDiamond      = "Diamond"
	methodDiamondChain = "DiamondChain"
	methodLayered      = "Layered"
	minDiamondWidth    = 2
	minDiamondCount    = 1
	minLayers          = 2
	minLayerWidth      = 1
)

// Diamond returns a Constructor building a single diamond of the given width.
func Diamond(width int) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if width < minDiamondWidth {
			return builderErrorf(methodDiamond, ErrTooFewVertices, "width=%d < min=%d", width, minDiamondWidth)
		}
		return layered(s, cfg, []int{1, width, 1})
	}
}

// DiamondChain returns a Constructor building k diamonds in series.
func DiamondChain(k int) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if k < minDiamondCount {
			return builderErrorf(methodDiamondChain, ErrTooFewVertices, "k=%d < min=%d", k, minDiamondCount)
		}
		fork := s.node(cfg)
		for i := 0; i < k; i++ {
			a, b := s.node(cfg), s.node(cfg)
			join := s.node(cfg)
			s.edge(cfg, fork, a)
			s.edge(cfg, fork, b)
			s.edge(cfg, a, join)
			s.edge(cfg, b, join)
			fork = join
		}

		return nil
	}
}

// Layered returns a Constructor building complete bipartite links between
// consecutive layers.
func Layered(widths ...int) Constructor {
	return func(s *Spec, cfg builderConfig) error {
		if len(widths) < minLayers {
			return builderErrorf(methodLayered, ErrTooFewVertices, "layers=%d < min=%d", len(widths), minLayers)
		}
		for i, w := range widths {
			if w < minLayerWidth {
				return builderErrorf(methodLayered, ErrTooFewVertices, "layer %d width=%d < min=%d", i, w, minLayerWidth)
			}
		}
		return layered(s, cfg, widths)
	}
}

func layered(s *Spec, cfg builderConfig, widths []int) error {
	layers := make([][]network.NodeID, len(widths))
	for i, w := range widths {
		for k := 0; k < w; k++ {
			layers[i] = append(layers[i], s.node(cfg))
		}
	}
	for i := 0; i+1 < len(layers); i++ {
		for _, u := range layers[i] {
			for _, v := range layers[i+1] {
				s.edge(cfg, u, v)
			}
		}
	}

	return nil
}
