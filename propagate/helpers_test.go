package propagate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/builder"
	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// floats builds a Float network from (from, to, probability) triples and a
// uniform prior, with per-node overrides.
func floats(t *testing.T, prior float64, overrides map[network.NodeID]float64, triples ...float64) *network.Network[prob.Float] {
	t.Helper()
	var edges []network.Edge
	probs := make(map[network.Edge]float64)
	priors := make(map[network.NodeID]float64)
	for k := 0; k+2 < len(triples); k += 3 {
		e := network.Edge{From: network.NodeID(triples[k]), To: network.NodeID(triples[k+1])}
		edges = append(edges, e)
		probs[e] = triples[k+2]
		priors[e.From] = prior
		priors[e.To] = prior
	}
	for id, p := range overrides {
		priors[id] = p
	}
	n, err := network.FromFloats(edges, priors, probs)
	require.NoError(t, err)
	return n
}

func build(t *testing.T, opts []builder.BuilderOption, cons ...builder.Constructor) *network.Network[prob.Float] {
	t.Helper()
	n, err := builder.Build(opts, cons...)
	require.NoError(t, err)
	return n
}

// grid is the 8-node nested grid 1→{2,3}→{4,5}→{6,7}→8.
func grid(t *testing.T, prior, p float64) *network.Network[prob.Float] {
	return build(t, []builder.BuilderOption{builder.WithPrior(prior), builder.WithEdgeProbability(p)},
		builder.Layered(1, 2, 2, 2, 1))
}

// enumerate computes exact beliefs by summing over every joint outcome of
// node and edge trials. Exponential in V+E; small networks only.
func enumerate(t *testing.T, n *network.Network[prob.Float]) map[network.NodeID]float64 {
	t.Helper()
	bits := n.Len() + n.EdgeCount()
	require.LessOrEqual(t, bits, 22, "network too large to enumerate")
	c, err := closure.Build(n.Graph)
	require.NoError(t, err)

	acc := make([]float64, n.Len())
	active := make([]bool, n.Len())
	for mask := 0; mask < 1<<bits; mask++ {
		w := 1.0
		trial := func(bit int, p float64) bool {
			if mask&(1<<bit) != 0 {
				w *= p
				return true
			}
			w *= 1 - p
			return false
		}
		for pos := 0; pos < n.EdgeCount(); pos++ {
			_ = trial(n.Len()+pos, float64(n.EdgeProb[pos]))
		}
		for _, v := range c.Order() {
			own := trial(v, float64(n.Prior[v]))
			active[v] = false
			if !own {
				continue
			}
			if n.IsSource(v) {
				active[v] = true
				continue
			}
			for _, u := range n.In(v) {
				pos, _ := n.EdgeIndex(u, v)
				if active[u] && mask&(1<<(n.Len()+pos)) != 0 {
					active[v] = true
					break
				}
			}
		}
		if w == 0 {
			continue
		}
		for i, a := range active {
			if a {
				acc[i] += w
			}
		}
	}

	out := make(map[network.NodeID]float64, n.Len())
	for i, p := range acc {
		out[n.ID(i)] = p
	}
	return out
}

func point(bs map[network.NodeID]prob.Float) map[network.NodeID]float64 {
	out := make(map[network.NodeID]float64, len(bs))
	for id, b := range bs {
		out[id] = float64(b)
	}
	return out
}
