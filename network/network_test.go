package network_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// diamondEdges is the four-node diamond 1→{2,3}→4.
var diamondEdges = []network.Edge{{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4}}

func uniformPriors(ids ...network.NodeID) map[network.NodeID]float64 {
	m := make(map[network.NodeID]float64, len(ids))
	for _, id := range ids {
		m[id] = 0.9
	}
	return m
}

func uniformProbs(edges []network.Edge, p float64) map[network.Edge]float64 {
	m := make(map[network.Edge]float64, len(edges))
	for _, e := range edges {
		m[e] = p
	}
	return m
}

// TestNewGraph_Classification verifies sources, forks, joins and sinks of the diamond.
func TestNewGraph_Classification(t *testing.T) {
	g, err := network.NewGraph(nil, diamondEdges)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, []network.NodeID{1}, g.SourceIDs())
	assert.Equal(t, []network.NodeID{1}, g.ForkIDs())
	assert.Equal(t, []network.NodeID{4}, g.JoinIDs())
	assert.Equal(t, []network.NodeID{4}, g.SinkIDs())

	parents, err := g.Parents(4)
	require.NoError(t, err)
	assert.Equal(t, []network.NodeID{2, 3}, parents)

	_, err = g.Children(99)
	assert.ErrorIs(t, err, network.ErrNodeNotFound)
}

// TestNewGraph_StableIndices checks that indices follow ascending NodeID order
// regardless of the edge order supplied.
func TestNewGraph_StableIndices(t *testing.T) {
	g, err := network.NewGraph([]network.NodeID{42}, []network.Edge{{From: 30, To: 10}, {From: 20, To: 10}})
	require.NoError(t, err)

	assert.Equal(t, []network.NodeID{10, 20, 30, 42}, g.IDs())
	i, ok := g.Index(30)
	require.True(t, ok)
	assert.Equal(t, network.NodeID(30), g.ID(i))
	assert.Equal(t, []network.Edge{{From: 20, To: 10}, {From: 30, To: 10}}, g.Edges())
	assert.True(t, g.IsSource(3)) // isolated node 42
}

func TestNewGraph_Rejects(t *testing.T) {
	_, err := network.NewGraph(nil, []network.Edge{{From: 1, To: 1}})
	assert.ErrorIs(t, err, network.ErrSelfLoop)

	_, err = network.NewGraph(nil, []network.Edge{{From: 1, To: 2}, {From: 1, To: 2}})
	assert.ErrorIs(t, err, network.ErrDuplicateEdge)
}

// TestNew_ProbabilityErrors verifies every offending value is reported, not only the first.
func TestNew_ProbabilityErrors(t *testing.T) {
	// node 4 has no prior, node 2 is out of range
	priors := uniformPriors(1, 2, 3)
	priors[2] = 1.5
	// edge 3->4 has no probability, edge 1->2 is out of range
	probs := uniformProbs(diamondEdges[:3], 0.5)
	probs[network.Edge{From: 1, To: 2}] = -0.1

	_, err := network.FromFloats(diamondEdges, priors, probs)
	require.Error(t, err)
	assert.ErrorIs(t, err, network.ErrMissingProbability)
	assert.ErrorIs(t, err, network.ErrInvalidProbability)

	var pe *network.ProbabilityError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, network.NodeID(2), pe.Node) // first offender in ascending order
	assert.Contains(t, err.Error(), "node 4 prior")
	assert.Contains(t, err.Error(), "edge 3->4 probability")
	assert.Contains(t, err.Error(), "edge 1->2 probability -0.1")
}

func TestNew_Accessors(t *testing.T) {
	n, err := network.FromFloats(diamondEdges, uniformPriors(1, 2, 3, 4), uniformProbs(diamondEdges, 0.5))
	require.NoError(t, err)

	p, ok := n.PriorOf(3)
	require.True(t, ok)
	assert.Equal(t, prob.Float(0.9), p)

	ep, ok := n.EdgeProbOf(network.Edge{From: 2, To: 4})
	require.True(t, ok)
	assert.Equal(t, prob.Float(0.5), ep)

	_, ok = n.EdgeProbOf(network.Edge{From: 4, To: 2})
	assert.False(t, ok)

	assert.Len(t, n.Priors(), 4)
	assert.Len(t, n.EdgeProbs(), 4)
}

// TestRestrict_OverridesPriors checks the sub-network copy semantics used by conditioning.
func TestRestrict_OverridesPriors(t *testing.T) {
	n, err := network.FromFloats(diamondEdges, uniformPriors(1, 2, 3, 4), uniformProbs(diamondEdges, 0.5))
	require.NoError(t, err)

	sub, err := n.Restrict(
		[]network.NodeID{2, 4},
		[]network.Edge{{From: 2, To: 4}},
		func(id network.NodeID) prob.Float {
			if id == 2 {
				return 1
			}
			p, _ := n.PriorOf(id)
			return p
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []network.NodeID{2, 4}, sub.IDs())
	p2, _ := sub.PriorOf(2)
	assert.Equal(t, prob.Float(1), p2)
	orig, _ := n.PriorOf(2)
	assert.Equal(t, prob.Float(0.9), orig) // parent untouched

	_, err = n.Restrict([]network.NodeID{2}, []network.Edge{{From: 2, To: 4}}, nil)
	assert.ErrorIs(t, err, network.ErrNodeNotFound)
}
