package propagate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/internal/ctxlog"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

func diamondNet(t *testing.T) *network.Network[prob.Float] {
	t.Helper()
	edges := []network.Edge{{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4}}
	priors := map[network.NodeID]float64{1: 0.9, 2: 0.9, 3: 0.9, 4: 0.9}
	probs := map[network.Edge]float64{}
	for _, e := range edges {
		probs[e] = 0.5
	}
	n, err := network.FromFloats(edges, priors, probs)
	require.NoError(t, err)
	return n
}

// TestEvaluate_MalformedDiamond feeds a diamond without highest nodes to the
// machine directly.
func TestEvaluate_MalformedDiamond(t *testing.T) {
	n := diamondNet(t)
	clo, err := closure.Build(n.Graph)
	require.NoError(t, err)
	bad := diamond.Map{4: {JoinNode: 4, Diamonds: []diamond.Diamond{{RelevantNodes: []network.NodeID{4}}}}}

	r := &run[prob.Float]{c: NewContext[prob.Float](), log: ctxlog.Discard()}
	lvl := &level[prob.Float]{net: n, clo: clo, dmap: bad, belief: make([]prob.Float, n.Len())}
	_, err = r.evaluate(context.Background(), &frame[prob.Float]{lvl: lvl, nodes: clo.Order(), target: 3})
	assert.ErrorIs(t, err, diamond.ErrMalformedDiamond)
}

// TestCondition_Pruning checks overrides and pruning of one assignment.
func TestCondition_Pruning(t *testing.T) {
	n := diamondNet(t)
	clo, err := closure.Build(n.Graph)
	require.NoError(t, err)
	dm, err := diamond.Identify(n.Graph, clo)
	require.NoError(t, err)
	d := dm[4].Diamonds[0]

	lvl := &level[prob.Float]{net: n, clo: clo, dmap: dm, belief: []prob.Float{0.9, 0.45, 0.45, 0}}
	highest := []int{0}

	sub, err := condition(lvl, d, highest, 1, 3)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, []network.NodeID{1, 2, 3, 4}, sub.IDs())
	p1, _ := sub.PriorOf(1)
	p4, _ := sub.PriorOf(4)
	p2, _ := sub.PriorOf(2)
	assert.Equal(t, prob.Float(1), p1)
	assert.Equal(t, prob.Float(1), p4)
	assert.Equal(t, prob.Float(0.9), p2)

	// Inactive fork: nothing reaches the join.
	sub, err = condition(lvl, d, highest, 0, 3)
	require.NoError(t, err)
	assert.Nil(t, sub)

	assert.Equal(t, prob.Float(0.9), weight(lvl, highest, 1))
	assert.InDelta(t, 0.1, float64(weight(lvl, highest, 0)), 1e-12)
}

// TestCondition_EdgeListOnly conditions a diamond whose certain entry node 1
// also feeds the join: the sub-network keeps 1→3 but not 1→5, which the join
// already counts as a non-diamond term.
func TestCondition_EdgeListOnly(t *testing.T) {
	edges := []network.Edge{{From: 1, To: 3}, {From: 1, To: 5}, {From: 2, To: 3}, {From: 2, To: 4}, {From: 3, To: 5}, {From: 4, To: 5}}
	priors := map[network.NodeID]float64{1: 1, 2: 0.5, 3: 1, 4: 1, 5: 1}
	probs := map[network.Edge]float64{}
	for _, e := range edges {
		probs[e] = 0.5
	}
	n, err := network.FromFloats(edges, priors, probs)
	require.NoError(t, err)
	clo, err := closure.Build(n.Graph)
	require.NoError(t, err)
	dm, err := diamond.Identify(n.Graph, clo, diamond.WithCertain(certainSources(n)))
	require.NoError(t, err)
	require.Equal(t, []network.NodeID{1}, dm[5].NonDiamondParents)
	d := dm[5].Diamonds[0]

	lvl := &level[prob.Float]{net: n, clo: clo, dmap: dm, belief: []prob.Float{1, 0.5, 0, 0, 0}}
	sub, err := condition(lvl, d, []int{1}, 1, 4)
	require.NoError(t, err)
	require.NotNil(t, sub)

	_, ok := sub.EdgeProbOf(network.Edge{From: 1, To: 3})
	assert.True(t, ok)
	_, ok = sub.EdgeProbOf(network.Edge{From: 1, To: 5})
	assert.False(t, ok)
	assert.Equal(t, 5, sub.EdgeCount())
}

func TestSignature_Distinguishes(t *testing.T) {
	n := diamondNet(t)
	a := signature(n, 4)
	assert.Equal(t, a, signature(n, 4))
	assert.NotEqual(t, a, signature(n, 3))
	assert.Contains(t, a, "1>2=0.5")
}
