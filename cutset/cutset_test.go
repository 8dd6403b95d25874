package cutset_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/builder"
	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/cutset"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/network"
)

type fixture struct {
	g *network.Graph
	c *closure.Closure
	m diamond.Map
}

func build(t *testing.T, pairs ...network.NodeID) fixture {
	t.Helper()
	var es []network.Edge
	for k := 0; k+1 < len(pairs); k += 2 {
		es = append(es, network.Edge{From: pairs[k], To: pairs[k+1]})
	}
	g, err := network.NewGraph(nil, es)
	require.NoError(t, err)
	c, err := closure.Build(g)
	require.NoError(t, err)
	m, err := diamond.Identify(g, c)
	require.NoError(t, err)
	return fixture{g: g, c: c, m: m}
}

func idx(t *testing.T, g *network.Graph, id network.NodeID) int {
	t.Helper()
	i, ok := g.Index(id)
	require.True(t, ok)
	return i
}

func TestMinimize_SimpleDiamond(t *testing.T) {
	fx := build(t, 1, 3, 2, 3, 3, 4, 3, 5, 4, 6, 5, 6)

	res, err := cutset.Minimize(fx.g, fx.c, fx.m, 6)
	require.NoError(t, err)
	require.NoError(t, res.Err())

	assert.True(t, res.Feasible)
	assert.Equal(t, []diamond.Pattern{{Fork: 3, Join: 6}}, res.Patterns)
	// 3, 4 and 5 each break the only pattern; the lowest wins.
	assert.Equal(t, []network.NodeID{3}, res.Nodes)
	assert.True(t, cutset.VerifyCutsetBreaksDiamonds(fx.g, fx.c, fx.m, res.Nodes))
	assert.False(t, cutset.VerifyCutsetBreaksDiamonds(fx.g, fx.c, fx.m, nil))
}

// TestMinimize_SharedNode checks greedy prefers a node breaking two patterns.
func TestMinimize_SharedNode(t *testing.T) {
	fx := build(t, 1, 2, 1, 3, 2, 4, 3, 4, 4, 5, 4, 6, 5, 7, 6, 7)

	res, err := cutset.Minimize(fx.g, fx.c, fx.m, 7)
	require.NoError(t, err)

	// 1~>7 is absent: every path crosses 4.
	assert.Equal(t, []diamond.Pattern{{Fork: 1, Join: 4}, {Fork: 4, Join: 7}}, res.Patterns)
	assert.Equal(t, []network.NodeID{4}, res.Nodes)
	assert.True(t, res.Feasible)
	assert.True(t, cutset.VerifyCutsetBreaksDiamonds(fx.g, fx.c, fx.m, res.Nodes))
}

// TestMinimize_Infeasible uses a source fork with three disjoint paths to the
// sink: no single interior node can reduce them to one.
func TestMinimize_Infeasible(t *testing.T) {
	fx := build(t, 1, 2, 1, 3, 1, 4, 2, 5, 3, 5, 4, 5)

	res, err := cutset.Minimize(fx.g, fx.c, fx.m, 5)
	require.NoError(t, err)

	assert.False(t, res.Feasible)
	assert.Empty(t, res.Nodes)
	assert.Equal(t, []diamond.Pattern{{Fork: 1, Join: 5}}, res.Uncovered)
	assert.ErrorIs(t, res.Err(), cutset.ErrInfeasible)

	// Removing two of the three middle nodes does break it.
	assert.True(t, cutset.VerifyCutsetBreaksDiamonds(fx.g, fx.c, fx.m, []network.NodeID{2, 3}))
}

// TestVerifyCutsetBreaksDiamonds_SamePatterns checks that verification runs
// over the patterns Minimize covers: 1~>7 has two paths through 4 but no two
// disjoint ones, so it is no pattern of either.
func TestVerifyCutsetBreaksDiamonds_SamePatterns(t *testing.T) {
	fx := build(t, 1, 2, 1, 3, 2, 4, 3, 4, 4, 5, 4, 6, 5, 7, 6, 7)
	require.Contains(t, diamond.Patterns(fx.g, fx.m), diamond.Pattern{Fork: 1, Join: 7})
	assert.NotContains(t, cutset.Patterns(fx.c, fx.m), diamond.Pattern{Fork: 1, Join: 7})

	for seed := int64(1); seed <= 40; seed++ {
		n, err := builder.Build([]builder.BuilderOption{builder.WithSeed(seed)}, builder.RandomDAG(9, 0.4))
		require.NoError(t, err)
		c, err := closure.Build(n.Graph)
		require.NoError(t, err)
		m, err := diamond.Identify(n.Graph, c)
		require.NoError(t, err)
		sink := slices.Max(n.SinkIDs())

		res, err := cutset.Minimize(n.Graph, c, m, sink)
		require.NoError(t, err)
		if res.Feasible {
			assert.True(t, cutset.VerifyCutsetBreaksDiamonds(n.Graph, c, m, res.Nodes), "seed %d", seed)
		}
		assert.Equal(t, len(res.Patterns) == 0, cutset.VerifyCutsetBreaksDiamonds(n.Graph, c, m, nil), "seed %d", seed)
	}
}

func TestMinimize_Errors(t *testing.T) {
	fx := build(t, 1, 2)

	_, err := cutset.Minimize(fx.g, fx.c, fx.m, 9)
	assert.ErrorIs(t, err, cutset.ErrSinkNotFound)
	_, err = cutset.Minimize(fx.g, nil, fx.m, 2)
	assert.ErrorIs(t, err, cutset.ErrNilClosure)

	res, err := cutset.Minimize(fx.g, fx.c, fx.m, 2)
	require.NoError(t, err)
	assert.True(t, res.Feasible)
	assert.Empty(t, res.Nodes)
}

func TestDisjointPaths(t *testing.T) {
	fx := build(t, 1, 2, 1, 3, 2, 4, 2, 5, 3, 4, 3, 5, 4, 6, 4, 7, 5, 6, 5, 7, 6, 8, 7, 8)
	at := func(id network.NodeID) int { return idx(t, fx.g, id) }

	assert.Equal(t, 2, cutset.DisjointPaths(fx.c, at(1), at(8), 5))
	assert.Equal(t, 2, cutset.DisjointPaths(fx.c, at(2), at(8), 5))
	assert.Equal(t, 1, cutset.DisjointPaths(fx.c, at(2), at(8), 1))
	assert.Equal(t, 1, cutset.DisjointPaths(fx.c, at(6), at(8), 5))
	assert.Equal(t, 0, cutset.DisjointPaths(fx.c, at(8), at(1), 5))
}

func TestCountPaths(t *testing.T) {
	fx := build(t, 1, 2, 1, 3, 2, 4, 2, 5, 3, 4, 3, 5, 4, 6, 4, 7, 5, 6, 5, 7, 6, 8, 7, 8)
	at := func(id network.NodeID) int { return idx(t, fx.g, id) }

	assert.Equal(t, 2, cutset.CountPaths(fx.c, at(1), at(8), nil))
	assert.Equal(t, 1, cutset.CountPaths(fx.c, at(6), at(8), nil))
	assert.Equal(t, 0, cutset.CountPaths(fx.c, at(8), at(6), nil))
}
