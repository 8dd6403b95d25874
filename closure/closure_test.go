package closure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/network"
)

func mustGraph(t *testing.T, edges ...network.Edge) *network.Graph {
	t.Helper()
	g, err := network.NewGraph(nil, edges)
	require.NoError(t, err)
	return g
}

// TestBuild_IterationSets checks generations on {1,2}→3→{4,5}→6.
func TestBuild_IterationSets(t *testing.T) {
	g := mustGraph(t,
		network.Edge{From: 1, To: 3}, network.Edge{From: 2, To: 3},
		network.Edge{From: 3, To: 4}, network.Edge{From: 3, To: 5},
		network.Edge{From: 4, To: 6}, network.Edge{From: 5, To: 6},
	)
	c, err := closure.Build(g)
	require.NoError(t, err)

	assert.Equal(t, [][]network.NodeID{{1, 2}, {3}, {4, 5}, {6}}, c.IterationSets())

	anc := c.AncestorMap()
	assert.Equal(t, []network.NodeID{1, 2, 3, 4, 5}, anc[6])
	assert.Empty(t, anc[1])
	desc := c.DescendantMap()
	assert.Equal(t, []network.NodeID{3, 4, 5, 6}, desc[2])
	assert.Empty(t, desc[6])
}

// TestBuild_GenerationInvariant asserts generation(u) < generation(v) for every edge
// and that each node sits exactly one past its latest predecessor.
func TestBuild_GenerationInvariant(t *testing.T) {
	g := mustGraph(t,
		network.Edge{From: 1, To: 2}, network.Edge{From: 2, To: 3},
		network.Edge{From: 1, To: 3}, network.Edge{From: 3, To: 5},
		network.Edge{From: 4, To: 5},
	)
	c, err := closure.Build(g)
	require.NoError(t, err)

	for _, e := range g.Edges() {
		u, _ := g.Index(e.From)
		v, _ := g.Index(e.To)
		assert.Less(t, c.Generation(u), c.Generation(v), "edge %s", e)
	}
	for i := 0; i < g.Len(); i++ {
		want := 0
		for _, p := range g.In(i) {
			if c.Generation(p)+1 > want {
				want = c.Generation(p) + 1
			}
		}
		assert.Equal(t, want, c.Generation(i))
	}
	assert.Len(t, c.Order(), g.Len())
}

func TestBuild_IsAncestor(t *testing.T) {
	g := mustGraph(t, network.Edge{From: 1, To: 2}, network.Edge{From: 2, To: 3}, network.Edge{From: 4, To: 3})
	c, err := closure.Build(g)
	require.NoError(t, err)

	i1, _ := g.Index(1)
	i3, _ := g.Index(3)
	i4, _ := g.Index(4)
	assert.True(t, c.IsAncestor(i1, i3))
	assert.False(t, c.IsAncestor(i3, i1))
	assert.False(t, c.IsAncestor(i1, i4))
	assert.False(t, c.IsAncestor(i1, i1))
}

// TestBuild_Cycle verifies the fatal error and the reported residual nodes.
func TestBuild_Cycle(t *testing.T) {
	g := mustGraph(t,
		network.Edge{From: 1, To: 2}, network.Edge{From: 2, To: 3},
		network.Edge{From: 3, To: 2}, network.Edge{From: 3, To: 4},
	)
	c, err := closure.Build(g)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, closure.ErrCycleDetected)

	var ce *closure.CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []network.NodeID{2, 3, 4}, ce.Nodes)
}

func TestBuild_Empty(t *testing.T) {
	c, err := closure.Build(mustGraph(t))
	require.NoError(t, err)
	assert.Empty(t, c.IterationSets())
}
