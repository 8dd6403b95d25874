package prob_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/infoprop/prob"
)

const eps = 1e-12

// TestOr_MatchesInclusionExclusion pins the product form against the literal expansion.
func TestOr_MatchesInclusionExclusion(t *testing.T) {
	cases := [][]prob.Float{
		{},
		{0.3},
		{0.5, 0.5},
		{0.9, 0.1, 0.25},
		{0.2, 0.4, 0.6, 0.8, 1},
		{0, 0, 0},
	}
	for _, terms := range cases {
		got := prob.Or(terms...)
		want := prob.InclusionExclusion(terms...)
		assert.InDelta(t, float64(want), float64(got), eps, "terms=%v", terms)
	}
}

// TestOr_EmptyAndSingle checks the degenerate arities.
func TestOr_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, prob.Float(0), prob.Or[prob.Float]())
	assert.Equal(t, prob.Float(0.42), prob.Or(prob.Float(0.42)))
}

func TestFloat_Valid(t *testing.T) {
	assert.True(t, prob.Float(0).Valid())
	assert.True(t, prob.Float(1).Valid())
	assert.False(t, prob.Float(-0.01).Valid())
	assert.False(t, prob.Float(1.01).Valid())
}

func TestCertainAndZero(t *testing.T) {
	assert.True(t, prob.Certain(prob.Float(0)))
	assert.True(t, prob.Certain(prob.Float(1)))
	assert.False(t, prob.Certain(prob.Float(0.5)))
	assert.True(t, prob.IsZero(prob.Float(0)))
	assert.False(t, prob.IsZero(prob.Float(1)))

	assert.True(t, prob.Certain(prob.PointInterval(1)))
	assert.False(t, prob.Certain(prob.Interval{Lo: 0.9, Hi: 1}))
	assert.Equal(t, prob.PointInterval(1), prob.One[prob.Interval]())
}

// TestInterval_Arithmetic checks the outward rules and clipping.
func TestInterval_Arithmetic(t *testing.T) {
	a := prob.Interval{Lo: 0.2, Hi: 0.4}
	b := prob.Interval{Lo: 0.5, Hi: 0.9}

	assert.InDelta(t, 0.7, a.Add(b).Lo, eps)
	assert.InDelta(t, 1.0, a.Add(b).Hi, eps) // 1.3 clipped
	assert.InDelta(t, 0.1, a.Mul(b).Lo, eps)
	assert.InDelta(t, 0.36, a.Mul(b).Hi, eps)
	assert.InDelta(t, 0.6, a.OneMinus().Lo, eps)
	assert.InDelta(t, 0.8, a.OneMinus().Hi, eps)
	assert.True(t, a.Valid())
	assert.False(t, prob.Interval{Lo: 0.5, Hi: 0.4}.Valid())
	assert.Equal(t, "[0.2,0.4]", a.String())
}

// TestInterval_OrEnclosesPoints verifies that interval OR brackets every point OR
// obtained from the interval endpoints.
func TestInterval_OrEnclosesPoints(t *testing.T) {
	a := prob.Interval{Lo: 0.1, Hi: 0.3}
	b := prob.Interval{Lo: 0.6, Hi: 0.7}
	got := prob.Or(a, b)

	lo := prob.Or(prob.Float(a.Lo), prob.Float(b.Lo))
	hi := prob.Or(prob.Float(a.Hi), prob.Float(b.Hi))
	assert.InDelta(t, float64(lo), got.Lo, eps)
	assert.InDelta(t, float64(hi), got.Hi, eps)
}

func TestWeightedSum(t *testing.T) {
	w := []prob.Float{0.25, 0.75}
	v := []prob.Float{1, 0.5}
	assert.InDelta(t, 0.625, float64(prob.WeightedSum(w, v)), eps)
	assert.InDelta(t, 0.25, float64(prob.WeightedSum(w, v[:1])), eps)
}
