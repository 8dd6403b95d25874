package prob

import (
	"math"
	"strconv"
)

// Float is a point probability.
type Float float64

// Add returns f+o.
func (f Float) Add(o Float) Float { return f + o }

// Mul returns f·o.
func (f Float) Mul(o Float) Float { return f * o }

// OneMinus returns 1-f.
func (f Float) OneMinus() Float { return 1 - f }

// Point always reports the float value itself.
func (f Float) Point() (float64, bool) { return float64(f), true }

// Valid reports 0 ≤ f ≤ 1 (NaN is never valid).
func (f Float) Valid() bool {
	x := float64(f)

	return !math.IsNaN(x) && x >= 0 && x <= 1
}

// String renders the shortest representation that round-trips exactly.
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Float64 returns the underlying float64.
func (f Float) Float64() float64 { return float64(f) }
