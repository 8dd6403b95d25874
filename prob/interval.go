// SPDX-License-Identifier: MIT
// Package: infoprop/prob
//
// interval.go — imprecise probabilities as closed intervals.
//
// Arithmetic is the usual outward interval arithmetic specialised to the
// non-negative orthant: [a,b]+[c,d] = [a+c, b+d], [a,b]·[c,d] = [ac, bd],
// 1-[a,b] = [1-b, 1-a]. Sums are intersected with [0,1] since every sum the
// propagator forms is itself a probability.

package prob

import (
	"math"
	"strconv"
)

// Interval is a closed probability interval [Lo, Hi].
// The zero value is the point interval [0,0].
type Interval struct {
	Lo float64
	Hi float64
}

// PointInterval returns the degenerate interval [p,p].
func PointInterval(p float64) Interval { return Interval{Lo: p, Hi: p} }

// Add returns the interval sum, clipped to [0,1].
func (i Interval) Add(o Interval) Interval {
	return Interval{Lo: math.Min(1, i.Lo+o.Lo), Hi: math.Min(1, i.Hi+o.Hi)}
}

// Mul returns the interval product for non-negative operands.
func (i Interval) Mul(o Interval) Interval {
	return Interval{Lo: i.Lo * o.Lo, Hi: i.Hi * o.Hi}
}

// OneMinus returns the complement interval [1-Hi, 1-Lo].
func (i Interval) OneMinus() Interval {
	return Interval{Lo: 1 - i.Hi, Hi: 1 - i.Lo}
}

// Point reports the value when the interval is degenerate.
func (i Interval) Point() (float64, bool) {
	if i.Lo == i.Hi {
		return i.Lo, true
	}

	return 0, false
}

// Valid reports 0 ≤ Lo ≤ Hi ≤ 1.
func (i Interval) Valid() bool {
	if math.IsNaN(i.Lo) || math.IsNaN(i.Hi) {
		return false
	}

	return i.Lo >= 0 && i.Lo <= i.Hi && i.Hi <= 1
}

// Width returns Hi-Lo.
func (i Interval) Width() float64 { return i.Hi - i.Lo }

// Contains reports Lo ≤ p ≤ Hi.
func (i Interval) Contains(p float64) bool { return p >= i.Lo && p <= i.Hi }

// String renders "[lo,hi]" with round-trip float formatting.
func (i Interval) String() string {
	return "[" + strconv.FormatFloat(i.Lo, 'g', -1, 64) + "," +
		strconv.FormatFloat(i.Hi, 'g', -1, 64) + "]"
}
