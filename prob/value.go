// SPDX-License-Identifier: MIT
// Package: infoprop/prob
//
// value.go — the Value constraint and generic helpers built on it.

package prob

// Value is the capability set a probability type must expose.
//
// Contract:
//   - The zero value represents probability 0; OneMinus of it represents 1.
//   - Add and Mul are used only on probabilities (operands in [0,1]).
//   - Point reports (p, true) when the value is a single exact number p.
//   - Valid reports whether the value lies inside [0,1].
//   - String is stable and injective enough to be used in memoisation keys.
type Value[T any] interface {
	Add(T) T
	Mul(T) T
	OneMinus() T
	Point() (float64, bool)
	Valid() bool
	String() string
}

// One returns the probability 1 for T.
func One[T Value[T]]() T {
	var zero T

	return zero.OneMinus()
}

// Certain reports whether v is exactly 0 or exactly 1.
// Certain values carry no uncertainty and therefore cannot correlate paths.
func Certain[T Value[T]](v T) bool {
	p, ok := v.Point()

	return ok && (p == 0 || p == 1)
}

// IsZero reports whether v is exactly the probability 0.
func IsZero[T Value[T]](v T) bool {
	p, ok := v.Point()

	return ok && p == 0
}
