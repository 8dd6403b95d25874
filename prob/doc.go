// Package prob defines the numeric capability set shared by every algorithm in
// infoprop, and the two concrete probability types that satisfy it.
//
// What:
//
//   - Value[T]: the constraint (Add, Mul, OneMinus, Point, Valid, String) the
//     closure, diamond and propagation code is written against. The zero value
//     of a Value type MUST be the probability 0.
//   - Float: a plain float64 probability.
//   - Interval: a closed sub-interval [Lo, Hi] of [0,1] carrying imprecise
//     probabilities through the same algorithms.
//   - Or, InclusionExclusion, WeightedSum: combinators over independent events.
//
// Why:
//
//   - The propagation algorithm is written once and instantiated per numeric
//     type instead of being duplicated for point and interval arithmetic.
//
// Complexity:
//
//   - Or:                 O(k) for k terms.
//   - InclusionExclusion: O(2^k · k); kept for verification of small term sets.
//   - WeightedSum:        O(k).
package prob
