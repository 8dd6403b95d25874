// Package network defines the immutable, arena-indexed directed graph and the
// probability layer on top of it that every infoprop algorithm consumes.
//
// What:
//
//   - Graph: integer-identified nodes mapped onto stable indices 0..n-1
//     (ascending NodeID order) with flat in/out adjacency slices, the sorted
//     edge list and the derived Sources / Forks / Joins / Sinks index sets.
//   - Network[T]: a Graph plus one prior per node and one probability per edge,
//     both stored by arena index, generic over prob.Value.
//
// Why:
//
//   - Index-based adjacency keeps the propagation hot loop on slices instead
//     of hash maps of sets, and lets closures be stored as bitsets.
//   - Validation happens exactly once, at construction: later stages assume a
//     well-formed network and never re-check probabilities.
//
// Errors:
//
//   - ErrSelfLoop            edge (v,v) supplied
//   - ErrDuplicateEdge       the same (u,v) supplied twice
//   - ErrMissingProbability  node without prior / edge without probability
//   - ErrInvalidProbability  prior or edge probability outside [0,1]
//   - ErrNodeNotFound        lookup of an unknown NodeID
//
// Probability errors are reported per offending node/edge as *ProbabilityError
// values joined with errors.Join; use errors.Is / errors.As to inspect them.
//
// Acyclicity is NOT checked here; closure.Build owns cycle detection.
package network
