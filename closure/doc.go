// Package closure computes the derived, read-only structure the diamond
// identifier and the propagator iterate over: topological iteration sets
// (generations) and transitive ancestor / descendant closures.
//
// What:
//
//   - Build: Kahn-style layering. Generation 0 holds the sources; every other
//     node sits one generation after its latest predecessor, so for every edge
//     (u,v) generation(u) < generation(v).
//   - Ancestors / Descendants: bitsets over arena indices, self excluded,
//     accumulated in generation order so each predecessor set is final before
//     it is read.
//
// Errors:
//
//   - ErrCycleDetected (as *CycleError listing the nodes that could not be
//     layered). No partial Closure is returned.
//
// Complexity:
//
//   - Layering:  O(V + E)
//   - Closures:  O(E · V / 64) words of bitset union, O(V² / 64) memory.
package closure
