// Package builder assembles deterministic probabilistic-DAG fixtures for
// tests, examples, benchmarks and the CLI's demo networks.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – Build:            applies Constructors in order and returns a
//     *network.Network[prob.Float].
//     – Constructor:      a function that adds nodes/edges to a Spec.
//   - Topologies (impl_*.go):
//     – Chain, Tree:      diamond-free shapes (idempotence checks).
//     – Diamond, DiamondChain, Layered: reconverging shapes; Layered(1,2,2,2,1)
//     is the 8-node nested grid.
//     – RandomDAG:        seeded forward-edge sampling.
//     – Connect:          explicit edge between already allocated nodes.
//   - Probability distributions (ProbabilityFn):
//     – ConstantProbability, UniformProbability.
//   - Options (BuilderOption):
//     – WithSeed / WithRand, WithFirstID, WithPrior / WithPriorFn,
//     WithEdgeProbability / WithEdgeProbabilityFn.
//
// Guarantees:
//
//   - Node IDs are allocated consecutively from WithFirstID (default 1) in
//     constructor order, so composed constructors never collide.
//   - Deterministic for the same options, seed and constructor order.
//   - Fast-fail on invalid option parameters via panics in option constructors;
//     constructors return sentinel errors and never panic.
package builder
