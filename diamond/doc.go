// Package diamond finds the diamond patterns of a probabilistic DAG: places
// where two or more paths leaving a common fork reconverge at a join node, so
// that naive independent-OR combination at the join would overstate its
// activation probability.
//
// What:
//
//   - Identify: for every join node, groups its parents by shared correlating
//     fork ancestors and builds one Diamond per group (HighestNodes,
//     RelevantNodes, EntryNodes, EdgeList); parents outside every group become
//     NonDiamondParents.
//   - Reseed: rebuilds the diamonds of a Map around given nodes (a cutset),
//     keeping a rebuilt diamond when it conditions on no more nodes.
//   - Validate: checks the Diamond invariants (defensive; violations are
//     internal-logic bugs reported as ErrMalformedDiamond).
//   - Summarize: counts and conditioning cost of a Map.
//
// Correlating forks:
//
//	A fork only induces correlation if its own state is uncertain. Sources whose
//	prior is exactly 0 or 1 are certain; inside a conditioned sub-network that
//	includes the conditioned nodes. Callers supply them through WithCertain.
//	Excluding them lets re-identification on a conditioned sub-network unmask
//	the diamonds nested below the conditioned ones.
//
// Complexity (per join j with k parents):
//
//	O(k · V/64) to intersect ancestor bitsets, O(|relevant| · deg) to collect
//	edges. Identify over the whole graph is O(J · (k·V/64 + E)).
package diamond
