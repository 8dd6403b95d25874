// Package cutset picks a small set of nodes whose conditioning breaks every
// diamond pattern of a DAG, bounding the cost of diamond conditioning.
//
// A pattern is a (fork, join) pair taken from the diamond map where the fork
// has at least two vertex-disjoint paths to the join. A candidate node breaks
// a pattern when it is the fork, the join, or when removing it leaves at most
// one fork→join path. Minimize runs greedy set cover over those coverage sets;
// VerifyCutsetBreaksDiamonds checks a cutset independently.
//
// Vertex-disjoint paths are counted with a node-split unit-capacity
// Edmonds–Karp (BFS augmenting paths) capped at the number of paths of
// interest; plain path counts use dynamic programming in topological order,
// saturating at 2.
//
// Complexity:
//
//	Patterns:  O(P · E) (two augmentations per pattern)
//	Coverage:  O(P · C · (V+E)) for C candidates
//	Greedy:    O(C · P) per round
package cutset
