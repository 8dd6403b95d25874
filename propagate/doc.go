// Package propagate computes node beliefs of a probabilistic DAG, conditioning
// on the highest nodes of every diamond so that correlated paths are combined
// exactly.
//
// What:
//
//   - Run walks the closure's generations. Sources take their prior; a regular
//     node combines its independent incoming terms belief(u)·p(u,v) with Or; a
//     diamond join combines its non-diamond terms with one contribution per
//     diamond.
//   - A diamond contribution sums, over every active/inactive assignment of the
//     diamond's highest nodes, the assignment weight times the belief of the
//     join in the conditioned sub-network. Sub-networks are re-identified, so
//     diamonds nested inside are conditioned in turn.
//   - Nested evaluation runs on an explicit stack of frames; depth is bounded
//     by Options.MaxDepth and the assignment count by Options.MaxConditioning.
//   - Conditioned join beliefs are memoised by the canonical signature of the
//     sub-network, shared across workers, and deduplicated with singleflight.
//
// Options:
//
//	WithWorkers(n)          nodes of one generation computed by n goroutines
//	WithMaxDepth(n)         nested conditioning depth (default 64)
//	WithMaxConditioning(n)  highest nodes per diamond (default 24)
//	WithCutset(sink)        cutset for sink; when feasible it reseeds the
//	                        top-level diamonds (same beliefs, fewer assignments)
//	WithMetrics(reg)        register Prometheus collectors on reg
//	WithLogger(l)           structured logger (else the context's, else none)
//	WithoutDiamonds()       plain generation propagation
//
// Errors:
//
//	closure.ErrCycleDetected      input is not a DAG
//	diamond.ErrMalformedDiamond   a diamond without highest nodes (internal)
//	ErrRecursionLimit             nesting deeper than MaxDepth
//	ErrConditioningLimit          more highest nodes than MaxConditioning
//	context errors                cancellation or deadline
//
// No partial belief map is returned on error.
package propagate
