// Package infoprop computes activation beliefs over probabilistic DAGs.
//
// 🚀 What is infoprop?
//
//	Every node of a directed acyclic network carries a prior (the chance it can
//	activate at all) and every edge a transmission probability. A node's belief
//	is the probability that it ends up active:
//		• sources: belief = prior
//		• others:  belief = prior · P(at least one parent transmits)
//
//	Plain propagation treats the parents of a join as independent, which is
//	wrong as soon as two parents share an upstream fork. infoprop finds those
//	"diamonds" and conditions on their highest fork nodes, recursively, so the
//	result is exact for the nested diamonds it can resolve.
//
// ✨ Building blocks
//
//	prob/       — the numeric capability set (Float, Interval) beliefs are computed in
//	network/    — arena-indexed immutable Graph plus priors and edge probabilities
//	closure/    — topological generations, ancestor/descendant bitsets, cycle errors
//	diamond/    — diamond identification at every join, validation, summaries
//	cutset/     — greedy node set that breaks every diamond pattern
//	propagate/  — the conditioned belief propagator (memo, workers, metrics)
//	montecarlo/ — seeded forward sampling, for cross-checking
//	builder/    — deterministic network constructors (chains, diamonds, grids, random DAGs)
//	netio/      — CSV adjacency matrices, YAML/JSON documents, result export
//	cmd/infoprop — the command line front end
//
// Quick ASCII example:
//
//	      1
//	     / \
//	    2   3
//	     \ /
//	      4
//
//	is the smallest diamond: 2 and 3 are correlated through 1, so belief(4) is
//	computed by conditioning on 1 being active or inactive.
//
//	go install github.com/katalvlaran/infoprop/cmd/infoprop@latest
package infoprop
