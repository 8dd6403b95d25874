// SPDX-License-Identifier: MIT
// Package: infoprop/diamond
//
// types.go — diamond structures and errors.

package diamond

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/infoprop/network"
)

var (
	// ErrNilClosure indicates Identify was called without a closure.
	ErrNilClosure = errors.New("diamond: closure is nil")

	// ErrMalformedDiamond indicates a Diamond violating its invariants.
	ErrMalformedDiamond = errors.New("diamond: malformed diamond")
)

// Diamond is one correlated group of paths converging at a join node.
//
// Invariants:
//   - HighestNodes is non-empty and mutually non-ancestor.
//   - Every node of RelevantNodes except the join reaches the join.
//   - EntryNodes ⊆ RelevantNodes; they feed interior nodes from outside the
//     fork-to-join region. No correlating fork is shared by two members of
//     HighestNodes ∪ EntryNodes.
//   - EdgeList holds every in-edge of an interior node and the edges into the
//     join from the group's parents only.
//
// All slices are sorted ascending.
type Diamond struct {
	RelevantNodes []network.NodeID
	HighestNodes  []network.NodeID
	EntryNodes    []network.NodeID
	EdgeList      []network.Edge
}

// AtNode collects the diamonds converging at one join node.
type AtNode struct {
	JoinNode          network.NodeID
	Diamonds          []Diamond
	NonDiamondParents []network.NodeID
}

// Map indexes AtNode by join node. Only join nodes with at least one diamond
// are present.
type Map map[network.NodeID]*AtNode

// MalformedError explains which invariant a diamond broke.
type MalformedError struct {
	Join   network.NodeID
	Reason string
}

// Error implements error.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v at join %d: %s", ErrMalformedDiamond, e.Join, e.Reason)
}

// Unwrap exposes ErrMalformedDiamond.
func (e *MalformedError) Unwrap() error { return ErrMalformedDiamond }

// Options configures Identify.
type Options struct {
	// Certain reports nodes whose state is fixed and which therefore never
	// correlate the paths leaving them. Nil means no node is certain.
	Certain func(network.NodeID) bool
}

// Option mutates Options.
type Option func(*Options)

// WithCertain installs the certainty predicate.
// Panics on nil to surface programmer error early.
func WithCertain(fn func(network.NodeID) bool) Option {
	if fn == nil {
		panic("diamond: WithCertain(nil)")
	}
	return func(o *Options) { o.Certain = fn }
}
