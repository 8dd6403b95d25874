// SPDX-License-Identifier: MIT
// Package: infoprop/network
//
// types.go — identifiers, edges and sentinel errors.

package network

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for network construction and lookup.
var (
	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("network: self-loop not allowed")

	// ErrDuplicateEdge indicates the same ordered pair was supplied twice.
	ErrDuplicateEdge = errors.New("network: duplicate edge")

	// ErrMissingProbability indicates a node without a prior or an edge without
	// a probability.
	ErrMissingProbability = errors.New("network: missing probability")

	// ErrInvalidProbability indicates a prior or edge probability outside [0,1].
	ErrInvalidProbability = errors.New("network: probability out of range [0,1]")

	// ErrNodeNotFound indicates a lookup of a NodeID that is not in the graph.
	ErrNodeNotFound = errors.New("network: node not found")
)

// NodeID identifies a node. IDs are arbitrary integers; the graph maps them
// onto dense indices internally.
type NodeID int

// Edge is a directed pair From→To.
type Edge struct {
	From NodeID
	To   NodeID
}

// String renders "u->v".
func (e Edge) String() string {
	return strconv.Itoa(int(e.From)) + "->" + strconv.Itoa(int(e.To))
}

// ProbabilityError reports one offending node prior or edge probability.
// Exactly one of Node / Edge is meaningful, selected by IsEdge.
type ProbabilityError struct {
	Node   NodeID
	Edge   Edge
	IsEdge bool
	Value  string // textual value, empty when missing
	Err    error  // ErrMissingProbability or ErrInvalidProbability
}

// Error implements error.
func (e *ProbabilityError) Error() string {
	subject := fmt.Sprintf("node %d prior", e.Node)
	if e.IsEdge {
		subject = fmt.Sprintf("edge %s probability", e.Edge)
	}
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", subject, e.Err)
	}

	return fmt.Sprintf("%s %s: %v", subject, e.Value, e.Err)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ProbabilityError) Unwrap() error { return e.Err }
