// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// errors.go — sentinel and typed errors.

package propagate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/infoprop/network"
)

var (
	// ErrNilNetwork indicates Run was called with a nil network.
	ErrNilNetwork = errors.New("propagate: network is nil")

	// ErrRecursionLimit indicates nested conditioning went deeper than MaxDepth.
	ErrRecursionLimit = errors.New("propagate: recursion limit exceeded")

	// ErrConditioningLimit indicates a diamond with more highest nodes than
	// MaxConditioning allows.
	ErrConditioningLimit = errors.New("propagate: conditioning limit exceeded")
)

// DiamondError locates a failure at a diamond join.
type DiamondError struct {
	Join  network.NodeID
	Depth int
	Err   error
}

// Error implements error.
func (e *DiamondError) Error() string {
	return fmt.Sprintf("propagate: join %d at depth %d: %v", e.Join, e.Depth, e.Err)
}

// Unwrap exposes the cause.
func (e *DiamondError) Unwrap() error { return e.Err }
