// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// options.go — functional options for Run and NewContext.

package propagate

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/infoprop/network"
)

const (
	// DefaultMaxDepth bounds nested conditioning.
	DefaultMaxDepth = 64

	// DefaultMaxConditioning bounds |HighestNodes| (2^24 assignments).
	DefaultMaxConditioning = 24
)

// Options configures propagation.
type Options struct {
	Workers         int
	MaxDepth        int
	MaxConditioning int

	// Cutset enables cutset computation for Sink.
	Cutset bool
	Sink   network.NodeID

	Registerer prometheus.Registerer
	Logger     *slog.Logger

	// Diamonds disables diamond handling when false.
	Diamonds bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns sequential evaluation with diamond conditioning.
func DefaultOptions() Options {
	return Options{
		Workers:         1,
		MaxDepth:        DefaultMaxDepth,
		MaxConditioning: DefaultMaxConditioning,
		Diamonds:        true,
	}
}

// WithWorkers sets the number of goroutines per generation.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("propagate: WithWorkers(n<1)")
	}
	return func(o *Options) { o.Workers = n }
}

// WithMaxDepth bounds nested conditioning depth.
// Panics if n < 1.
func WithMaxDepth(n int) Option {
	if n < 1 {
		panic("propagate: WithMaxDepth(n<1)")
	}
	return func(o *Options) { o.MaxDepth = n }
}

// WithMaxConditioning bounds the highest nodes of a single diamond.
// Panics unless 1 ≤ n ≤ 62.
func WithMaxConditioning(n int) Option {
	if n < 1 || n > 62 {
		panic("propagate: WithMaxConditioning out of [1,62]")
	}
	return func(o *Options) { o.MaxConditioning = n }
}

// WithCutset computes a cutset for sink and reports it in Result.Cutset. A
// feasible cutset reseeds the top-level diamonds through diamond.Reseed.
func WithCutset(sink network.NodeID) Option {
	return func(o *Options) {
		o.Cutset = true
		o.Sink = sink
	}
}

// WithMetrics registers the context's collectors on reg.
// Panics on nil.
func WithMetrics(reg prometheus.Registerer) Option {
	if reg == nil {
		panic("propagate: WithMetrics(nil)")
	}
	return func(o *Options) { o.Registerer = reg }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("propagate: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithoutDiamonds treats every join as if its parents were independent.
func WithoutDiamonds() Option {
	return func(o *Options) { o.Diamonds = false }
}
