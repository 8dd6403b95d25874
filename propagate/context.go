// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// context.go — PropagationContext: options, memo, counters and collectors.

package propagate

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/infoprop/prob"
)

// Context owns everything one or more propagation runs share: the memo cache,
// the limits, the counters and the metrics. It holds no reference to any
// network, so one Context may serve several runs (and several goroutines);
// the memo then carries over between runs.
type Context[T prob.Value[T]] struct {
	opts   Options
	cache  *memo[T]
	flight singleflight.Group
	met    *metrics

	subnetworks atomic.Int64
	hits        atomic.Int64
	misses      atomic.Int64
	assignments atomic.Int64
	maxDepth    atomic.Int64
}

// PropagationContext is the point-probability Context.
type PropagationContext = Context[prob.Float]

// NewContext applies opts over DefaultOptions.
func NewContext[T prob.Value[T]](opts ...Option) *Context[T] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Context[T]{
		opts:  o,
		cache: newMemo[T](),
		met:   newMetrics(o.Registerer),
	}
}

// Options returns a copy of the effective options.
func (c *Context[T]) Options() Options { return c.opts }

// MemoLen returns the number of cached conditioned join beliefs.
func (c *Context[T]) MemoLen() int { return c.cache.len() }

// Stats returns cumulative counters over every run of c.
func (c *Context[T]) Stats() Stats {
	return Stats{
		Subnetworks: c.subnetworks.Load(),
		CacheHits:   c.hits.Load(),
		CacheMisses: c.misses.Load(),
		Assignments: c.assignments.Load(),
		MaxDepth:    int(c.maxDepth.Load()),
		MemoEntries: c.cache.len(),
	}
}

func (c *Context[T]) hit() {
	c.hits.Add(1)
	c.met.hits.Inc()
}

func (c *Context[T]) miss() {
	c.misses.Add(1)
	c.met.misses.Inc()
}

func (c *Context[T]) assignment() {
	c.assignments.Add(1)
	c.met.assignments.Inc()
}

func (c *Context[T]) subnetwork(depth int) {
	c.subnetworks.Add(1)
	c.met.subnetworks.Inc()
	for {
		cur := c.maxDepth.Load()
		if int64(depth) <= cur || c.maxDepth.CompareAndSwap(cur, int64(depth)) {
			return
		}
	}
}
