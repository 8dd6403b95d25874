// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// propagate.go — Run: closure, diamonds, optional cutset, generation loop.

package propagate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/cutset"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/internal/ctxlog"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// Stats counts the work of a Context. Values are cumulative across runs
// sharing the Context.
type Stats struct {
	Subnetworks int64 // conditioned sub-networks built and evaluated
	CacheHits   int64
	CacheMisses int64
	Assignments int64 // non-zero-weight assignments considered
	MaxDepth    int   // deepest nesting reached
	MemoEntries int
}

// Result is the outcome of a successful run.
type Result[T prob.Value[T]] struct {
	RunID    string
	Beliefs  map[network.NodeID]T
	Closure  *closure.Closure
	// Diamonds is the top-level map conditioned on, reseeded when a feasible
	// cutset was used.
	Diamonds diamond.Map
	// Cutset is set when WithCutset was given.
	Cutset *cutset.Result
	Stats  Stats
}

// Run propagates beliefs over net with a fresh Context.
func Run[T prob.Value[T]](ctx context.Context, net *network.Network[T], opts ...Option) (*Result[T], error) {
	return NewContext[T](opts...).Run(ctx, net)
}

// Run propagates beliefs over net, reusing c's memo and counters.
//
// Steps:
//  1. closure.Build (cycle → error).
//  2. diamond.Identify, sources with prior exactly 0 or 1 being certain.
//  3. cutset.Minimize when requested; a feasible cutset reseeds the top-level
//     diamonds through diamond.Reseed, an infeasible one is only logged.
//  4. generations in order; nodes of one generation concurrently with up to
//     Options.Workers goroutines.
func (c *Context[T]) Run(ctx context.Context, net *network.Network[T]) (*Result[T], error) {
	start := time.Now()
	if net == nil {
		return nil, ErrNilNetwork
	}

	log := c.opts.Logger
	if log == nil {
		log = ctxlog.FromContext(ctx)
	}
	runID := uuid.NewString()
	log = log.With("run_id", runID)
	r := &run[T]{c: c, log: log}

	res, err := r.propagate(ctx, net)
	if err != nil {
		c.met.runs.WithLabelValues("error").Inc()
		log.Error("propagation failed", "error", err)
		return nil, err
	}
	res.RunID = runID
	res.Stats = c.Stats()

	elapsed := time.Since(start)
	c.met.runs.WithLabelValues("ok").Inc()
	c.met.duration.Observe(elapsed.Seconds())
	log.Info("propagation finished",
		"nodes", net.Len(),
		"subnetworks", res.Stats.Subnetworks,
		"memo_hits", res.Stats.CacheHits,
		"max_depth", res.Stats.MaxDepth,
		"elapsed", elapsed)

	return res, nil
}

func (r *run[T]) propagate(ctx context.Context, net *network.Network[T]) (*Result[T], error) {
	opts := r.c.opts

	clo, err := closure.Build(net.Graph)
	if err != nil {
		return nil, fmt.Errorf("propagate: %w", err)
	}

	dm := diamond.Map{}
	if opts.Diamonds {
		dm, err = diamond.Identify(net.Graph, clo, diamond.WithCertain(certainSources(net)))
		if err != nil {
			return nil, fmt.Errorf("propagate: %w", err)
		}
	}
	sum := diamond.Summarize(dm)
	r.log.Info("propagation started",
		"nodes", net.Len(),
		"edges", net.EdgeCount(),
		"generations", len(clo.Generations()),
		"diamond_joins", sum.Joins,
		"diamonds", sum.Diamonds,
		"workers", opts.Workers)

	var cut *cutset.Result
	if opts.Cutset {
		cut, err = cutset.Minimize(net.Graph, clo, dm, opts.Sink)
		if err != nil {
			return nil, fmt.Errorf("propagate: %w", err)
		}
		if cerr := cut.Err(); cerr != nil {
			r.log.Warn("cutset infeasible, conditioning on highest nodes",
				"uncovered", len(cut.Uncovered), "error", cerr)
		} else {
			dm, err = diamond.Reseed(net.Graph, clo, dm, cut.Nodes, diamond.WithCertain(certainSources(net)))
			if err != nil {
				return nil, fmt.Errorf("propagate: %w", err)
			}
			r.log.Info("conditioning on cutset",
				"nodes", cut.Nodes,
				"patterns", len(cut.Patterns),
				"assignments", diamond.Summarize(dm).Assignments)
		}
	}

	top := &level[T]{net: net, clo: clo, dmap: dm, belief: make([]T, net.Len())}
	for gen, nodes := range clo.Generations() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(opts.Workers)
		for _, v := range nodes {
			eg.Go(func() error {
				at, ok := dm[net.ID(v)]
				if !ok {
					top.belief[v] = regular(top, v)
					return nil
				}
				b, err := r.evaluate(gctx, &frame[T]{lvl: top, nodes: []int{v}, target: v})
				if err != nil {
					return err
				}
				r.log.Debug("diamond join", "join", net.ID(v), "diamonds", len(at.Diamonds), "belief", b.String())
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		r.log.Debug("generation done", "generation", gen, "nodes", len(nodes))
	}

	beliefs := make(map[network.NodeID]T, net.Len())
	for i, b := range top.belief {
		beliefs[net.ID(i)] = b
	}

	return &Result[T]{
		Beliefs:  beliefs,
		Closure:  clo,
		Diamonds: dm,
		Cutset:   cut,
	}, nil
}
