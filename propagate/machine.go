// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// machine.go — explicit-stack evaluation of nested conditioned sub-networks.
//
// A frame evaluates a list of nodes of one level (a network with its closure,
// diamonds and belief slice). When a diamond join needs the conditioned belief
// of a sub-network that is not memoised, the frame parks the join's state in a
// joinTask and a child frame is pushed; the child's result is folded back into
// the task when it is popped. Go's call stack never grows with nesting depth.

package propagate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// level is one network under evaluation.
type level[T prob.Value[T]] struct {
	net    *network.Network[T]
	clo    *closure.Closure
	dmap   diamond.Map
	belief []T
}

type frame[T prob.Value[T]] struct {
	lvl    *level[T]
	nodes  []int // evaluation order
	cursor int
	target int
	depth  int
	key    string // memo key of target's belief; empty for top-level frames
	task   *joinTask[T]
}

// joinTask is the suspended evaluation of one diamond join.
type joinTask[T prob.Value[T]] struct {
	node     int
	diamonds []diamond.Diamond
	terms    []T

	d       int    // current diamond
	highest []int  // its highest nodes; nil until the diamond is entered
	state   uint64 // next assignment
	acc     T      // Σ weight·belief so far
	weight  T      // weight of the assignment waiting on a child frame
}

// run carries per-run state over a shared Context.
type run[T prob.Value[T]] struct {
	c   *Context[T]
	log *slog.Logger
}

// regular computes prior(v) × Or(belief(u)·p(u,v)) over all parents.
func regular[T prob.Value[T]](lvl *level[T], v int) T {
	g := lvl.net.Graph
	if g.IsSource(v) {
		return lvl.net.Prior[v]
	}
	terms := make([]T, 0, len(g.In(v)))
	for _, u := range g.In(v) {
		pos, _ := g.EdgeIndex(u, v)
		terms = append(terms, lvl.belief[u].Mul(lvl.net.EdgeProb[pos]))
	}

	return lvl.net.Prior[v].Mul(prob.Or(terms...))
}

func newJoinTask[T prob.Value[T]](lvl *level[T], v int, at *diamond.AtNode) *joinTask[T] {
	g := lvl.net.Graph
	t := &joinTask[T]{node: v, diamonds: at.Diamonds}
	for _, id := range at.NonDiamondParents {
		u, _ := g.Index(id)
		pos, _ := g.EdgeIndex(u, v)
		t.terms = append(t.terms, lvl.belief[u].Mul(lvl.net.EdgeProb[pos]))
	}

	return t
}

// evaluate runs root to completion and returns the belief of its target.
func (r *run[T]) evaluate(ctx context.Context, root *frame[T]) (T, error) {
	var (
		zero     T
		ret      T
		returned bool
	)
	stack := []*frame[T]{root}
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		f := stack[len(stack)-1]
		if returned {
			t := f.task
			t.acc = t.acc.Add(t.weight.Mul(ret))
			t.state++
			returned = false
		}

		child, err := r.step(ctx, f)
		if err != nil {
			return zero, err
		}
		if child != nil {
			stack = append(stack, child)
			continue
		}

		ret = f.lvl.belief[f.target]
		if f.key != "" {
			r.c.cache.store(f.key, ret)
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return ret, nil
		}
		returned = true
	}
}

// step advances f until it finishes (nil, nil) or needs a child frame.
func (r *run[T]) step(ctx context.Context, f *frame[T]) (*frame[T], error) {
	lvl := f.lvl
	for f.cursor < len(f.nodes) {
		v := f.nodes[f.cursor]
		if f.task == nil {
			at, ok := lvl.dmap[lvl.net.ID(v)]
			if !ok {
				lvl.belief[v] = regular(lvl, v)
				f.cursor++
				continue
			}
			f.task = newJoinTask(lvl, v, at)
		}

		child, err := r.advance(ctx, f)
		if err != nil || child != nil {
			return child, err
		}

		lvl.belief[v] = lvl.net.Prior[v].Mul(prob.Or(f.task.terms...))
		f.task = nil
		f.cursor++
	}

	return nil, nil
}

// advance walks the assignments of f.task's diamonds. It returns a child frame
// when a conditioned belief must be computed on the stack.
func (r *run[T]) advance(ctx context.Context, f *frame[T]) (*frame[T], error) {
	var zero T
	t := f.task
	lvl := f.lvl
	g := lvl.net.Graph
	joinID := g.ID(t.node)

	for t.d < len(t.diamonds) {
		d := t.diamonds[t.d]
		if t.highest == nil {
			if len(d.HighestNodes) == 0 {
				return nil, &DiamondError{Join: joinID, Depth: f.depth, Err: &diamond.MalformedError{Join: joinID, Reason: "no highest nodes"}}
			}
			if len(d.HighestNodes) > r.c.opts.MaxConditioning {
				return nil, &DiamondError{Join: joinID, Depth: f.depth,
					Err: fmt.Errorf("%w: %d highest nodes, limit %d", ErrConditioningLimit, len(d.HighestNodes), r.c.opts.MaxConditioning)}
			}
			t.highest = make([]int, len(d.HighestNodes))
			for k, id := range d.HighestNodes {
				t.highest[k], _ = g.Index(id)
			}
			t.acc = zero
			t.state = 0
		}

		for n := uint64(1) << uint(len(t.highest)); t.state < n; t.state++ {
			w := weight(lvl, t.highest, t.state)
			if prob.IsZero(w) {
				continue
			}
			r.c.assignment()

			sub, err := condition(lvl, d, t.highest, t.state, t.node)
			if err != nil {
				return nil, fmt.Errorf("propagate: condition join %d: %w", joinID, err)
			}
			if sub == nil {
				continue
			}
			key := signature(sub, joinID)
			if v, ok := r.c.cache.lookup(key); ok {
				r.c.hit()
				t.acc = t.acc.Add(w.Mul(v))
				continue
			}
			if f.depth+1 > r.c.opts.MaxDepth {
				return nil, &DiamondError{Join: joinID, Depth: f.depth, Err: ErrRecursionLimit}
			}

			if f.depth == 0 {
				v, err := r.resolve(ctx, sub, joinID, key)
				if err != nil {
					return nil, err
				}
				t.acc = t.acc.Add(w.Mul(v))
				continue
			}

			child, err := r.newFrame(sub, joinID, key, f.depth+1)
			if err != nil {
				return nil, err
			}
			r.c.miss()
			t.weight = w
			return child, nil
		}

		r.log.Debug("diamond conditioned",
			"join", joinID, "depth", f.depth, "highest", d.HighestNodes, "contribution", t.acc.String())
		t.terms = append(t.terms, t.acc)
		t.d++
		t.highest = nil
	}

	return nil, nil
}

// resolve computes a top-level conditioned term at most once per key across
// concurrent workers.
func (r *run[T]) resolve(ctx context.Context, sub *network.Network[T], join network.NodeID, key string) (T, error) {
	v, err, _ := r.c.flight.Do(key, func() (any, error) {
		if v, ok := r.c.cache.lookup(key); ok {
			r.c.hit()
			return v, nil
		}
		fr, err := r.newFrame(sub, join, key, 1)
		if err != nil {
			return nil, err
		}
		r.c.miss()
		b, err := r.evaluate(ctx, fr)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// newFrame prepares a sub-network for evaluation: closure, re-identified
// diamonds (conditioned and other certain sources no longer correlate) and a
// fresh belief slice.
func (r *run[T]) newFrame(sub *network.Network[T], join network.NodeID, key string, depth int) (*frame[T], error) {
	clo, err := closure.Build(sub.Graph)
	if err != nil {
		return nil, fmt.Errorf("propagate: sub-network of join %d: %w", join, err)
	}
	dm, err := diamond.Identify(sub.Graph, clo, diamond.WithCertain(certainSources(sub)))
	if err != nil {
		return nil, fmt.Errorf("propagate: sub-network of join %d: %w", join, err)
	}
	target, _ := sub.Index(join)
	r.c.subnetwork(depth)

	return &frame[T]{
		lvl:    &level[T]{net: sub, clo: clo, dmap: dm, belief: make([]T, sub.Len())},
		nodes:  clo.Order(),
		target: target,
		depth:  depth,
		key:    key,
	}, nil
}

// certainSources reports sources of n whose prior is exactly 0 or 1.
func certainSources[T prob.Value[T]](n *network.Network[T]) func(network.NodeID) bool {
	return func(id network.NodeID) bool {
		i, ok := n.Index(id)
		return ok && n.IsSource(i) && prob.Certain(n.Prior[i])
	}
}
