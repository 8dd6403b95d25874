// Package montecarlo estimates node beliefs by sampling the activation model
// directly: every node and edge trial is an independent Bernoulli draw. It is
// slow and approximate, and exists to validate exact propagation.
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/infoprop/closure"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
)

// ErrNoSamples indicates a non-positive sample count.
var ErrNoSamples = errors.New("montecarlo: samples must be positive")

// Options configures Estimate.
type Options struct {
	Seed    uint64
	Workers int
}

// Option mutates Options.
type Option func(*Options)

// WithSeed fixes the seed. Results are reproducible for equal seed and workers.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers splits the samples over n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("montecarlo: WithWorkers(n<1)")
	}
	return func(o *Options) { o.Workers = n }
}

// Result holds the estimated beliefs.
type Result struct {
	Beliefs map[network.NodeID]float64
	Samples int
}

// StdErr returns the binomial standard error of the estimate for id.
func (r *Result) StdErr(id network.NodeID) float64 {
	p := r.Beliefs[id]
	return math.Sqrt(p * (1 - p) / float64(r.Samples))
}

// Estimate draws samples joint outcomes of net and returns the fraction in
// which each node is active.
//
// Complexity: O(samples · (V+E)) time, O(workers · V) memory.
func Estimate(ctx context.Context, net *network.Network[prob.Float], samples int, opts ...Option) (*Result, error) {
	if samples <= 0 {
		return nil, ErrNoSamples
	}
	o := Options{Seed: 1, Workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	clo, err := closure.Build(net.Graph)
	if err != nil {
		return nil, fmt.Errorf("montecarlo: %w", err)
	}
	order := clo.Order()

	counts := make([][]int, o.Workers)
	eg, gctx := errgroup.WithContext(ctx)
	for w := 0; w < o.Workers; w++ {
		share := samples / o.Workers
		if w < samples%o.Workers {
			share++
		}
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(o.Seed, uint64(w)))
			cnt := make([]int, net.Len())
			active := make([]bool, net.Len())
			for s := 0; s < share; s++ {
				if s%4096 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				sample(net, order, rng, active)
				for i, a := range active {
					if a {
						cnt[i]++
					}
				}
			}
			counts[w] = cnt
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Beliefs: make(map[network.NodeID]float64, net.Len()), Samples: samples}
	for i := 0; i < net.Len(); i++ {
		total := 0
		for _, cnt := range counts {
			total += cnt[i]
		}
		res.Beliefs[net.ID(i)] = float64(total) / float64(samples)
	}

	return res, nil
}

// sample draws one joint outcome into active, following order.
func sample(net *network.Network[prob.Float], order []int, rng *rand.Rand, active []bool) {
	for _, v := range order {
		active[v] = false
		if rng.Float64() >= float64(net.Prior[v]) {
			continue
		}
		if net.IsSource(v) {
			active[v] = true
			continue
		}
		for _, u := range net.In(v) {
			if !active[u] {
				continue
			}
			pos, _ := net.EdgeIndex(u, v)
			if rng.Float64() < float64(net.EdgeProb[pos]) {
				active[v] = true
				break
			}
		}
	}
}
