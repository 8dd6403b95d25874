// SPDX-License-Identifier: MIT
// Package: infoprop/propagate
//
// metrics.go — Prometheus collectors owned by a Context.

package propagate

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	subnetworks prometheus.Counter
	hits        prometheus.Counter
	misses      prometheus.Counter
	assignments prometheus.Counter
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
}

// newMetrics builds the collectors and registers them on reg when non-nil.
// Collectors already registered on reg (by an earlier Context) are reused.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		subnetworks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "subnetworks_total",
			Help:      "Conditioned sub-networks evaluated",
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "memo_hits_total",
			Help:      "Conditioned join beliefs served from the memo cache",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "memo_misses_total",
			Help:      "Conditioned join beliefs computed",
		}),
		assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "assignments_total",
			Help:      "Non-zero-weight highest-node assignments considered",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "runs_total",
			Help:      "Propagation runs by outcome",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "infoprop",
			Subsystem: "propagate",
			Name:      "run_duration_seconds",
			Help:      "Wall time of successful propagation runs",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
	if reg == nil {
		return m
	}

	m.subnetworks = register(reg, m.subnetworks)
	m.hits = register(reg, m.hits)
	m.misses = register(reg, m.misses)
	m.assignments = register(reg, m.assignments)
	m.runs = register(reg, m.runs)
	m.duration = register(reg, m.duration)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
