package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/infoprop/cutset"
	"github.com/katalvlaran/infoprop/diamond"
	"github.com/katalvlaran/infoprop/montecarlo"
	"github.com/katalvlaran/infoprop/netio"
	"github.com/katalvlaran/infoprop/network"
	"github.com/katalvlaran/infoprop/prob"
	"github.com/katalvlaran/infoprop/propagate"
)

// errNoSink is returned when --sink is absent and the network has several sinks.
var errNoSink = errors.New("network has several sinks; pass --sink")

type statsDoc struct {
	Subnetworks int64 `yaml:"subnetworks" json:"subnetworks"`
	CacheHits   int64 `yaml:"cache_hits" json:"cache_hits"`
	CacheMisses int64 `yaml:"cache_misses" json:"cache_misses"`
	Assignments int64 `yaml:"assignments" json:"assignments"`
	MaxDepth    int   `yaml:"max_depth" json:"max_depth"`
	MemoEntries int   `yaml:"memo_entries" json:"memo_entries"`
}

type propagateReport struct {
	RunID    string            `yaml:"run_id" json:"run_id"`
	Duration string            `yaml:"duration" json:"duration"`
	Beliefs  []netio.BeliefDoc `yaml:"beliefs" json:"beliefs"`
	Cutset   *netio.CutsetDoc  `yaml:"cutset,omitempty" json:"cutset,omitempty"`
	Stats    statsDoc          `yaml:"stats" json:"stats"`
}

func newPropagateCmd(a *app) *cobra.Command {
	var (
		workers         int
		maxDepth        int
		maxConditioning int
		noDiamonds      bool
		sink            int64
		metricsFile     string
	)

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Compute activation beliefs for every node",
		Example: `  infoprop propagate -i net.csv
  infoprop propagate -i net.yaml --workers 8 --sink 42 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("workers") {
				a.cfg.Propagation.Workers = workers
			}
			if flags.Changed("max-depth") {
				a.cfg.Propagation.MaxDepth = maxDepth
			}
			if flags.Changed("max-conditioning") {
				a.cfg.Propagation.MaxConditioning = maxConditioning
			}
			if noDiamonds {
				off := false
				a.cfg.Propagation.Diamonds = &off
			}
			if flags.Changed("metrics-file") {
				a.cfg.Output.MetricsFile = metricsFile
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			net, err := a.loadNetwork()
			if err != nil {
				return err
			}

			opts := a.cfg.PropagateOptions()
			if flags.Changed("sink") {
				opts = append(opts, propagate.WithCutset(network.NodeID(sink)))
			}
			reg := prometheus.NewRegistry()
			if a.cfg.Output.MetricsFile != "" {
				opts = append(opts, propagate.WithMetrics(reg))
			}

			start := time.Now()
			res, err := propagate.Run(cmd.Context(), net, opts...)
			if err != nil {
				return err
			}
			if a.cfg.Output.MetricsFile != "" {
				if err := prometheus.WriteToTextfile(a.cfg.Output.MetricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}

			return a.emit(propagateReport{
				RunID:    res.RunID,
				Duration: time.Since(start).String(),
				Beliefs:  netio.ExportBeliefs(res.Beliefs),
				Cutset:   netio.ExportCutset(res.Cutset),
				Stats: statsDoc{
					Subnetworks: res.Stats.Subnetworks,
					CacheHits:   res.Stats.CacheHits,
					CacheMisses: res.Stats.CacheMisses,
					Assignments: res.Stats.Assignments,
					MaxDepth:    res.Stats.MaxDepth,
					MemoEntries: res.Stats.MemoEntries,
				},
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&workers, "workers", 1, "goroutines per generation")
	f.IntVar(&maxDepth, "max-depth", propagate.DefaultMaxDepth, "maximum nested conditioning depth")
	f.IntVar(&maxConditioning, "max-conditioning", propagate.DefaultMaxConditioning, "maximum highest nodes per diamond")
	f.BoolVar(&noDiamonds, "no-diamonds", false, "treat all parents as independent")
	f.Int64Var(&sink, "sink", 0, "also compute a cutset for this sink")
	f.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

func newDiamondsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diamonds",
		Short: "List the diamond structure at every join",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			net, err := a.loadNetwork()
			if err != nil {
				return err
			}
			_, m, err := analyze(net)
			if err != nil {
				return err
			}

			return a.emit(netio.ExportDiamonds(m))
		},
	}
}

func newCutsetCmd(a *app) *cobra.Command {
	var sink int64

	cmd := &cobra.Command{
		Use:   "cutset",
		Short: "Find a small node set whose removal breaks every diamond",
		Long: `cutset picks, greedily, interior nodes whose removal leaves every
diamond pattern (fork, join) with fewer than two vertex-disjoint paths.
Sources and the sink are never chosen. When some pattern cannot be broken the
result is reported with feasible: false and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			net, err := a.loadNetwork()
			if err != nil {
				return err
			}
			c, m, err := analyze(net)
			if err != nil {
				return err
			}

			target := network.NodeID(sink)
			if !cmd.Flags().Changed("sink") {
				sinks := net.SinkIDs()
				if len(sinks) != 1 {
					return errNoSink
				}
				target = sinks[0]
			}
			res, err := cutset.Minimize(net.Graph, c, m, target)
			if err != nil {
				return err
			}
			if err := a.emit(netio.ExportCutset(res)); err != nil {
				return err
			}

			return res.Err()
		},
	}
	cmd.Flags().Int64Var(&sink, "sink", 0, "sink node (default: the only sink)")

	return cmd
}

type validateReport struct {
	Nodes        int    `yaml:"nodes" json:"nodes"`
	Edges        int    `yaml:"edges" json:"edges"`
	Sources      int    `yaml:"sources" json:"sources"`
	Sinks        int    `yaml:"sinks" json:"sinks"`
	Generations  int    `yaml:"generations" json:"generations"`
	Joins        int    `yaml:"joins" json:"joins"`
	Diamonds     int    `yaml:"diamonds" json:"diamonds"`
	MaxHighest   int    `yaml:"max_highest" json:"max_highest"`
	Assignments  uint64 `yaml:"assignments" json:"assignments"`
	Conditioning bool   `yaml:"within_conditioning_limit" json:"within_conditioning_limit"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a network and summarise its diamond structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			net, err := a.loadNetwork()
			if err != nil {
				return err
			}
			c, m, err := analyze(net)
			if err != nil {
				return err
			}
			for j, at := range m {
				for _, d := range at.Diamonds {
					if err := diamond.Validate(c, j, d); err != nil {
						return err
					}
				}
			}

			s := diamond.Summarize(m)
			return a.emit(validateReport{
				Nodes:        net.Len(),
				Edges:        net.EdgeCount(),
				Sources:      len(net.Sources()),
				Sinks:        len(net.Sinks()),
				Generations:  len(c.Generations()),
				Joins:        s.Joins,
				Diamonds:     s.Diamonds,
				MaxHighest:   s.MaxHighest,
				Assignments:  s.Assignments,
				Conditioning: s.MaxHighest <= a.cfg.Propagation.MaxConditioning,
			})
		},
	}
}

type monteCarloReport struct {
	Samples int               `yaml:"samples" json:"samples"`
	Seed    uint64            `yaml:"seed" json:"seed"`
	Beliefs []netio.BeliefDoc `yaml:"beliefs" json:"beliefs"`
}

func newMonteCarloCmd(a *app) *cobra.Command {
	var (
		samples int
		seed    uint64
		workers int
	)

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Estimate beliefs by forward sampling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("samples") {
				a.cfg.MonteCarlo.Samples = samples
			}
			if flags.Changed("seed") {
				a.cfg.MonteCarlo.Seed = seed
			}
			if flags.Changed("workers") {
				a.cfg.MonteCarlo.Workers = workers
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			net, err := a.loadNetwork()
			if err != nil {
				return err
			}
			mc := a.cfg.MonteCarlo
			res, err := montecarlo.Estimate(cmd.Context(), net, mc.Samples,
				montecarlo.WithSeed(mc.Seed), montecarlo.WithWorkers(mc.Workers))
			if err != nil {
				return err
			}

			beliefs := make(map[network.NodeID]prob.Float, len(res.Beliefs))
			for id, p := range res.Beliefs {
				beliefs[id] = prob.Float(p)
			}

			return a.emit(monteCarloReport{Samples: res.Samples, Seed: mc.Seed, Beliefs: netio.ExportBeliefs(beliefs)})
		},
	}

	f := cmd.Flags()
	f.IntVar(&samples, "samples", 100_000, "number of samples")
	f.Uint64Var(&seed, "seed", 0, "PCG seed")
	f.IntVar(&workers, "workers", 1, "sampling goroutines")

	return cmd
}
