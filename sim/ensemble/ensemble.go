// Package ensemble runs many independent trajectories of one scenario
// concurrently and aggregates their displacement statistics.
//
// Every member owns a generator derived from the scenario seed with
// sim.PartitionedRNG, so results do not depend on the worker count or on
// goroutine scheduling.
package ensemble

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lattice-kmc/kmc-sim/sim"
	"github.com/lattice-kmc/kmc-sim/sim/scenario"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

// Config controls ensemble size and parallelism.
type Config struct {
	Members     int  // number of independent trajectories (must be > 0)
	Workers     int  // max concurrent trajectories; 0 or > Members means one per member
	TraceEvents bool // collect per-member event summaries
}

// ConfigFromSpec builds a Config from a scenario's ensemble section.
// A nil section yields a single-member ensemble.
func ConfigFromSpec(es *scenario.EnsembleSpec, traceEvents bool) Config {
	if es == nil {
		return Config{Members: 1, Workers: 1, TraceEvents: traceEvents}
	}
	return Config{Members: es.Members, Workers: es.Workers, TraceEvents: traceEvents}
}

// Member is the outcome of one trajectory.
type Member struct {
	ID      int
	Result  *scenario.Result
	Summary *trace.TraceSummary // nil unless Config.TraceEvents
}

// Report collects all members, ordered by ID, and their statistics.
type Report struct {
	Members []Member
	Stats   Statistics
}

// Run executes cfg.Members trajectories of spec. The spec is validated first.
// Cancelling ctx stops scheduling further members; Run then returns ctx.Err().
func Run(ctx context.Context, spec *scenario.ScenarioSpec, cfg Config) (*Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if cfg.Members <= 0 {
		return nil, fmt.Errorf("ensemble members must be positive, got %d: %w", cfg.Members, sim.ErrInvalidArgument)
	}
	workers := cfg.Workers
	if workers <= 0 || workers > cfg.Members {
		workers = cfg.Members
	}

	// PartitionedRNG is single-goroutine; derive every stream before fanning out.
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	streams := make([]*rand.Rand, cfg.Members)
	for i := range streams {
		streams[i] = rng.ForMember(i)
	}

	logrus.Infof("ensemble: %d members of %s, %d steps each, %d workers, seed=%d",
		cfg.Members, spec.Model, spec.Steps, workers, spec.Seed)
	start := time.Now()

	members := make([]Member, cfg.Members)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Members {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := runMember(spec, i, streams[i], cfg.TraceEvents)
			if err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
			members[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("ensemble: finished in %s", time.Since(start))
	return &Report{
		Members: members,
		Stats:   ComputeStatistics(members),
	}, nil
}

func runMember(spec *scenario.ScenarioSpec, id int, rng *rand.Rand, traceEvents bool) (Member, error) {
	var st *trace.StepTrace
	if traceEvents {
		st = trace.NewStepTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	}
	res, err := spec.Run(rng, sim.WithTrace(st))
	if err != nil {
		return Member{}, err
	}
	m := Member{ID: id, Result: res}
	if st != nil {
		m.Summary = trace.Summarize(st)
	}
	return m, nil
}
