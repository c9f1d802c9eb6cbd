// Package simulation owns the concurrency boundary around Monte Carlo runs:
// one in-flight run per Coordinator, progress and terminal events, cancellation.
package simulation

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/rpgo/fers-projector/internal/calculation"
	"github.com/rpgo/fers-projector/internal/domain"
)

var (
	// ErrCancelled is returned by Run.Wait when the run was cancelled before completing
	ErrCancelled = eris.New("simulation cancelled")
	// ErrSimulationFailed wraps every runtime failure of a run
	ErrSimulationFailed = eris.New("simulation failed")
)

// SimulateFunc runs the trials of one simulation
type SimulateFunc func(ctx context.Context, scenario *domain.ScenarioInput, config calculation.MonteCarloConfig) (*domain.AggregateResult, error)

// Options configures the runs started by a Coordinator
type Options struct {
	Seed             int64 // 0 draws a fresh seed per run
	Workers          int
	ProgressInterval int
	Logger           calculation.Logger
}

// Coordinator runs at most one simulation at a time. Starting a new run
// cancels the current one and waits for it to tear down first.
type Coordinator struct {
	mu       sync.Mutex
	current  *Run
	opts     Options
	logger   calculation.Logger
	simulate SimulateFunc
}

// NewCoordinator creates a coordinator
func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{opts: opts, logger: opts.Logger}
	if c.logger == nil {
		c.logger = calculation.NopLogger{}
	}
	c.simulate = func(ctx context.Context, scenario *domain.ScenarioInput, config calculation.MonteCarloConfig) (*domain.AggregateResult, error) {
		sim := calculation.NewMonteCarloSimulator(config)
		sim.SetLogger(c.logger)
		return sim.Run(ctx, scenario)
	}
	return c
}

// RunMonteCarlo starts a run on a fresh coordinator with default options
func RunMonteCarlo(ctx context.Context, scenario *domain.ScenarioInput, iterations int) (*Run, error) {
	return NewCoordinator(Options{}).Start(ctx, scenario, iterations)
}

// Start launches a simulation of scenario. Iterations <= 0 uses domain.DefaultIterations.
// Any run already in flight is cancelled and fully torn down before the new one starts.
func (c *Coordinator) Start(ctx context.Context, scenario *domain.ScenarioInput, iterations int) (*Run, error) {
	if scenario == nil {
		return nil, eris.New("scenario is required")
	}
	if iterations <= 0 {
		iterations = domain.DefaultIterations
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.current; prev != nil {
		c.logger.Infof("replacing simulation run %s", prev.ID)
		prev.Cancel()
		<-prev.Done()
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := newRun(iterations, cancel)
	c.current = run

	config := calculation.MonteCarloConfig{
		Iterations:       iterations,
		Seed:             c.opts.Seed,
		Workers:          c.opts.Workers,
		ProgressInterval: c.opts.ProgressInterval,
		OnProgress:       run.progress,
	}

	c.logger.Infof("starting simulation run %s: %d trials of %q", run.ID, iterations, scenario.Name)
	go run.execute(runCtx, c.simulate, scenario, config, c.logger)

	return run, nil
}

// Cancel cancels the current run, if any, and waits for it to stop
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}
	c.current.Cancel()
	<-c.current.Done()
	c.current = nil
}
