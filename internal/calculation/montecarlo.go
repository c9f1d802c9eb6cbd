package calculation

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultProgressInterval is how many completed trials separate progress reports
const DefaultProgressInterval = 1000

// ProgressFunc receives the number of completed trials. It is called from worker
// goroutines, possibly concurrently and not strictly in order.
type ProgressFunc func(completed, total int)

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	Iterations       int   // Defaults to domain.DefaultIterations
	Seed             int64 // 0 draws a fresh seed
	Workers          int   // Defaults to GOMAXPROCS
	ProgressInterval int   // Defaults to DefaultProgressInterval
	OnProgress       ProgressFunc
}

// MonteCarloSimulator runs stochastic trajectories of a scenario
type MonteCarloSimulator struct {
	Iterations       int
	Seed             int64
	Workers          int
	ProgressInterval int
	OnProgress       ProgressFunc
	Logger           Logger

	runTrial func(t *trajectory, seed int64) domain.SimulationTrial
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(config MonteCarloConfig) *MonteCarloSimulator {
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Iterations <= 0 {
		config.Iterations = domain.DefaultIterations
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = DefaultProgressInterval
	}

	return &MonteCarloSimulator{
		Iterations:       config.Iterations,
		Seed:             config.Seed,
		Workers:          config.Workers,
		ProgressInterval: config.ProgressInterval,
		OnProgress:       config.OnProgress,
		Logger:           NopLogger{},
		runTrial:         runTrial,
	}
}

// SetLogger sets the logger for the simulator. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	if l == nil {
		mcs.Logger = NopLogger{}
		return
	}
	mcs.Logger = l
}

// RunMonteCarlo runs a simulation with the given configuration and a no-op logger
func RunMonteCarlo(ctx context.Context, scenario *domain.ScenarioInput, config MonteCarloConfig) (*domain.AggregateResult, error) {
	return NewMonteCarloSimulator(config).Run(ctx, scenario)
}

// Run executes all trials and aggregates them.
//
// Trial i draws from its own source seeded with trialSeed(Seed, i), so a given seed yields the
// same result for any worker count. When ctx is cancelled Run stops between trials
// and returns ctx.Err(); partial results are discarded. A panicking trial is
// reported as an error rather than crashing the process.
func (mcs *MonteCarloSimulator) Run(ctx context.Context, scenario *domain.ScenarioInput) (*domain.AggregateResult, error) {
	n := mcs.Iterations
	t := newTrajectory(scenario)
	trials := make([]domain.SimulationTrial, n)

	mcs.Logger.Infof("running %d Monte Carlo trials for %q (seed %d, %d workers)", n, scenario.Name, mcs.Seed, mcs.Workers)

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mcs.Workers)

	chunk := max(1, n/(mcs.Workers*4))
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = eris.Errorf("monte carlo trial panicked: %v", r)
				}
			}()
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				trials[i] = mcs.runTrial(t, trialSeed(mcs.Seed, i))
				mcs.reportProgress(int(completed.Add(1)), n)
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		mcs.Logger.Warnf("monte carlo run for %q cancelled after %d of %d trials", scenario.Name, completed.Load(), n)
		return nil, ctxErr
	}
	if err != nil {
		mcs.Logger.Errorf("monte carlo run for %q failed: %v", scenario.Name, err)
		return nil, err
	}

	result := aggregateTrials(trials, t.ages())
	result.Scenario = scenario.Name
	result.Seed = mcs.Seed

	mcs.Logger.Infof("monte carlo run for %q finished: success rate %s", scenario.Name, result.SuccessRate.StringFixed(4))
	return result, nil
}

func (mcs *MonteCarloSimulator) reportProgress(done, total int) {
	if mcs.OnProgress == nil {
		return
	}
	if done%mcs.ProgressInterval == 0 || done == total {
		mcs.OnProgress(done, total)
	}
}

// runTrial runs one trajectory with yearly random draws.
// The trial fails the first year the balance is exhausted and net income does not
// cover expenses; failure is permanent and that year's age is the depletion age.
func runTrial(t *trajectory, seed int64) domain.SimulationTrial {
	sampler := newMarketSampler(seed, t.scenario.TSP.GrowthRate.InexactFloat64())
	state := t.start()
	trial := domain.SimulationTrial{
		Balances: make([]decimal.Decimal, 0, domain.ProjectionYears),
		Success:  true,
	}

	for year := 0; year < domain.ProjectionYears; year++ {
		yp := t.step(&state, sampler.next())
		trial.Balances = append(trial.Balances, yp.TSPBalance)
		if trial.Success && yp.IsTSPDepleted() && yp.NetIncome.LessThan(yp.Expenses) {
			trial.Success = false
			age := yp.Age
			trial.DepletionAge = &age
		}
	}
	return trial
}
