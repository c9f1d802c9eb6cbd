package simulation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rpgo/fers-projector/internal/calculation"
	"github.com/rpgo/fers-projector/internal/domain"
)

// Room for one event per distinct percent (0-100) plus the terminal event,
// so sends never block on a caller that is not reading.
const eventBuffer = 102

// Run is the handle of one simulation.
// Events delivers progress with strictly increasing percent, then exactly one
// terminal event, then the channel is closed.
type Run struct {
	ID         string
	Iterations int

	events chan domain.SimulationEvent
	done   chan struct{}
	cancel context.CancelFunc

	mu          sync.Mutex
	lastPercent int
	result      *domain.AggregateResult
	err         error
}

func newRun(iterations int, cancel context.CancelFunc) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Iterations:  iterations,
		events:      make(chan domain.SimulationEvent, eventBuffer),
		done:        make(chan struct{}),
		cancel:      cancel,
		lastPercent: -1,
	}
}

// Events returns the event stream of the run
func (r *Run) Events() <-chan domain.SimulationEvent {
	return r.events
}

// Done is closed once the run has stopped and its terminal event was sent
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Cancel stops the run. Trials already computed are discarded.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run stops or ctx is done.
// A cancelled run returns ErrCancelled; a failed run returns an error wrapping ErrSimulationFailed.
func (r *Run) Wait(ctx context.Context) (*domain.AggregateResult, error) {
	select {
	case <-r.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.err
}

// progress relays a trial count as a percent event, dropping any report that
// does not move the percent forward. Workers may call it concurrently.
func (r *Run) progress(completed, total int) {
	if total <= 0 {
		return
	}
	percent := completed * 100 / total

	r.mu.Lock()
	defer r.mu.Unlock()

	if percent <= r.lastPercent {
		return
	}
	r.lastPercent = percent
	r.events <- domain.SimulationEvent{
		Type:      domain.EventProgress,
		RunID:     r.ID,
		Percent:   percent,
		Completed: completed,
		Total:     total,
	}
}

func (r *Run) execute(ctx context.Context, simulate SimulateFunc, scenario *domain.ScenarioInput, config calculation.MonteCarloConfig, logger calculation.Logger) {
	defer close(r.done)
	defer close(r.events)
	defer r.cancel()

	result, err := runSafely(ctx, simulate, scenario, config)

	r.mu.Lock()
	defer r.mu.Unlock()

	event := domain.SimulationEvent{RunID: r.ID, Total: r.Iterations}
	switch {
	case err == nil:
		result.RunID = r.ID
		r.result = result
		event.Type = domain.EventComplete
		event.Percent = 100
		event.Completed = r.Iterations
		event.Result = result
		logger.Infof("simulation run %s complete: success rate %s", r.ID, result.SuccessRate.StringFixed(4))
	case ctx.Err() != nil:
		r.err = ErrCancelled
		event.Type = domain.EventCancelled
		logger.Infof("simulation run %s cancelled", r.ID)
	default:
		r.err = eris.Wrapf(ErrSimulationFailed, "run %s: %v", r.ID, err)
		event.Type = domain.EventError
		event.Err = r.err
		logger.Errorf("simulation run %s failed: %v", r.ID, err)
	}
	r.events <- event
}

// runSafely turns a panic in the simulation itself into an error
func runSafely(ctx context.Context, simulate SimulateFunc, scenario *domain.ScenarioInput, config calculation.MonteCarloConfig) (result *domain.AggregateResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, eris.Errorf("simulation panicked: %v", p)
		}
	}()
	result, err = simulate(ctx, scenario, config)
	if err == nil && result == nil {
		err = eris.New("simulation returned no result")
	}
	return result, err
}
