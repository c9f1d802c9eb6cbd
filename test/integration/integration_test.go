package integration

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/fers-projector/internal/calculation"
	"github.com/rpgo/fers-projector/internal/config"
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/rpgo/fers-projector/internal/output"
	"github.com/rpgo/fers-projector/internal/simulation"
)

const exampleScenario = "../../testdata/example_scenario.yaml"

func loadExample(t *testing.T) *domain.ScenarioInput {
	t.Helper()
	scenario, err := config.NewInputParser().LoadFromFile(exampleScenario)
	require.NoError(t, err)
	return scenario
}

func TestProjectionEndToEnd(t *testing.T) {
	scenario := loadExample(t)
	result := calculation.ProjectDeterministic(scenario)

	require.Len(t, result.Projections, domain.ProjectionYears)
	assert.Equal(t, domain.ProjectionYears, result.Summary.Years)

	first := result.Projections[0]
	assert.Equal(t, 62, first.Age)
	assert.True(t, first.Income.Pension.GreaterThan(decimal.Zero))
	assert.True(t, first.Income.TSPWithdrawal.GreaterThan(decimal.Zero))
	// Social Security is claimed at 67.
	assert.True(t, first.Income.SocialSecurity.IsZero())
	assert.True(t, result.Projections[5].Income.SocialSecurity.GreaterThan(decimal.Zero))

	// Consulting income ends after age 70.
	assert.True(t, result.Projections[8].Income.OtherIncome.GreaterThan(decimal.Zero))
	assert.True(t, result.Projections[9].Income.OtherIncome.IsZero())

	for i, p := range result.Projections {
		assert.Equal(t, i, p.Year)
		assert.True(t, p.NetIncome.Equal(p.Income.Total.Sub(p.Taxes.Total)), "year %d", i)
		assert.False(t, p.TSPBalance.IsNegative(), "year %d", i)
	}
}

func TestSimulationEndToEnd(t *testing.T) {
	scenario := loadExample(t)

	coord := simulation.NewCoordinator(simulation.Options{Seed: 2024, Workers: 4, ProgressInterval: 100})
	run, err := coord.Start(context.Background(), scenario, 1000)
	require.NoError(t, err)

	var last domain.SimulationEvent
	for ev := range run.Events() {
		last = ev
	}
	assert.Equal(t, domain.EventComplete, last.Type)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	result, err := run.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1000, result.Iterations)
	assert.True(t, result.SuccessRate.Add(result.Shortfall.Probability).Equal(decimal.NewFromInt(1)))

	p10, ok := result.Band(10)
	require.True(t, ok)
	p90, ok := result.Band(90)
	require.True(t, ok)
	for i := range result.Ages {
		assert.True(t, p10.Values[i].LessThanOrEqual(p90.Values[i]), "age %d", result.Ages[i])
	}
}

func TestReportsForEveryFormat(t *testing.T) {
	scenario := loadExample(t)
	projection := calculation.ProjectDeterministic(scenario)

	aggregate, err := calculation.RunMonteCarlo(context.Background(), scenario, calculation.MonteCarloConfig{Iterations: 200, Seed: 1})
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.GenerateReport(&buf, output.ProjectionReport(projection), name))
			assert.NotEmpty(t, buf.Bytes())

			buf.Reset()
			require.NoError(t, output.GenerateReport(&buf, output.SimulationReport(aggregate), name))
			assert.NotEmpty(t, buf.Bytes())
		})
	}
}
