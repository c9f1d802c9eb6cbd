package calculation

import (
	"slices"

	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// percentileIndex is the nearest-rank index floor(p/100 * n), clamped to the last element
func percentileIndex(percentile, n int) int {
	idx := percentile * n / 100
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// aggregateTrials builds the statistical summary of a set of completed trials.
// ages is the horizon's age axis; trial balances are indexed the same way.
func aggregateTrials(trials []domain.SimulationTrial, ages []int) *domain.AggregateResult {
	n := len(trials)
	result := &domain.AggregateResult{
		Iterations: n,
		Ages:       ages,
	}
	if n == 0 {
		return result
	}

	total := decimal.NewFromInt(int64(n))
	successes := 0
	for i := range trials {
		if trials[i].Success {
			successes++
		}
	}
	result.SuccessRate = decimal.NewFromInt(int64(successes)).Div(total).Round(4)

	bands := make([]domain.PercentileBand, len(domain.Percentiles))
	for i, p := range domain.Percentiles {
		bands[i] = domain.PercentileBand{Percentile: p, Values: make([]decimal.Decimal, len(ages))}
	}

	column := make([]decimal.Decimal, n)
	for year := range ages {
		for i := range trials {
			column[i] = trials[i].Balances[year]
		}
		slices.SortFunc(column, func(a, b decimal.Decimal) int { return a.Cmp(b) })
		for i, p := range domain.Percentiles {
			bands[i].Values[year] = column[percentileIndex(p, n)]
		}
	}
	result.PercentileBands = bands
	if median, ok := result.Band(50); ok && len(median.Values) > 0 {
		result.MedianFinalBalance = median.Values[len(median.Values)-1]
	}
	result.Shortfall = shortfall(trials, ages)

	return result
}

// shortfall reports the failed-trial fraction and their mean depletion age.
// A failed trial without a recorded depletion age counts at the horizon's final age.
func shortfall(trials []domain.SimulationTrial, ages []int) domain.ShortfallAnalysis {
	finalAge := 0
	if len(ages) > 0 {
		finalAge = ages[len(ages)-1]
	}

	failed := 0
	ageSum := 0
	for i := range trials {
		if trials[i].Success {
			continue
		}
		failed++
		if trials[i].DepletionAge != nil {
			ageSum += *trials[i].DepletionAge
		} else {
			ageSum += finalAge
		}
	}

	analysis := domain.ShortfallAnalysis{FailedTrials: failed}
	if len(trials) > 0 {
		analysis.Probability = decimal.NewFromInt(int64(failed)).Div(decimal.NewFromInt(int64(len(trials)))).Round(4)
	}
	if failed > 0 {
		analysis.MeanDepletionAge = decimal.NewFromInt(int64(ageSum)).Div(decimal.NewFromInt(int64(failed))).Round(2)
	}
	return analysis
}
