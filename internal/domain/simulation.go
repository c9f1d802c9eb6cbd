package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultIterations is the number of Monte Carlo trials when none is requested
const DefaultIterations = 10000

// Percentiles tracked per age in an AggregateResult
var Percentiles = []int{10, 25, 50, 75, 90}

// SimulationTrial is one 30-year trajectory under one random draw path
type SimulationTrial struct {
	Balances     []decimal.Decimal `json:"balances"` // End-of-year TSP balance per year
	Success      bool              `json:"success"`
	DepletionAge *int              `json:"depletion_age,omitempty"`
}

// PercentileBand is the per-age value of one percentile across all trials
type PercentileBand struct {
	Percentile int               `json:"percentile"`
	Values     []decimal.Decimal `json:"values"` // Indexed like AggregateResult.Ages
}

// ShortfallAnalysis summarizes the failed trials
type ShortfallAnalysis struct {
	Probability      decimal.Decimal `json:"probability"`
	FailedTrials     int             `json:"failed_trials"`
	MeanDepletionAge decimal.Decimal `json:"mean_depletion_age"` // Zero when no trial failed
}

// AggregateResult is the statistical summary of a Monte Carlo run.
// It is rebuilt from scratch on every run.
type AggregateResult struct {
	RunID              string            `json:"run_id,omitempty"`
	Scenario           string            `json:"scenario"`
	Iterations         int               `json:"iterations"`
	Seed               int64             `json:"seed"`
	SuccessRate        decimal.Decimal   `json:"success_rate"` // Fraction, 0.95 = 95%
	Ages               []int             `json:"ages"`
	PercentileBands    []PercentileBand  `json:"percentile_bands"`
	Shortfall          ShortfallAnalysis `json:"shortfall"`
	MedianFinalBalance decimal.Decimal   `json:"median_final_balance"`
}

// Band returns the band for the given percentile
func (ar *AggregateResult) Band(percentile int) (PercentileBand, bool) {
	for _, b := range ar.PercentileBands {
		if b.Percentile == percentile {
			return b, true
		}
	}
	return PercentileBand{}, false
}
