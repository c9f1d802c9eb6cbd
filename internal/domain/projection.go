package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionYears is the fixed retirement horizon
const ProjectionYears = 30

// IncomeBreakdown holds the gross income components for one year
type IncomeBreakdown struct {
	Pension           decimal.Decimal `json:"pension"`
	SocialSecurity    decimal.Decimal `json:"social_security"`
	TSPWithdrawal     decimal.Decimal `json:"tsp_withdrawal"`
	AnnuitySupplement decimal.Decimal `json:"annuity_supplement"`
	OtherIncome       decimal.Decimal `json:"other_income"`
	Total             decimal.Decimal `json:"total"`
}

// TaxBreakdown holds the taxes owed for one year
type TaxBreakdown struct {
	Federal       decimal.Decimal `json:"federal"`
	State         decimal.Decimal `json:"state"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // Total / gross income, 0.12 = 12%
	Total         decimal.Decimal `json:"total"`
}

// YearProjection represents one simulated retirement year
type YearProjection struct {
	Year                int             `json:"year"` // 0-based index from retirement
	Age                 int             `json:"age"`
	Income              IncomeBreakdown `json:"income"`
	Taxes               TaxBreakdown    `json:"taxes"`
	NetIncome           decimal.Decimal `json:"net_income"`
	Expenses            decimal.Decimal `json:"expenses"`
	Surplus             decimal.Decimal `json:"surplus"`
	TSPBalance          decimal.Decimal `json:"tsp_balance"` // End of year
	CumulativeNetIncome decimal.Decimal `json:"cumulative_net_income"`
}

// IsTSPDepleted checks if the TSP balance is exhausted at the end of the year
func (yp *YearProjection) IsTSPDepleted() bool {
	return yp.TSPBalance.LessThanOrEqual(decimal.Zero)
}

// ProjectionSummary provides the headline numbers of a deterministic projection
type ProjectionSummary struct {
	AverageNetIncome       decimal.Decimal `json:"average_net_income"`
	TotalLifetimeNetIncome decimal.Decimal `json:"total_lifetime_net_income"`
	Years                  int             `json:"years"`
	DepletionAge           *int            `json:"depletion_age,omitempty"` // First age with TSP balance <= 0
	SurvivorAnnuity        decimal.Decimal `json:"survivor_annuity"`        // Annual benefit payable to the survivor at retirement
}

// ProjectionResult is the output of the deterministic projector
type ProjectionResult struct {
	Scenario    string            `json:"scenario"`
	Projections []YearProjection  `json:"projections"`
	Summary     ProjectionSummary `json:"summary"`
}
