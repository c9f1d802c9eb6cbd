package domain

import (
	"time"

	"github.com/rpgo/fers-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// WithdrawalStrategy selects how the annual TSP withdrawal is computed
type WithdrawalStrategy string

const (
	StrategyLifeExpectancy  WithdrawalStrategy = "LIFE_EXPECTANCY"
	StrategyFixedAmount     WithdrawalStrategy = "FIXED_AMOUNT"
	StrategyFixedPercentage WithdrawalStrategy = "FIXED_PERCENTAGE"
	StrategyMixed           WithdrawalStrategy = "MIXED"
)

// Valid reports whether s is one of the supported strategies.
// The empty strategy is valid and means LIFE_EXPECTANCY.
func (s WithdrawalStrategy) Valid() bool {
	switch s {
	case "", StrategyLifeExpectancy, StrategyFixedAmount, StrategyFixedPercentage, StrategyMixed:
		return true
	}
	return false
}

// FilingStatus is the federal income tax filing status
type FilingStatus string

const (
	FilingSingle               FilingStatus = "SINGLE"
	FilingMarriedFilingJointly FilingStatus = "MARRIED_FILING_JOINTLY"
)

// Valid reports whether f has a bracket table
func (f FilingStatus) Valid() bool {
	return f == FilingSingle || f == FilingMarriedFilingJointly
}

// ScenarioInput is the fully populated record the engine runs on. It is treated as immutable for the duration of a run.
type ScenarioInput struct {
	Name           string              `yaml:"name" json:"name"`
	Personal       PersonalInfo        `yaml:"personal" json:"personal"`
	Pension        PensionInput        `yaml:"pension" json:"pension"`
	SocialSecurity SocialSecurityInput `yaml:"social_security" json:"social_security"`
	TSP            TSPInput            `yaml:"tsp" json:"tsp"`
	OtherIncome    []OtherIncome       `yaml:"other_income,omitempty" json:"other_income,omitempty"`
	Expenses       ExpenseInput        `yaml:"expenses" json:"expenses"`
	Tax            TaxInput            `yaml:"tax" json:"tax"`
}

// PersonalInfo holds the dates that drive ages and eligibility
type PersonalInfo struct {
	BirthDate      time.Time `yaml:"birth_date" json:"birth_date"`
	HireDate       time.Time `yaml:"hire_date" json:"hire_date"`
	RetirementDate time.Time `yaml:"retirement_date" json:"retirement_date"`
}

// PensionInput holds the FERS basic annuity inputs
type PensionInput struct {
	High3Salary            decimal.Decimal `yaml:"high_3_salary" json:"high_3_salary"`
	CreditableServiceYears decimal.Decimal `yaml:"creditable_service_years" json:"creditable_service_years"` // Derived from hire and retirement dates when zero
	SurvivorElection       decimal.Decimal `yaml:"survivor_election" json:"survivor_election"` // 0, 0.25 or 0.50
}

// SocialSecurityInput holds monthly benefit estimates and the claiming plan
type SocialSecurityInput struct {
	BenefitAtFRA         decimal.Decimal `yaml:"benefit_at_fra" json:"benefit_at_fra"` // Monthly at Full Retirement Age
	FullRetirementAge    int             `yaml:"full_retirement_age" json:"full_retirement_age"` // Derived from birth year when zero
	ClaimingAge          int             `yaml:"claiming_age" json:"claiming_age"`
	EstimatedBenefitAt62 decimal.Decimal `yaml:"estimated_benefit_at_62,omitempty" json:"estimated_benefit_at_62,omitempty"` // Monthly; derived from BenefitAtFRA when zero
}

// TSPInput holds balances, contributions and the withdrawal plan
type TSPInput struct {
	CurrentBalance      decimal.Decimal `yaml:"current_balance" json:"current_balance"`
	TraditionalBalance  decimal.Decimal `yaml:"traditional_balance" json:"traditional_balance"`
	RothBalance         decimal.Decimal `yaml:"roth_balance" json:"roth_balance"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	GrowthRate          decimal.Decimal `yaml:"growth_rate" json:"growth_rate"` // Nominal annual rate, 0.06 = 6%

	// BalanceAsOf dates the balances; when set and before retirement, the balance
	// is grown with contributions until the retirement date.
	BalanceAsOf *time.Time `yaml:"balance_as_of,omitempty" json:"balance_as_of,omitempty"`

	Withdrawal WithdrawalParams `yaml:"withdrawal" json:"withdrawal"`
}

// WithdrawalParams holds the strategy and its variant-specific parameters
type WithdrawalParams struct {
	Strategy    WithdrawalStrategy `yaml:"strategy" json:"strategy"`
	FixedAmount decimal.Decimal    `yaml:"fixed_amount,omitempty" json:"fixed_amount,omitempty"` // Annual, FIXED_AMOUNT and MIXED
	Percentage  decimal.Decimal    `yaml:"percentage,omitempty" json:"percentage,omitempty"`     // Whole percent (4 = 4%), FIXED_PERCENTAGE
}

// OtherIncome is an additional income stream paid inside an age window
type OtherIncome struct {
	Name         string          `yaml:"name" json:"name"`
	AnnualAmount decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	StartAge     int             `yaml:"start_age" json:"start_age"`
	EndAge       *int            `yaml:"end_age,omitempty" json:"end_age,omitempty"` // Inclusive; nil pays for life
	COLA         bool            `yaml:"cola" json:"cola"`
}

// ActiveAt reports whether the stream pays at the given age
func (o OtherIncome) ActiveAt(age int) bool {
	if age < o.StartAge {
		return false
	}
	return o.EndAge == nil || age <= *o.EndAge
}

// ExpenseInput holds the spending assumption
type ExpenseInput struct {
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"` // Annual, 0.03 = 3%
}

// TaxInput holds the simplified tax settings
type TaxInput struct {
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filing_status"`
	StateRate         decimal.Decimal `yaml:"state_rate" json:"state_rate"`                                       // Flat, 0.0307 = 3.07%
	StandardDeduction decimal.Decimal `yaml:"standard_deduction,omitempty" json:"standard_deduction,omitempty"` // Defaults by filing status when zero
}

// RetirementAge is the age attained on the retirement date
func (s *ScenarioInput) RetirementAge() int {
	return dateutil.Age(s.Personal.BirthDate, s.Personal.RetirementDate)
}

// ServiceYears returns the creditable service, or the time from hire to retirement
// (two decimals, never negative) when none was supplied.
func (s *ScenarioInput) ServiceYears() decimal.Decimal {
	if s.Pension.CreditableServiceYears.IsPositive() {
		return s.Pension.CreditableServiceYears
	}
	years := dateutil.YearsOfService(s.Personal.HireDate, s.Personal.RetirementDate)
	if years <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(years).Round(2)
}

// FullRetirementAge returns the Social Security FRA, derived from the birth year when not supplied
func (s *ScenarioInput) FullRetirementAge() int {
	if s.SocialSecurity.FullRetirementAge > 0 {
		return s.SocialSecurity.FullRetirementAge
	}
	return dateutil.FullRetirementAge(s.Personal.BirthDate)
}

// AgeAt returns the attained age at the given date
func (s *ScenarioInput) AgeAt(at time.Time) int {
	return dateutil.Age(s.Personal.BirthDate, at)
}

// StartingTSPBalance returns CurrentBalance, or Traditional+Roth when no combined balance is given
func (t TSPInput) StartingTSPBalance() decimal.Decimal {
	if t.CurrentBalance.IsPositive() {
		return t.CurrentBalance
	}
	return t.TraditionalBalance.Add(t.RothBalance)
}

// TaxableShare is the fraction of withdrawals treated as traditional (taxable) money.
// With no traditional/roth split supplied the whole balance is taxable.
func (t TSPInput) TaxableShare() decimal.Decimal {
	split := t.TraditionalBalance.Add(t.RothBalance)
	if !split.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return t.TraditionalBalance.Div(split)
}
