package config

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/rpgo/fers-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read file %s", filename)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioInput, error) {
	var scenario domain.ScenarioInput
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, eris.Wrap(err, "failed to parse YAML")
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, eris.Wrap(err, "scenario validation failed")
	}

	return &scenario, nil
}

// ValidateScenario checks the field constraints the projector and simulator assume
func ValidateScenario(s *domain.ScenarioInput) error {
	if err := validatePersonal(&s.Personal); err != nil {
		return eris.Wrap(err, "personal")
	}
	if err := validatePension(&s.Pension); err != nil {
		return eris.Wrap(err, "pension")
	}
	if err := validateSocialSecurity(&s.SocialSecurity, s.Personal.BirthDate); err != nil {
		return eris.Wrap(err, "social_security")
	}
	if err := validateTSP(&s.TSP); err != nil {
		return eris.Wrap(err, "tsp")
	}
	for i, oi := range s.OtherIncome {
		if err := validateOtherIncome(oi); err != nil {
			return eris.Wrapf(err, "other_income[%d]", i)
		}
	}
	if s.Expenses.MonthlyAmount.IsNegative() {
		return eris.New("expenses: monthly amount cannot be negative")
	}
	if s.Expenses.InflationRate.IsNegative() || s.Expenses.InflationRate.GreaterThan(decimal.NewFromInt(1)) {
		return eris.New("expenses: inflation rate must be between 0 and 1")
	}
	if err := validateTax(&s.Tax); err != nil {
		return eris.Wrap(err, "tax")
	}
	return nil
}

func validatePersonal(p *domain.PersonalInfo) error {
	if p.BirthDate.IsZero() {
		return eris.New("birth date is required")
	}
	if p.HireDate.IsZero() {
		return eris.New("hire date is required")
	}
	if p.RetirementDate.IsZero() {
		return eris.New("retirement date is required")
	}
	if !p.HireDate.After(p.BirthDate) {
		return eris.New("hire date must be after birth date")
	}
	if p.RetirementDate.Before(p.HireDate) {
		return eris.New("retirement date cannot be before hire date")
	}
	return nil
}

func validatePension(p *domain.PensionInput) error {
	if p.High3Salary.IsNegative() {
		return eris.New("high 3 salary cannot be negative")
	}
	if p.CreditableServiceYears.IsNegative() {
		return eris.New("creditable service years cannot be negative")
	}
	election := p.SurvivorElection
	if !election.IsZero() && !election.Equal(decimal.NewFromFloat(0.25)) && !election.Equal(decimal.NewFromFloat(0.5)) {
		return eris.Errorf("survivor election must be 0, 0.25 or 0.50, got %s", election)
	}
	return nil
}

func validateSocialSecurity(ss *domain.SocialSecurityInput, birthDate time.Time) error {
	if ss.BenefitAtFRA.IsNegative() {
		return eris.New("benefit at FRA cannot be negative")
	}
	if ss.EstimatedBenefitAt62.IsNegative() {
		return eris.New("estimated benefit at 62 cannot be negative")
	}
	if ss.FullRetirementAge != 0 {
		if ss.FullRetirementAge < 65 || ss.FullRetirementAge > 67 {
			return eris.Errorf("full retirement age must be between 65 and 67, got %d", ss.FullRetirementAge)
		}
		if want := dateutil.FullRetirementAge(birthDate); ss.FullRetirementAge != want {
			return eris.Errorf("full retirement age for birth year %d is %d, got %d", birthDate.Year(), want, ss.FullRetirementAge)
		}
	}
	if ss.ClaimingAge < 62 || ss.ClaimingAge > 70 {
		return eris.Errorf("claiming age must be between 62 and 70, got %d", ss.ClaimingAge)
	}
	return nil
}

func validateTSP(t *domain.TSPInput) error {
	if t.CurrentBalance.IsNegative() || t.TraditionalBalance.IsNegative() || t.RothBalance.IsNegative() {
		return eris.New("balances cannot be negative")
	}
	if t.MonthlyContribution.IsNegative() {
		return eris.New("monthly contribution cannot be negative")
	}
	if t.GrowthRate.IsNegative() || t.GrowthRate.GreaterThan(decimal.NewFromInt(1)) {
		return eris.New("growth rate must be between 0 and 1")
	}
	if !t.Withdrawal.Strategy.Valid() {
		return eris.Errorf("unknown withdrawal strategy %q", t.Withdrawal.Strategy)
	}
	if t.Withdrawal.FixedAmount.IsNegative() {
		return eris.New("withdrawal fixed amount cannot be negative")
	}
	if t.Withdrawal.Percentage.IsNegative() || t.Withdrawal.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return eris.New("withdrawal percentage must be between 0 and 100")
	}
	return nil
}

func validateOtherIncome(oi domain.OtherIncome) error {
	if oi.AnnualAmount.IsNegative() {
		return eris.Errorf("%s: annual amount cannot be negative", oi.Name)
	}
	if oi.StartAge < 0 {
		return eris.Errorf("%s: start age cannot be negative", oi.Name)
	}
	if oi.EndAge != nil && *oi.EndAge < oi.StartAge {
		return eris.Errorf("%s: end age %d is before start age %d", oi.Name, *oi.EndAge, oi.StartAge)
	}
	return nil
}

func validateTax(t *domain.TaxInput) error {
	if !t.FilingStatus.Valid() {
		return eris.Errorf("unsupported filing status %q", t.FilingStatus)
	}
	if t.StateRate.IsNegative() || t.StateRate.GreaterThan(decimal.NewFromInt(1)) {
		return eris.New("state rate must be between 0 and 1")
	}
	if t.StandardDeduction.IsNegative() {
		return eris.New("standard deduction cannot be negative")
	}
	return nil
}

// CreateExampleScenario creates a complete, valid example scenario
func (ip *InputParser) CreateExampleScenario() *domain.ScenarioInput {
	end := 70
	return &domain.ScenarioInput{
		Name: "Retire at 62",
		Personal: domain.PersonalInfo{
			BirthDate:      time.Date(1963, 6, 15, 0, 0, 0, 0, time.UTC),
			HireDate:       time.Date(1995, 7, 1, 0, 0, 0, 0, time.UTC),
			RetirementDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		Pension: domain.PensionInput{
			High3Salary:            decimal.NewFromInt(110000),
			CreditableServiceYears: decimal.NewFromInt(30),
			SurvivorElection:       decimal.NewFromFloat(0.5),
		},
		SocialSecurity: domain.SocialSecurityInput{
			BenefitAtFRA:      decimal.NewFromInt(2800),
			FullRetirementAge: 67,
			ClaimingAge:       67,
		},
		TSP: domain.TSPInput{
			TraditionalBalance:  decimal.NewFromInt(650000),
			RothBalance:         decimal.NewFromInt(150000),
			MonthlyContribution: decimal.Zero,
			GrowthRate:          decimal.NewFromFloat(0.06),
			Withdrawal: domain.WithdrawalParams{
				Strategy:   domain.StrategyFixedPercentage,
				Percentage: decimal.NewFromInt(4),
			},
		},
		OtherIncome: []domain.OtherIncome{
			{Name: "Part-time consulting", AnnualAmount: decimal.NewFromInt(20000), StartAge: 62, EndAge: &end},
		},
		Expenses: domain.ExpenseInput{
			MonthlyAmount: decimal.NewFromInt(6500),
			InflationRate: decimal.NewFromFloat(0.025),
		},
		Tax: domain.TaxInput{
			FilingStatus: domain.FilingMarriedFilingJointly,
			StateRate:    decimal.NewFromFloat(0.0307),
		},
	}
}
