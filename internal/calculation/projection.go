package calculation

import (
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/rpgo/fers-projector/pkg/dateutil"
	pkgdecimal "github.com/rpgo/fers-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Projector composes the formula library into year-by-year retirement trajectories.
// It holds no per-run state, so one Projector may be shared between goroutines.
type Projector struct {
	Logger Logger
}

// NewProjector creates a projector with a no-op logger
func NewProjector() *Projector {
	return &Projector{Logger: NopLogger{}}
}

// SetLogger sets the logger for the projector. If nil is provided, a no-op logger is used.
func (p *Projector) SetLogger(l Logger) {
	if l == nil {
		p.Logger = NopLogger{}
		return
	}
	p.Logger = l
}

// ProjectDeterministic projects a scenario with a no-op logger
func ProjectDeterministic(scenario *domain.ScenarioInput) *domain.ProjectionResult {
	return NewProjector().ProjectDeterministic(scenario)
}

// ProjectDeterministic produces ProjectionYears rows using the scenario's nominal assumptions.
// Each year's TSP growth is (1 + g/12)^12 and prices rise by the expense inflation rate.
// There is no early exit: a depleted balance is reported as zero until the horizon ends.
func (p *Projector) ProjectDeterministic(scenario *domain.ScenarioInput) *domain.ProjectionResult {
	p.Logger.Debugf("projecting scenario %q over %d years", scenario.Name, domain.ProjectionYears)

	t := newTrajectory(scenario)
	market := marketYear{
		GrowthFactor: MonthlyCompoundedGrowthFactor(scenario.TSP.GrowthRate).Round(12),
		Inflation:    scenario.Expenses.InflationRate,
	}

	state := t.start()
	projections := make([]domain.YearProjection, 0, domain.ProjectionYears)
	for year := 0; year < domain.ProjectionYears; year++ {
		projections = append(projections, t.step(&state, market))
	}

	result := &domain.ProjectionResult{
		Scenario:    scenario.Name,
		Projections: projections,
		Summary:     summarize(projections),
	}
	result.Summary.SurvivorAnnuity = t.survivorAnnuity

	if result.Summary.DepletionAge != nil {
		p.Logger.Infof("scenario %q: TSP depleted at age %d", scenario.Name, *result.Summary.DepletionAge)
	}
	p.Logger.Debugf("scenario %q: average net income %s", scenario.Name, result.Summary.AverageNetIncome.StringFixed(2))
	return result
}

// summarize builds the headline numbers of a trajectory
func summarize(projections []domain.YearProjection) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{Years: len(projections)}
	if len(projections) == 0 {
		return summary
	}

	summary.TotalLifetimeNetIncome = projections[len(projections)-1].CumulativeNetIncome
	summary.AverageNetIncome = summary.TotalLifetimeNetIncome.Div(decimal.NewFromInt(int64(len(projections)))).Round(2)

	for i := range projections {
		if projections[i].IsTSPDepleted() {
			age := projections[i].Age
			summary.DepletionAge = &age
			break
		}
	}
	return summary
}

// marketYear holds one year's economic conditions
type marketYear struct {
	GrowthFactor decimal.Decimal // Multiplier applied to the post-withdrawal balance
	Inflation    decimal.Decimal // Drives pension COLA, SS COLA, indexed other income and expenses
}

// trajectory holds the values of a scenario that are fixed for a whole run
type trajectory struct {
	scenario        *domain.ScenarioInput
	basePension     decimal.Decimal // Annual, after survivor reduction
	survivorAnnuity decimal.Decimal // Annual, payable to the survivor
	ssAtClaim       decimal.Decimal // Annual, in first-year dollars
	supplement      decimal.Decimal // Annual, zero when not eligible
	startBalance    decimal.Decimal
	taxableShare    decimal.Decimal
	deduction       decimal.Decimal
	baseExpenses    decimal.Decimal // Annual
	filingStatus    domain.FilingStatus
	withdrawal      domain.WithdrawalParams
}

// yearState is the path-dependent state carried from one year to the next
type yearState struct {
	year       int
	balance    decimal.Decimal
	pension    decimal.Decimal
	priceIndex decimal.Decimal
	cumulative decimal.Decimal
}

func newTrajectory(s *domain.ScenarioInput) *trajectory {
	retirementAge := s.RetirementAge()
	service := s.ServiceYears()
	fra := s.FullRetirementAge()

	pension, survivor := SurvivorReducedPension(PensionAnnual(service, s.Pension.High3Salary, retirementAge), s.Pension.SurvivorElection)

	ss := AdjustedSocialSecurity(s.SocialSecurity.BenefitAtFRA, s.SocialSecurity.ClaimingAge, fra)

	var supplement decimal.Decimal
	if SupplementEligible(retirementAge, dateutil.MinimumRetirementAge(s.Personal.BirthDate), service) {
		at62 := s.SocialSecurity.EstimatedBenefitAt62
		if !at62.IsPositive() {
			at62 = AdjustedSocialSecurity(s.SocialSecurity.BenefitAtFRA, 62, fra)
		}
		supplement = AnnuitySupplement(service, at62)
	}

	balance := s.TSP.StartingTSPBalance()
	if asOf := s.TSP.BalanceAsOf; asOf != nil {
		months := dateutil.MonthsBetween(*asOf, s.Personal.RetirementDate)
		balance = GrowPreRetirement(balance, s.TSP.MonthlyContribution, s.TSP.GrowthRate, months)
	}

	deduction := s.Tax.StandardDeduction
	if !deduction.IsPositive() {
		deduction = StandardDeduction(s.Tax.FilingStatus)
	}

	return &trajectory{
		scenario:        s,
		basePension:     pension.Round(2),
		survivorAnnuity: survivor.Round(2),
		ssAtClaim:       annual(ss),
		supplement:      annual(supplement),
		startBalance:    balance.Round(2),
		taxableShare:    s.TSP.TaxableShare(),
		deduction:       deduction,
		baseExpenses:    pkgdecimal.NewMoneyFromDecimal(s.Expenses.MonthlyAmount).Annual().Decimal,
		filingStatus:    s.Tax.FilingStatus,
		withdrawal:      s.TSP.Withdrawal,
	}
}

// annual converts a monthly amount to a yearly one in cents
func annual(monthly decimal.Decimal) decimal.Decimal {
	return pkgdecimal.NewMoneyFromDecimal(monthly).Annual().Round().Decimal
}

// ages returns the attained age for each year of the horizon
func (t *trajectory) ages() []int {
	ages := make([]int, domain.ProjectionYears)
	for year := range ages {
		ages[year] = t.scenario.AgeAt(dateutil.AddYears(t.scenario.Personal.RetirementDate, year))
	}
	return ages
}

func (t *trajectory) start() yearState {
	return yearState{
		balance:    t.startBalance,
		pension:    t.basePension,
		priceIndex: decimal.NewFromInt(1),
	}
}

// step advances the state by one year and returns that year's projection.
// Year 0 is paid at first-year levels; COLA and inflation apply from year 1.
func (t *trajectory) step(st *yearState, m marketYear) domain.YearProjection {
	one := decimal.NewFromInt(1)
	age := t.scenario.AgeAt(dateutil.AddYears(t.scenario.Personal.RetirementDate, st.year))

	if st.year > 0 {
		st.pension = st.pension.Add(COLAAdjustedIncrement(st.pension, m.Inflation, age)).Round(2)
		st.priceIndex = st.priceIndex.Mul(one.Add(m.Inflation)).Round(10)
	}

	var ss decimal.Decimal
	if age >= t.scenario.SocialSecurity.ClaimingAge {
		ss = t.ssAtClaim.Mul(st.priceIndex).Round(2)
	}

	traditional := st.balance.Mul(t.taxableShare)
	w := TSPWithdrawal(st.balance, t.withdrawal.Strategy, age, t.withdrawal)
	w = applyRMDFloor(st.balance, traditional, age, w)
	withdrawal := w.Withdrawal.Round(2)
	st.balance = decimal.Max(decimal.Zero, st.balance.Sub(withdrawal).Mul(m.GrowthFactor)).Round(2)

	var supplement decimal.Decimal
	if age < 62 {
		supplement = t.supplement
	}

	var other decimal.Decimal
	for _, oi := range t.scenario.OtherIncome {
		if !oi.ActiveAt(age) {
			continue
		}
		amount := oi.AnnualAmount
		if oi.COLA {
			amount = amount.Mul(st.priceIndex)
		}
		other = other.Add(amount)
	}
	other = other.Round(2)

	gross := st.pension.Add(ss).Add(withdrawal).Add(supplement).Add(other)

	ordinary := st.pension.Add(withdrawal.Mul(t.taxableShare)).Add(supplement).Add(other)
	taxableSS := TaxableSocialSecurity(ss, ordinary, t.filingStatus)
	federal := FederalTax(ordinary.Add(taxableSS), t.filingStatus, t.deduction, age >= 65).Round(2)
	state := StateTax(ordinary, t.scenario.Tax.StateRate).Round(2)
	totalTax := federal.Add(state)

	effective := decimal.Zero
	if gross.IsPositive() {
		effective = totalTax.Div(gross).Round(4)
	}

	net := gross.Sub(totalTax)
	expenses := t.baseExpenses.Mul(st.priceIndex).Round(2)
	st.cumulative = st.cumulative.Add(net)

	yp := domain.YearProjection{
		Year: st.year,
		Age:  age,
		Income: domain.IncomeBreakdown{
			Pension:           st.pension,
			SocialSecurity:    ss,
			TSPWithdrawal:     withdrawal,
			AnnuitySupplement: supplement,
			OtherIncome:       other,
			Total:             gross,
		},
		Taxes: domain.TaxBreakdown{
			Federal:       federal,
			State:         state,
			EffectiveRate: effective,
			Total:         totalTax,
		},
		NetIncome:           net,
		Expenses:            expenses,
		Surplus:             net.Sub(expenses),
		TSPBalance:          st.balance,
		CumulativeNetIncome: st.cumulative,
	}
	st.year++
	return yp
}
