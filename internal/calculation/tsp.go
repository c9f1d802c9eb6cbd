package calculation

import (
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// RMDStartAge is the first age at which required minimum distributions apply
const RMDStartAge = 73

const (
	lifeExpectancyMinAge = 70
	lifeExpectancyMaxAge = 100
)

// Uniform Lifetime Table distribution periods, ages 70 through 100
var lifeExpectancyFactors = [...]float64{
	27.4, 26.5, 25.6, 24.7, 23.8, // 70-74
	22.9, 22.0, 21.2, 20.3, 19.5, // 75-79
	18.7, 17.9, 17.1, 16.3, 15.5, // 80-84
	14.8, 14.1, 13.4, 12.7, 12.0, // 85-89
	11.4, 10.8, 10.2, 9.6, 9.1, // 90-94
	8.6, 8.1, 7.6, 7.1, 6.7, // 95-99
	6.3, // 100
}

// LifeExpectancyFactor returns the distribution period for an age.
// Ages outside 70-100 clamp to the nearest tabulated endpoint, so every age below 70 uses the age-70 factor.
func LifeExpectancyFactor(age int) decimal.Decimal {
	age = max(lifeExpectancyMinAge, min(age, lifeExpectancyMaxAge))
	return decimal.NewFromFloat(lifeExpectancyFactors[age-lifeExpectancyMinAge])
}

// WithdrawalResult is the outcome of one annual TSP withdrawal
type WithdrawalResult struct {
	Withdrawal decimal.Decimal
	NewBalance decimal.Decimal
}

// TSPWithdrawal computes the annual withdrawal for a strategy.
//
// FIXED_AMOUNT withdraws params.FixedAmount. FIXED_PERCENTAGE withdraws
// balance * params.Percentage / 100. MIXED withdraws a life-expectancy portion plus
// params.FixedAmount, the fixed portion capped at what the first leaves. LIFE_EXPECTANCY
// (also the fallback for an empty or unknown strategy) withdraws balance / LifeExpectancyFactor(age).
//
// The withdrawal is always within [0, balance] and NewBalance = max(0, balance - withdrawal),
// so withdrawal + NewBalance == balance for any non-negative balance.
func TSPWithdrawal(balance decimal.Decimal, strategy domain.WithdrawalStrategy, age int, params domain.WithdrawalParams) WithdrawalResult {
	if !balance.IsPositive() {
		return WithdrawalResult{Withdrawal: decimal.Zero, NewBalance: decimal.Zero}
	}

	var withdrawal decimal.Decimal
	switch strategy {
	case domain.StrategyFixedAmount:
		withdrawal = capWithdrawal(params.FixedAmount, balance)
	case domain.StrategyFixedPercentage:
		withdrawal = capWithdrawal(balance.Mul(params.Percentage).Div(decimal.NewFromInt(100)), balance)
	case domain.StrategyMixed:
		lifePortion := capWithdrawal(balance.Div(LifeExpectancyFactor(age)), balance)
		fixedPortion := capWithdrawal(params.FixedAmount, balance.Sub(lifePortion))
		withdrawal = lifePortion.Add(fixedPortion)
	default:
		withdrawal = capWithdrawal(balance.Div(LifeExpectancyFactor(age)), balance)
	}

	return WithdrawalResult{
		Withdrawal: withdrawal,
		NewBalance: decimal.Max(decimal.Zero, balance.Sub(withdrawal)),
	}
}

// capWithdrawal bounds an amount to [0, limit]
func capWithdrawal(amount, limit decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(amount, limit)
}

// RequiredMinimumDistribution calculates the RMD floor for a traditional balance.
// It is zero below RMDStartAge, otherwise balance / LifeExpectancyFactor(age).
func RequiredMinimumDistribution(balance decimal.Decimal, age int) decimal.Decimal {
	if age < RMDStartAge || !balance.IsPositive() {
		return decimal.Zero
	}
	return balance.Div(LifeExpectancyFactor(age))
}

// applyRMDFloor raises a withdrawal to the RMD on the traditional part of the balance
// when the strategy withdrew less. The raised withdrawal never exceeds the balance.
func applyRMDFloor(balance, traditional decimal.Decimal, age int, result WithdrawalResult) WithdrawalResult {
	rmd := RequiredMinimumDistribution(traditional, age)
	if result.Withdrawal.GreaterThanOrEqual(rmd) {
		return result
	}
	withdrawal := decimal.Min(rmd, balance)
	return WithdrawalResult{
		Withdrawal: withdrawal,
		NewBalance: decimal.Max(decimal.Zero, balance.Sub(withdrawal)),
	}
}

// MonthlyCompoundedGrowthFactor returns (1 + rate/12)^12 for a nominal annual rate
func MonthlyCompoundedGrowthFactor(rate decimal.Decimal) decimal.Decimal {
	monthly := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(12)))
	return monthly.Pow(decimal.NewFromInt(12))
}

// GrowPreRetirement simulates TSP growth before retirement: each month the balance
// earns rate/12 and then receives the monthly contribution.
func GrowPreRetirement(balance, monthlyContribution, rate decimal.Decimal, months int) decimal.Decimal {
	monthly := decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(12)))
	for i := 0; i < months; i++ {
		balance = balance.Mul(monthly).Add(monthlyContribution)
	}
	return balance
}
