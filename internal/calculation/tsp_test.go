package calculation

import (
	"testing"

	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLifeExpectancyFactor(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		expected float64
	}{
		{"table start", 70, 27.4},
		{"age 73", 73, 24.7},
		{"age 75", 75, 22.9},
		{"age 90", 90, 11.4},
		{"table end", 100, 6.3},
		{"below table uses age 70", 62, 27.4},
		{"just below table uses age 70", 69, 27.4},
		{"far below table uses age 70", 0, 27.4},
		{"above table uses age 100", 105, 6.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LifeExpectancyFactor(tt.age)
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.expected)), "Expected %v, got %s", tt.expected, got)
		})
	}
}

func TestTSPWithdrawalLifeExpectancyAt75(t *testing.T) {
	result := TSPWithdrawal(decimal.NewFromInt(100000), domain.StrategyLifeExpectancy, 75, domain.WithdrawalParams{})
	assert.True(t, result.Withdrawal.Round(2).Equal(decimal.NewFromFloat(4366.81)), "withdrawal %s", result.Withdrawal)
	assert.True(t, result.NewBalance.Round(2).Equal(decimal.NewFromFloat(95633.19)), "new balance %s", result.NewBalance)
}

func TestTSPWithdrawalStrategies(t *testing.T) {
	tests := []struct {
		name               string
		balance            decimal.Decimal
		strategy           domain.WithdrawalStrategy
		age                int
		params             domain.WithdrawalParams
		expectedWithdrawal decimal.Decimal
	}{
		{
			name:               "fixed amount",
			balance:            decimal.NewFromInt(500000),
			strategy:           domain.StrategyFixedAmount,
			age:                60,
			params:             domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(24000)},
			expectedWithdrawal: decimal.NewFromInt(24000),
		},
		{
			name:               "fixed amount capped at balance",
			balance:            decimal.NewFromInt(30000),
			strategy:           domain.StrategyFixedAmount,
			age:                60,
			params:             domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(50000)},
			expectedWithdrawal: decimal.NewFromInt(30000),
		},
		{
			name:               "four percent",
			balance:            decimal.NewFromInt(500000),
			strategy:           domain.StrategyFixedPercentage,
			age:                62,
			params:             domain.WithdrawalParams{Percentage: decimal.NewFromInt(4)},
			expectedWithdrawal: decimal.NewFromInt(20000),
		},
		{
			name:               "percentage above 100 capped at balance",
			balance:            decimal.NewFromInt(1000),
			strategy:           domain.StrategyFixedPercentage,
			age:                62,
			params:             domain.WithdrawalParams{Percentage: decimal.NewFromInt(150)},
			expectedWithdrawal: decimal.NewFromInt(1000),
		},
		{
			name:               "mixed sums both portions",
			balance:            decimal.NewFromInt(274000),
			strategy:           domain.StrategyMixed,
			age:                70,
			params:             domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(10000)},
			expectedWithdrawal: decimal.NewFromInt(20000), // 274000/27.4 + 10000
		},
		{
			name:               "mixed fixed portion capped by remainder",
			balance:            decimal.NewFromInt(10000),
			strategy:           domain.StrategyMixed,
			age:                100,
			params:             domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(50000)},
			expectedWithdrawal: decimal.NewFromInt(10000),
		},
		{
			name:               "empty strategy defaults to life expectancy",
			balance:            decimal.NewFromInt(274000),
			strategy:           "",
			age:                70,
			expectedWithdrawal: decimal.NewFromInt(10000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TSPWithdrawal(tt.balance, tt.strategy, tt.age, tt.params)
			assert.True(t, result.Withdrawal.Round(6).Equal(tt.expectedWithdrawal), "Expected %s, got %s", tt.expectedWithdrawal, result.Withdrawal)
			assert.True(t, result.NewBalance.Equal(tt.balance.Sub(result.Withdrawal)))
		})
	}
}

func TestTSPWithdrawalConservation(t *testing.T) {
	strategies := []domain.WithdrawalStrategy{
		domain.StrategyLifeExpectancy,
		domain.StrategyFixedAmount,
		domain.StrategyFixedPercentage,
		domain.StrategyMixed,
	}
	params := []domain.WithdrawalParams{
		{},
		{FixedAmount: decimal.NewFromInt(1000), Percentage: decimal.NewFromInt(4)},
		{FixedAmount: decimal.NewFromInt(250000), Percentage: decimal.NewFromInt(100)},
	}
	balances := []decimal.Decimal{
		decimal.NewFromFloat(0.01),
		decimal.NewFromInt(5000),
		decimal.NewFromFloat(123456.78),
		decimal.NewFromInt(2000000),
	}

	for _, strategy := range strategies {
		for _, p := range params {
			for _, balance := range balances {
				for _, age := range []int{55, 70, 85, 100, 104} {
					result := TSPWithdrawal(balance, strategy, age, p)
					assert.True(t, result.Withdrawal.Add(result.NewBalance).Equal(balance),
						"%s age %d balance %s: %s + %s", strategy, age, balance, result.Withdrawal, result.NewBalance)
					assert.True(t, result.Withdrawal.LessThanOrEqual(balance))
					assert.False(t, result.Withdrawal.IsNegative())
				}
			}
		}
	}
}

func TestTSPWithdrawalEmptyBalance(t *testing.T) {
	result := TSPWithdrawal(decimal.Zero, domain.StrategyFixedAmount, 70, domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(1000)})
	assert.True(t, result.Withdrawal.IsZero())
	assert.True(t, result.NewBalance.IsZero())
}

func TestRequiredMinimumDistribution(t *testing.T) {
	balance := decimal.NewFromInt(247000)
	assert.True(t, RequiredMinimumDistribution(balance, 72).IsZero())
	assert.True(t, RequiredMinimumDistribution(balance, 60).IsZero())
	assert.True(t, RequiredMinimumDistribution(balance, 73).Equal(decimal.NewFromInt(10000)))
	assert.True(t, RequiredMinimumDistribution(decimal.Zero, 80).IsZero())
}

func TestApplyRMDFloor(t *testing.T) {
	balance := decimal.NewFromInt(187000)
	fixed := TSPWithdrawal(balance, domain.StrategyFixedAmount, 80, domain.WithdrawalParams{FixedAmount: decimal.NewFromInt(1000)})

	raised := applyRMDFloor(balance, balance, 80, fixed)
	assert.True(t, raised.Withdrawal.Equal(decimal.NewFromInt(10000)), "got %s", raised.Withdrawal) // 187000 / 18.7
	assert.True(t, raised.NewBalance.Equal(decimal.NewFromInt(177000)))

	// Roth money is not subject to the floor
	raised = applyRMDFloor(balance, decimal.Zero, 80, fixed)
	assert.True(t, raised.Withdrawal.Equal(decimal.NewFromInt(1000)))

	// No floor before 73
	early := applyRMDFloor(balance, balance, 72, fixed)
	assert.True(t, early.Withdrawal.Equal(decimal.NewFromInt(1000)))
}

func TestGrowPreRetirement(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	assert.True(t, GrowPreRetirement(balance, decimal.NewFromInt(500), decimal.NewFromFloat(0.06), 0).Equal(balance))

	noGrowth := GrowPreRetirement(balance, decimal.NewFromInt(500), decimal.Zero, 12)
	assert.True(t, noGrowth.Equal(decimal.NewFromInt(106000)), "got %s", noGrowth)

	// 100000 * 1.005^12 with no contributions
	grown := GrowPreRetirement(balance, decimal.Zero, decimal.NewFromFloat(0.06), 12)
	assert.True(t, grown.Round(2).Equal(decimal.NewFromFloat(106167.78)), "got %s", grown)
}

func TestMonthlyCompoundedGrowthFactor(t *testing.T) {
	factor := MonthlyCompoundedGrowthFactor(decimal.NewFromFloat(0.06))
	assert.True(t, factor.Round(8).Equal(decimal.NewFromFloat(1.06167781)), "got %s", factor)
	assert.True(t, MonthlyCompoundedGrowthFactor(decimal.Zero).Equal(decimal.NewFromInt(1)))
}
