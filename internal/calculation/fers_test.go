package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDetermineMultiplier(t *testing.T) {
	tests := []struct {
		name               string
		retirementAge      int
		serviceYears       decimal.Decimal
		expectedMultiplier decimal.Decimal
	}{
		{
			name:               "Standard multiplier at 60",
			retirementAge:      60,
			serviceYears:       decimal.NewFromFloat(30.0),
			expectedMultiplier: decimal.NewFromFloat(0.01),
		},
		{
			name:               "Enhanced multiplier at 62 with 20+ years",
			retirementAge:      62,
			serviceYears:       decimal.NewFromFloat(30.0),
			expectedMultiplier: decimal.NewFromFloat(0.011),
		},
		{
			name:               "Enhanced multiplier at exactly 20 years",
			retirementAge:      65,
			serviceYears:       decimal.NewFromInt(20),
			expectedMultiplier: decimal.NewFromFloat(0.011),
		},
		{
			name:               "Standard multiplier at 62 with less than 20 years",
			retirementAge:      62,
			serviceYears:       decimal.NewFromFloat(19.99),
			expectedMultiplier: decimal.NewFromFloat(0.01),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			multiplier := determineMultiplier(tt.retirementAge, tt.serviceYears)
			assert.True(t, multiplier.Equal(tt.expectedMultiplier),
				"Expected %s, got %s", tt.expectedMultiplier, multiplier)
		})
	}
}

func TestPensionAnnualMultiplierBoundary(t *testing.T) {
	highThree := decimal.NewFromInt(100000)
	for age := 55; age <= 70; age++ {
		for years := 5; years <= 40; years++ {
			service := decimal.NewFromInt(int64(years))
			multiplier := decimal.NewFromFloat(0.01)
			if age >= 62 && years >= 20 {
				multiplier = decimal.NewFromFloat(0.011)
			}
			expected := highThree.Mul(service).Mul(multiplier)
			got := PensionAnnual(service, highThree, age)
			assert.True(t, got.Equal(expected), "age %d years %d: expected %s, got %s", age, years, expected, got)
		}
	}
}

func TestPensionAnnualEndToEnd(t *testing.T) {
	pension := PensionAnnual(decimal.NewFromInt(30), decimal.NewFromInt(100000), 62)
	assert.True(t, pension.Equal(decimal.NewFromInt(33000)), "Expected 33000, got %s", pension)

	pension = PensionAnnual(decimal.NewFromInt(30), decimal.NewFromInt(100000), 57)
	assert.True(t, pension.Equal(decimal.NewFromInt(30000)), "Expected 30000, got %s", pension)
}

func TestSurvivorReducedPension(t *testing.T) {
	pension := decimal.NewFromInt(40000)

	tests := []struct {
		name             string
		election         decimal.Decimal
		expectedReduced  decimal.Decimal
		expectedSurvivor decimal.Decimal
	}{
		{"no survivor", decimal.Zero, decimal.NewFromInt(40000), decimal.Zero},
		{"25 percent", decimal.NewFromFloat(0.25), decimal.NewFromInt(38000), decimal.NewFromInt(10000)},
		{"50 percent", decimal.NewFromFloat(0.50), decimal.NewFromInt(36000), decimal.NewFromInt(20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reduced, survivor := SurvivorReducedPension(pension, tt.election)
			assert.True(t, reduced.Equal(tt.expectedReduced), "reduced: expected %s, got %s", tt.expectedReduced, reduced)
			assert.True(t, survivor.Equal(tt.expectedSurvivor), "survivor: expected %s, got %s", tt.expectedSurvivor, survivor)
		})
	}
}

func TestAnnuitySupplement(t *testing.T) {
	// 1800/40 * ceil(29.25) = 45 * 30
	supplement := AnnuitySupplement(decimal.NewFromFloat(29.25), decimal.NewFromInt(1800))
	assert.True(t, supplement.Equal(decimal.NewFromInt(1350)), "Expected 1350, got %s", supplement)

	supplement = AnnuitySupplement(decimal.NewFromInt(20), decimal.NewFromInt(2000))
	assert.True(t, supplement.Equal(decimal.NewFromInt(1000)), "Expected 1000, got %s", supplement)
}

func TestSupplementEligible(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		mra      int
		service  int64
		expected bool
	}{
		{"MRA with 30 years", 57, 57, 30, true},
		{"MRA with 29 years", 57, 57, 29, false},
		{"60 with 20 years", 60, 57, 20, true},
		{"59 with 25 years", 59, 57, 25, false},
		{"below MRA", 55, 57, 35, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SupplementEligible(tt.age, tt.mra, decimal.NewFromInt(tt.service)))
		})
	}
}

func TestCOLAAdjustedIncrement(t *testing.T) {
	tests := []struct {
		name              string
		currentPension    decimal.Decimal
		inflationRate     decimal.Decimal
		annuitantAge      int
		expectedIncrement decimal.Decimal
	}{
		{
			name:              "No COLA before age 62",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.03),
			annuitantAge:      61,
			expectedIncrement: decimal.Zero,
		},
		{
			name:              "Full COLA at age 62 with 2% inflation",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.02),
			annuitantAge:      62,
			expectedIncrement: decimal.NewFromInt(600),
		},
		{
			name:              "Capped at 2% for 2.5% inflation",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.025),
			annuitantAge:      65,
			expectedIncrement: decimal.NewFromInt(600),
		},
		{
			name:              "Capped at 2% for exactly 3% inflation",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.03),
			annuitantAge:      65,
			expectedIncrement: decimal.NewFromInt(600),
		},
		{
			name:              "Inflation minus 1% above 3%",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.05),
			annuitantAge:      70,
			expectedIncrement: decimal.NewFromInt(1200),
		},
		{
			name:              "Low inflation passes through",
			currentPension:    decimal.NewFromInt(30000),
			inflationRate:     decimal.NewFromFloat(0.01),
			annuitantAge:      70,
			expectedIncrement: decimal.NewFromInt(300),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := COLAAdjustedIncrement(tt.currentPension, tt.inflationRate, tt.annuitantAge)
			assert.True(t, result.Equal(tt.expectedIncrement),
				"Expected %s, got %s", tt.expectedIncrement, result)
		})
	}
}

func TestCOLAAdjustedIncrementZeroBelow62(t *testing.T) {
	base := decimal.NewFromInt(50000)
	for age := 0; age < 62; age++ {
		for _, inflation := range []float64{-0.02, 0, 0.015, 0.025, 0.08, 0.5} {
			assert.True(t, COLAAdjustedIncrement(base, decimal.NewFromFloat(inflation), age).IsZero(), "age %d inflation %v", age, inflation)
		}
	}
}
