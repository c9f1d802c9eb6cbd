package calculation

import (
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustedSocialSecurity adjusts the benefit at Full Retirement Age for the claiming age.
//
// Claiming early reduces the benefit by 5/9 of 1% per month for the first 36 months
// and 5/12 of 1% for each additional month. Claiming late adds delayed retirement
// credits of 2/3 of 1% per month. Claiming at FRA returns the benefit unchanged.
// Domain: claimingAge in [62,70], fullRetirementAge in [65,67].
func AdjustedSocialSecurity(benefitAtFRA decimal.Decimal, claimingAge, fullRetirementAge int) decimal.Decimal {
	if claimingAge == fullRetirementAge {
		return benefitAtFRA
	}

	hundred := decimal.NewFromInt(100)

	if claimingAge < fullRetirementAge {
		monthsEarly := (fullRetirementAge - claimingAge) * 12
		first := min(monthsEarly, 36)
		additional := max(0, monthsEarly-36)

		// Percent reduction, kept as exact fractions: months*5/9 + months*5/12
		reduction := decimal.NewFromInt(int64(first * 5)).Div(decimal.NewFromInt(9)).
			Add(decimal.NewFromInt(int64(additional * 5)).Div(decimal.NewFromInt(12)))

		return benefitAtFRA.Mul(decimal.NewFromInt(1).Sub(reduction.Div(hundred)))
	}

	monthsDelayed := (claimingAge - fullRetirementAge) * 12
	increase := decimal.NewFromInt(int64(monthsDelayed * 2)).Div(decimal.NewFromInt(3))
	return benefitAtFRA.Mul(decimal.NewFromInt(1).Add(increase.Div(hundred)))
}

// ssTaxThresholds returns the provisional-income thresholds for the filing status
func ssTaxThresholds(status domain.FilingStatus) (decimal.Decimal, decimal.Decimal) {
	if status == domain.FilingMarriedFilingJointly {
		return decimal.NewFromInt(32000), decimal.NewFromInt(44000)
	}
	return decimal.NewFromInt(25000), decimal.NewFromInt(34000)
}

// TaxableSocialSecurity determines the federally taxable portion of annual SS benefits.
// Provisional Income = other income + 1/2 of Social Security benefits.
// - Provisional Income <= threshold 1: nothing is taxable
// - Provisional Income <= threshold 2: lesser of 50% of the excess over threshold 1 and 50% of benefits
// - Above threshold 2: lesser of 85% of benefits and
//   85% of the excess over threshold 2 plus the lesser of 50% of benefits and half the threshold gap
func TaxableSocialSecurity(ssAnnual, otherIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if !ssAnnual.IsPositive() {
		return decimal.Zero
	}

	half := decimal.NewFromFloat(0.5)
	rate85 := decimal.NewFromFloat(0.85)
	threshold1, threshold2 := ssTaxThresholds(status)
	provisional := otherIncome.Add(ssAnnual.Mul(half))

	if provisional.LessThanOrEqual(threshold1) {
		return decimal.Zero
	}
	if provisional.LessThanOrEqual(threshold2) {
		return decimal.Min(provisional.Sub(threshold1).Mul(half), ssAnnual.Mul(half))
	}

	tier1 := decimal.Min(ssAnnual.Mul(half), threshold2.Sub(threshold1).Mul(half))
	return decimal.Min(ssAnnual.Mul(rate85), provisional.Sub(threshold2).Mul(rate85).Add(tier1))
}
