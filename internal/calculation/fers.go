package calculation

import (
	"github.com/shopspring/decimal"
)

// PensionAnnual calculates the annual FERS basic annuity.
// Domain: serviceYears >= 0, highThree >= 0. The result is highThree * serviceYears * multiplier,
// where the multiplier is 1.1% at age 62+ with 20+ years of service and 1.0% otherwise.
func PensionAnnual(serviceYears, highThree decimal.Decimal, ageAtRetirement int) decimal.Decimal {
	return highThree.Mul(serviceYears).Mul(determineMultiplier(ageAtRetirement, serviceYears))
}

// determineMultiplier determines the FERS pension multiplier based on age and service
func determineMultiplier(retirementAge int, serviceYears decimal.Decimal) decimal.Decimal {
	// Enhanced multiplier: 1.1% if age >= 62 with 20+ years of service
	if retirementAge >= 62 && serviceYears.GreaterThanOrEqual(decimal.NewFromInt(20)) {
		return decimal.NewFromFloat(0.011)
	}

	// Standard multiplier: 1.0% for all other cases
	return decimal.NewFromFloat(0.010)
}

// SurvivorReducedPension applies the survivor benefit election to an unreduced pension.
// A 50% election reduces the retiree's pension by 10%, a 25% election by 5%.
// Elections are normalized to the nearest standard value; anything else is treated as no survivor.
// It returns the retiree's payable pension and the annuity payable to the survivor.
func SurvivorReducedPension(pension, election decimal.Decimal) (reduced, survivorAnnuity decimal.Decimal) {
	switch {
	case election.GreaterThan(decimal.NewFromFloat(0.4)):
		return pension.Mul(decimal.NewFromFloat(0.90)), pension.Mul(decimal.NewFromFloat(0.50))
	case election.GreaterThan(decimal.NewFromFloat(0.20)) && election.LessThan(decimal.NewFromFloat(0.30)):
		return pension.Mul(decimal.NewFromFloat(0.95)), pension.Mul(decimal.NewFromFloat(0.25))
	default:
		return pension, decimal.Zero
	}
}

// AnnuitySupplement calculates the FERS Special Retirement Supplement:
// (estimatedSSAt62 / 40) * ceil(serviceYears). The result has the same period as
// estimatedSSAt62 (monthly in, monthly out).
//
// No eligibility or age check is performed here: callers zero it from age 62 and
// gate it with SupplementEligible.
func AnnuitySupplement(serviceYears, estimatedSSAt62 decimal.Decimal) decimal.Decimal {
	return estimatedSSAt62.Div(decimal.NewFromInt(40)).Mul(serviceYears.Ceil())
}

// SupplementEligible reports whether a retirement is an immediate unreduced annuity
// that pays the supplement: MRA with 30 years, or age 60 with 20 years.
func SupplementEligible(retirementAge, mra int, serviceYears decimal.Decimal) bool {
	if retirementAge >= mra && serviceYears.GreaterThanOrEqual(decimal.NewFromInt(30)) {
		return true
	}
	return retirementAge >= 60 && serviceYears.GreaterThanOrEqual(decimal.NewFromInt(20))
}

// COLAAdjustedIncrement returns the yearly FERS COLA increment (not the new amount).
// COLA is not applied until the annuitant reaches age 62.
// Annual COLA Rules:
// - If inflation is 2% or less, COLA is the inflation rate
// - If inflation is above 2% and at most 3%, COLA is 2%
// - If inflation is greater than 3%, COLA is inflation minus 1%
func COLAAdjustedIncrement(base, inflation decimal.Decimal, age int) decimal.Decimal {
	if age < 62 {
		return decimal.Zero
	}
	return base.Mul(fersCOLARate(inflation))
}

func fersCOLARate(inflation decimal.Decimal) decimal.Decimal {
	switch {
	case inflation.LessThanOrEqual(decimal.NewFromFloat(0.02)):
		return inflation
	case inflation.LessThanOrEqual(decimal.NewFromFloat(0.03)):
		return decimal.NewFromFloat(0.02)
	default:
		return inflation.Sub(decimal.NewFromFloat(0.01))
	}
}
