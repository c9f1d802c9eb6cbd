package calculation

import (
	"github.com/rpgo/fers-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: 2024 brackets for every projection year, no inflation indexing
//    - SINGLE and MARRIED_FILING_JOINTLY tables only
//    - Additional standard deduction for age 65+: $1,850
//
// 2. State tax: one flat rate over ordinary income; Social Security is exempt

// AdditionalDeductionOver65 is added to the standard deduction for filers 65 and older
var AdditionalDeductionOver65 = decimal.NewFromInt(1850)

// TaxBracket represents a federal tax bracket
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal // Zero for the unbounded top bracket
	Rate decimal.Decimal
}

// upper returns the income taxed up to within this bracket
func (b TaxBracket) upper(income decimal.Decimal) decimal.Decimal {
	if b.Max.IsZero() {
		return income
	}
	return decimal.Min(income, b.Max)
}

func bracket(minimum, maximum int64, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromInt(minimum), Max: decimal.NewFromInt(maximum), Rate: decimal.NewFromFloat(rate)}
}

var singleBrackets = []TaxBracket{
	bracket(0, 11600, 0.10),
	bracket(11600, 47150, 0.12),
	bracket(47150, 100525, 0.22),
	bracket(100525, 191950, 0.24),
	bracket(191950, 243725, 0.32),
	bracket(243725, 609350, 0.35),
	bracket(609350, 0, 0.37),
}

var marriedJointBrackets = []TaxBracket{
	bracket(0, 23200, 0.10),
	bracket(23200, 94300, 0.12),
	bracket(94300, 201050, 0.22),
	bracket(201050, 383900, 0.24),
	bracket(383900, 487450, 0.32),
	bracket(487450, 731200, 0.35),
	bracket(731200, 0, 0.37),
}

// Brackets returns the bracket table for a filing status.
// Unrecognized statuses use the SINGLE table.
func Brackets(status domain.FilingStatus) []TaxBracket {
	if status == domain.FilingMarriedFilingJointly {
		return marriedJointBrackets
	}
	return singleBrackets
}

// StandardDeduction returns the default standard deduction for a filing status
func StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	if status == domain.FilingMarriedFilingJointly {
		return decimal.NewFromInt(29200)
	}
	return decimal.NewFromInt(14600)
}

// FederalTax calculates federal income tax on gross taxable income.
// The deduction is standardDeduction plus AdditionalDeductionOver65 when isOver65.
// Domain: taxableIncome may be any value; income at or below the deduction owes nothing.
func FederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus, standardDeduction decimal.Decimal, isOver65 bool) decimal.Decimal {
	deduction := standardDeduction
	if isOver65 {
		deduction = deduction.Add(AdditionalDeductionOver65)
	}

	income := taxableIncome.Sub(deduction)
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, b := range Brackets(status) {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		inBracket := b.upper(income).Sub(b.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(inBracket.Mul(b.Rate))
		}
	}

	return totalTax
}

// StateTax applies a flat state rate. Negative income owes nothing.
func StateTax(income, rate decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	return income.Mul(rate)
}
