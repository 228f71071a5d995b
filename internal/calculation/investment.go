package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// periodsPerYear maps a contribution frequency to its number of periods.
func periodsPerYear(f domain.ContributionFrequency) decimal.Decimal {
	switch f {
	case domain.Weekly:
		return decimal.NewFromInt(52)
	case domain.Biweekly:
		return decimal.NewFromInt(26)
	case domain.Semiannually:
		return decimal.NewFromInt(2)
	case domain.Annually:
		return decimal.NewFromInt(1)
	default:
		return twelve
	}
}

// MonthlyContribution normalizes a per-period contribution to an equivalent
// monthly amount (weekly x 52/12, biweekly x 26/12, and so on). The portfolio
// always compounds monthly regardless of contribution cadence. Non-positive
// contributions normalize to zero.
func MonthlyContribution(amount decimal.Decimal, f domain.ContributionFrequency) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Mul(periodsPerYear(f)).Div(twelve)
}

// investmentAccount models the side cash position. Growth compounds monthly
// and the tax drag is assessed on growth only, subtracted immediately, never
// on principal or contributions.
type investmentAccount struct {
	balance       decimal.Decimal
	monthlyGrowth decimal.Decimal // fraction per month
	taxRate       decimal.Decimal // fraction of growth
	contributions decimal.Decimal
	taxPaid       decimal.Decimal
}

func newInvestmentAccount(capital, annualPercent, taxPercent decimal.Decimal) *investmentAccount {
	if capital.IsNegative() {
		capital = decimal.Zero
	}
	return &investmentAccount{
		balance:       capital,
		monthlyGrowth: monthlyRate(annualPercent),
		taxRate:       taxPercent.Div(hundred),
	}
}

// step advances the account by one month with the given contribution.
// A non-positive contribution contributes nothing; a zero rate produces zero
// growth and zero tax.
func (a *investmentAccount) step(contribution decimal.Decimal) {
	if contribution.IsNegative() {
		contribution = decimal.Zero
	}
	growth := a.balance.Mul(a.monthlyGrowth)
	tax := growth.Mul(a.taxRate)
	a.balance = a.balance.Add(growth).Sub(tax).Add(contribution)
	a.contributions = a.contributions.Add(contribution)
	a.taxPaid = a.taxPaid.Add(tax)
}
