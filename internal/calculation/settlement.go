package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// Settlement holds the terminal sale economics computed once at the horizon
// boundary.
type Settlement struct {
	SellingCosts    decimal.Decimal
	CapitalGain     decimal.Decimal
	CapitalGainsTax decimal.Decimal
	LiquidNetWorth  decimal.Decimal
}

// SettleSale computes the economics of selling at the horizon. The cost basis
// is the original transaction price (Scenario.HomeValue), not the FMV at
// purchase. A positive gain may be reduced by the fixed primary-residence
// exclusion before the capital-gains rate applies; non-positive gains are
// never taxed. Liquid net worth floors the sale proceeds at zero and adds the
// investment balance.
func SettleSale(s *domain.Scenario, finalFMV, remainingDebt, investmentBalance decimal.Decimal) Settlement {
	sellingCosts := finalFMV.Mul(s.SellingCostRate.Div(hundred))
	gain := finalFMV.Sub(sellingCosts).Sub(s.HomeValue)

	tax := decimal.Zero
	if gain.IsPositive() {
		taxable := gain
		if s.PrimaryResidenceExclusion {
			taxable = taxable.Sub(domain.PrimaryResidenceExclusionAmount)
			if taxable.IsNegative() {
				taxable = decimal.Zero
			}
		}
		tax = taxable.Mul(s.CapitalGainsTaxRate.Div(hundred))
	}

	proceeds := finalFMV.Sub(sellingCosts).Sub(tax).Sub(remainingDebt)
	if proceeds.IsNegative() {
		proceeds = decimal.Zero
	}

	return Settlement{
		SellingCosts:    sellingCosts,
		CapitalGain:     gain,
		CapitalGainsTax: tax,
		LiquidNetWorth:  proceeds.Add(investmentBalance),
	}
}
