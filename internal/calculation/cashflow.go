package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// cashFlowAggregator accumulates property costs, rent flows, tax effects, and
// custom expenses month by month, drives the home-appreciation trajectory,
// and rolls the running state up into annual data points.
type cashFlowAggregator struct {
	includeHome bool

	// Effective monthly cost figures, already zeroed when property costs are
	// excluded or the scenario has no home.
	monthlyPropertyTax decimal.Decimal
	monthlyInsurance   decimal.Decimal
	monthlyHOA         decimal.Decimal
	monthlyPMI         decimal.Decimal
	monthlyCustom      decimal.Decimal

	rentBase      decimal.Decimal // month-1 rent, grown annually thereafter
	rentInflow    bool
	rentGrowth    decimal.Decimal // annual fraction
	rentalTaxOn   bool
	rentalTaxRate decimal.Decimal // fraction
	taxRefundRate decimal.Decimal // fraction

	fmv         decimal.Decimal
	apprMonthly decimal.Decimal // fraction
	sellingRate decimal.Decimal // fraction

	cumOutflow decimal.Decimal

	totalPropertyCosts   decimal.Decimal
	totalCustomExpenses  decimal.Decimal
	totalRentPaid        decimal.Decimal
	totalRentalIncome    decimal.Decimal
	totalRentalIncomeTax decimal.Decimal
	totalRefunds         decimal.Decimal

	annual []domain.AnnualDataPoint
}

func newCashFlowAggregator(s *domain.Scenario, eff Effective) *cashFlowAggregator {
	agg := &cashFlowAggregator{
		includeHome:   s.IncludesHome(),
		rentGrowth:    s.RentIncreasePerYear.Div(hundred),
		rentalTaxOn:   s.RentalIncomeTaxEnabled,
		rentalTaxRate: s.RentalIncomeTaxRate.Div(hundred),
		apprMonthly:   monthlyRate(eff.AppreciationRate),
		sellingRate:   s.SellingCostRate.Div(hundred),
	}
	if agg.includeHome {
		agg.fmv = s.OriginalFMV
		agg.taxRefundRate = s.TaxRefundRate.Div(hundred)
		if s.PropertyCostsIncluded() {
			agg.monthlyPropertyTax = s.PropertyTax.Div(twelve)
			agg.monthlyInsurance = s.HomeInsurance.Div(twelve)
			agg.monthlyHOA = s.HOA.Div(twelve)
			agg.monthlyPMI = s.PMI.Div(twelve)
		}
		// Down payment, closing costs, and any one-time expenses attached to
		// additional loans are cash in at the start of the run.
		agg.cumOutflow = s.DownPayment.Add(s.TotalClosingCosts())
		for _, l := range s.AdditionalLoans {
			agg.cumOutflow = agg.cumOutflow.Add(l.OneTimeExpenses)
		}
	}
	for _, c := range s.CustomExpenses {
		agg.monthlyCustom = agg.monthlyCustom.Add(c.Amount)
	}
	if s.RentIncluded() && !s.IsInvestmentOnly {
		if s.RentFlowType == domain.RentInflow {
			agg.rentInflow = true
			agg.rentBase = eff.RentalIncome
		} else {
			agg.rentBase = eff.RentMonthly
		}
	}
	return agg
}

// seedOutflow records cash invested before the monthly loop starts (the
// initial investment capital).
func (agg *cashFlowAggregator) seedOutflow(amount decimal.Decimal) {
	agg.cumOutflow = agg.cumOutflow.Add(amount)
}

// rentFor returns the rent figure for a 1-based month: the base amount grown
// at rent_increase_per_year, compounded once per completed year.
func (agg *cashFlowAggregator) rentFor(month int) decimal.Decimal {
	if agg.rentBase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	years := (month - 1) / 12
	if years == 0 || agg.rentGrowth.IsZero() {
		return agg.rentBase
	}
	return agg.rentBase.Mul(one.Add(agg.rentGrowth).Pow(decimal.NewFromInt(int64(years))))
}

// accrue folds one month of flows into the running totals. loanInterest is
// the month's interest across all loans (feeds the rental-income taxable base
// and the refund), loanCash the month's total debt service including extras,
// and invContribution the cash routed into the side investment this month.
func (agg *cashFlowAggregator) accrue(month int, loanInterest, loanCash, invContribution decimal.Decimal) {
	propertyCost := agg.monthlyPropertyTax.Add(agg.monthlyInsurance).Add(agg.monthlyHOA).Add(agg.monthlyPMI)
	agg.totalPropertyCosts = agg.totalPropertyCosts.Add(propertyCost)
	agg.totalCustomExpenses = agg.totalCustomExpenses.Add(agg.monthlyCustom)

	outflow := loanCash.Add(propertyCost).Add(agg.monthlyCustom).Add(invContribution)

	rent := agg.rentFor(month)
	if agg.rentInflow {
		agg.totalRentalIncome = agg.totalRentalIncome.Add(rent)
		outflow = outflow.Sub(rent)
		if agg.rentalTaxOn {
			// Taxable base is rent less carrying costs and the month's
			// mortgage interest. Depreciation and principal are deliberately
			// ignored; this is a fixed modeling simplification.
			taxable := rent.Sub(agg.monthlyPropertyTax).Sub(agg.monthlyInsurance).Sub(agg.monthlyHOA).Sub(loanInterest)
			if taxable.IsPositive() {
				tax := taxable.Mul(agg.rentalTaxRate)
				agg.totalRentalIncomeTax = agg.totalRentalIncomeTax.Add(tax)
				outflow = outflow.Add(tax)
			}
		}
	} else {
		agg.totalRentPaid = agg.totalRentPaid.Add(rent)
		outflow = outflow.Add(rent)
	}

	if agg.includeHome {
		refund := loanInterest.Add(agg.monthlyPropertyTax).Mul(agg.taxRefundRate)
		agg.totalRefunds = agg.totalRefunds.Add(refund)
		outflow = outflow.Sub(refund)
	}

	agg.cumOutflow = agg.cumOutflow.Add(outflow)
	// Appreciation compounds monthly on the running FMV, not on the purchase
	// price.
	agg.fmv = agg.fmv.Mul(one.Add(agg.apprMonthly))
}

// snapshot appends an annual data point covering everything through the given
// month. Called every 12th month and once more for a final partial period.
func (agg *cashFlowAggregator) snapshot(month int, totalDebt, investmentBalance decimal.Decimal) {
	equity := decimal.Zero
	recoverable := decimal.Zero
	if agg.includeHome {
		equity = agg.fmv.Sub(totalDebt)
		recoverable = agg.fmv.Sub(agg.fmv.Mul(agg.sellingRate)).Sub(totalDebt)
	}
	agg.annual = append(agg.annual, domain.AnnualDataPoint{
		Year:              (month + 11) / 12,
		Month:             month,
		HomeValue:         agg.fmv,
		Debt:              totalDebt,
		HomeEquity:        equity,
		InvestmentBalance: investmentBalance,
		NetWorth:          equity.Add(investmentBalance),
		TrueCost:          agg.cumOutflow.Sub(recoverable).Sub(investmentBalance),
		CashOutflow:       agg.cumOutflow,
	})
}
