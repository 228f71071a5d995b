package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationPoint is one month of the projection: the primary loan's state
// after the month's payments plus running totals across all loans.
type AmortizationPoint struct {
	Month int       `json:"month"` // 1-based
	Date  time.Time `json:"date"`

	Payment   decimal.Decimal `json:"payment"`   // level P&I across all loans
	Interest  decimal.Decimal `json:"interest"`  // all loans
	Principal decimal.Decimal `json:"principal"` // all loans, scheduled only
	Extra     decimal.Decimal `json:"extra"`     // primary loan ad-hoc principal

	PrimaryBalance decimal.Decimal `json:"primary_balance"`
	TotalDebt      decimal.Decimal `json:"total_debt"`

	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
	CumulativeExtra     decimal.Decimal `json:"cumulative_extra"`
}

// AnnualDataPoint is the yearly (or final partial period) rollup of the
// wealth trajectory.
type AnnualDataPoint struct {
	Year  int `json:"year"`  // 1-based projection year
	Month int `json:"month"` // last month covered by this point

	HomeValue         decimal.Decimal `json:"home_value"` // appreciated FMV
	Debt              decimal.Decimal `json:"debt"`
	HomeEquity        decimal.Decimal `json:"home_equity"`
	InvestmentBalance decimal.Decimal `json:"investment_balance"`
	NetWorth          decimal.Decimal `json:"net_worth"`
	TrueCost          decimal.Decimal `json:"true_cost"`
	CashOutflow       decimal.Decimal `json:"cash_outflow"` // cumulative net out-of-pocket
}

// CalculatedResult is the full derived output of one projection run. It is
// created fresh on every recomputation, never mutated in place, and owned by
// the caller that requested it.
type CalculatedResult struct {
	ScenarioID   string `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`

	// Monthly averages.
	MonthlyAveragePI        decimal.Decimal `json:"monthly_average_pi"`
	MonthlyAverageTax       decimal.Decimal `json:"monthly_average_tax"`
	MonthlyAverageInsurance decimal.Decimal `json:"monthly_average_insurance"`
	MonthlyAverageHOA       decimal.Decimal `json:"monthly_average_hoa"`
	MonthlyAveragePMI       decimal.Decimal `json:"monthly_average_pmi"`

	// Cumulative totals over the horizon.
	TotalPaid                   decimal.Decimal `json:"total_paid"` // P&I + extra, all loans
	TotalInterest               decimal.Decimal `json:"total_interest"`
	TotalPrincipal              decimal.Decimal `json:"total_principal"`
	TotalExtra                  decimal.Decimal `json:"total_extra"`
	EquityBuilt                 decimal.Decimal `json:"equity_built"` // principal + extra paid down
	TotalRefunds                decimal.Decimal `json:"total_refunds"`
	TotalPropertyCosts          decimal.Decimal `json:"total_property_costs"`
	TotalCustomExpenses         decimal.Decimal `json:"total_custom_expenses"`
	TotalRentPaid               decimal.Decimal `json:"total_rent_paid"`
	TotalRentalIncome           decimal.Decimal `json:"total_rental_income"`
	TotalRentalIncomeTax        decimal.Decimal `json:"total_rental_income_tax"`
	TotalInvestmentContribution decimal.Decimal `json:"total_investment_contribution"`
	TotalInvestmentTax          decimal.Decimal `json:"total_investment_tax"`
	TotalOutOfPocket            decimal.Decimal `json:"total_out_of_pocket"` // net cash invested

	// Terminal snapshot.
	FutureHomeValue       decimal.Decimal `json:"future_home_value"`
	RemainingBalance      decimal.Decimal `json:"remaining_balance"`
	InvestmentBalance     decimal.Decimal `json:"investment_balance"`
	SellingCosts          decimal.Decimal `json:"selling_costs"`
	CapitalGainsTax       decimal.Decimal `json:"capital_gains_tax"`
	NetWorth              decimal.Decimal `json:"net_worth"`
	LiquidNetWorth        decimal.Decimal `json:"liquid_net_worth"`
	Profit                decimal.Decimal `json:"profit"`
	NetCost               decimal.Decimal `json:"net_cost"`
	EffectiveAnnualReturn decimal.Decimal `json:"effective_annual_return"` // simple, non-compounded percent

	AmortizationSchedule []AmortizationPoint `json:"amortization_schedule"`
	AnnualData           []AnnualDataPoint   `json:"annual_data"`
}

// PayoffMonth returns the first month the primary balance reached zero after
// carrying debt, or 0 if the loan never pays off within the horizon (or the
// scenario had no loan at all).
func (r *CalculatedResult) PayoffMonth() int {
	carried := false
	for _, p := range r.AmortizationSchedule {
		if p.PrimaryBalance.GreaterThan(decimal.Zero) {
			carried = true
			continue
		}
		if carried {
			return p.Month
		}
	}
	return 0
}

// ScenarioSummary condenses one scenario's projection into the comparable
// headline metrics.
type ScenarioSummary struct {
	Name                  string            `json:"name"`
	Color                 string            `json:"color,omitempty"`
	Mode                  string            `json:"mode"`
	Profit                decimal.Decimal   `json:"profit"`
	NetWorth              decimal.Decimal   `json:"net_worth"`
	NetCost               decimal.Decimal   `json:"net_cost"`
	TotalOutOfPocket      decimal.Decimal   `json:"total_out_of_pocket"`
	EffectiveAnnualReturn decimal.Decimal   `json:"effective_annual_return"`
	Result                *CalculatedResult `json:"result"`
}

// ScenarioComparison is the cross-scenario report consumed by formatters and
// the narrative service.
type ScenarioComparison struct {
	HorizonMonths     int               `json:"horizon_months"`
	Scenarios         []ScenarioSummary `json:"scenarios"`
	BestProfit        string            `json:"best_profit"`
	LowestNetCost     string            `json:"lowest_net_cost"`
	KeyConsiderations []string          `json:"key_considerations"`
}
