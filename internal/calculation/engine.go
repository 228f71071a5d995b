package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
	"github.com/hec/home-equity-compass/pkg/dateutil"
)

// CalculationEngine orchestrates the monthly projection of one scenario. It
// holds no mutable state between runs: every Project call recomputes the full
// trajectory from month 1 and is independent and idempotent, so scenarios can
// be projected in parallel on separate goroutines.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new projection engine.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Project advances loan balances, property costs, rent cash flow, tax
// effects, and the side investment in lockstep over the horizon and reduces
// the trajectory to comparable summary metrics. Malformed numeric inputs
// never panic: a non-positive horizon or term yields a zero-length schedule
// and zero totals, and every balance movement is clamped rather than allowed
// to go negative.
func (ce *CalculationEngine) Project(scenario domain.Scenario, globals domain.Globals) *domain.CalculatedResult {
	scenario.ApplyDefaults()
	globals.ApplyDefaults()
	eff := ResolveEffective(&scenario, &globals)

	result := &domain.CalculatedResult{
		ScenarioID:   scenario.ID,
		ScenarioName: scenario.Name,
	}
	horizon := eff.HorizonMonths
	if horizon <= 0 {
		ce.Logger.Warnf("scenario %q: non-positive horizon %d, returning empty projection", scenario.Name, horizon)
		return result
	}

	// A missing start date means the loan begins now. Resolved through the
	// engine's clock seam, not the wall clock, so runs stay reproducible.
	now := nowFunc()
	startOf := func(start time.Time) time.Time {
		if start.IsZero() {
			return now
		}
		return start
	}

	var loans []*amortizableLoan
	if scenario.IncludesHome() {
		if scenario.LoanAmount.IsPositive() && scenario.LoanTermYears > 0 {
			loans = append(loans, newAmortizableLoan(scenario.LoanAmount, scenario.InterestRate, scenario.LoanTermYears, startOf(scenario.StartDate), now, true))
		}
		for _, l := range scenario.AdditionalLoans {
			if l.Balance.IsPositive() && l.TermYears > 0 {
				loans = append(loans, newAmortizableLoan(l.Balance, l.Rate, l.TermYears, startOf(l.StartDate), now, false))
			}
		}
	}

	agg := newCashFlowAggregator(&scenario, eff)

	var inv *investmentAccount
	if scenario.InvestmentIncluded() {
		inv = newInvestmentAccount(eff.InvestmentCapital, eff.InvestmentReturnRate, eff.InvestmentTaxRate)
		agg.seedOutflow(inv.balance)
	} else {
		inv = newInvestmentAccount(decimal.Zero, decimal.Zero, decimal.Zero)
	}
	baseContribution := decimal.Zero
	if scenario.InvestmentIncluded() {
		baseContribution = MonthlyContribution(eff.Contribution, eff.ContributionFrequency)
	}

	schedule := make([]domain.AmortizationPoint, 0, horizon)
	var cumInterest, cumPrincipal, cumExtra, cumPayment decimal.Decimal

	for month := 1; month <= horizon; month++ {
		var monthPayment, monthInterest, monthPrincipal, monthExtra decimal.Decimal
		primaryBalance := decimal.Zero
		totalDebt := decimal.Zero

		for _, loan := range loans {
			extra := decimal.Zero
			if loan.extrasEligible {
				extra = extraPaymentFor(&scenario, month)
			}
			out := loan.step(extra)
			monthPayment = monthPayment.Add(out.payment)
			monthInterest = monthInterest.Add(out.interest)
			monthPrincipal = monthPrincipal.Add(out.principal)
			monthExtra = monthExtra.Add(out.extra)
			if loan.extrasEligible {
				primaryBalance = loan.balance
			}
			totalDebt = totalDebt.Add(loan.balance)
		}

		contribution := baseContribution
		if scenario.IsRentOnly && scenario.InvestMonthlySavings && eff.BaselinePayment != nil {
			// Rent-mode variant: the cash saved versus the baseline PITI
			// payment joins the contribution stream.
			saved := eff.BaselinePayment.Sub(agg.rentFor(month))
			if saved.IsPositive() {
				contribution = contribution.Add(saved)
			}
		}

		agg.accrue(month, monthInterest, monthPayment.Add(monthExtra), contribution)
		inv.step(contribution)

		cumInterest = cumInterest.Add(monthInterest)
		cumPrincipal = cumPrincipal.Add(monthPrincipal)
		cumExtra = cumExtra.Add(monthExtra)
		cumPayment = cumPayment.Add(monthPayment)

		schedule = append(schedule, domain.AmortizationPoint{
			Month:               month,
			Date:                dateutil.AddMonths(now, month),
			Payment:             monthPayment,
			Interest:            monthInterest,
			Principal:           monthPrincipal,
			Extra:               monthExtra,
			PrimaryBalance:      primaryBalance,
			TotalDebt:           totalDebt,
			CumulativeInterest:  cumInterest,
			CumulativePrincipal: cumPrincipal,
			CumulativeExtra:     cumExtra,
		})

		if month%12 == 0 || month == horizon {
			agg.snapshot(month, totalDebt, inv.balance)
		}
	}

	finalDebt := decimal.Zero
	for _, loan := range loans {
		finalDebt = finalDebt.Add(loan.balance)
	}

	months := decimal.NewFromInt(int64(horizon))
	result.MonthlyAveragePI = cumPayment.Div(months)
	result.MonthlyAverageTax = agg.monthlyPropertyTax
	result.MonthlyAverageInsurance = agg.monthlyInsurance
	result.MonthlyAverageHOA = agg.monthlyHOA
	result.MonthlyAveragePMI = agg.monthlyPMI

	result.TotalPaid = cumPayment.Add(cumExtra)
	result.TotalInterest = cumInterest
	result.TotalPrincipal = cumPrincipal
	result.TotalExtra = cumExtra
	result.EquityBuilt = cumPrincipal.Add(cumExtra)
	result.TotalRefunds = agg.totalRefunds
	result.TotalPropertyCosts = agg.totalPropertyCosts
	result.TotalCustomExpenses = agg.totalCustomExpenses
	result.TotalRentPaid = agg.totalRentPaid
	result.TotalRentalIncome = agg.totalRentalIncome
	result.TotalRentalIncomeTax = agg.totalRentalIncomeTax
	result.TotalInvestmentContribution = inv.contributions
	result.TotalInvestmentTax = inv.taxPaid
	result.TotalOutOfPocket = agg.cumOutflow

	result.RemainingBalance = finalDebt
	result.InvestmentBalance = inv.balance
	result.AmortizationSchedule = schedule
	result.AnnualData = agg.annual

	equity := decimal.Zero
	if scenario.IncludesHome() {
		result.FutureHomeValue = agg.fmv
		equity = agg.fmv.Sub(finalDebt)
	}
	result.NetWorth = equity.Add(inv.balance)

	if scenario.IncludesHome() && scenario.SellingEnabled() {
		settlement := SettleSale(&scenario, agg.fmv, finalDebt, inv.balance)
		result.SellingCosts = settlement.SellingCosts
		result.CapitalGainsTax = settlement.CapitalGainsTax
		result.LiquidNetWorth = settlement.LiquidNetWorth
	} else {
		result.LiquidNetWorth = result.NetWorth
	}

	result.Profit = result.LiquidNetWorth.Sub(result.TotalOutOfPocket)
	result.NetCost = result.TotalOutOfPocket.Sub(result.LiquidNetWorth)
	result.EffectiveAnnualReturn = effectiveAnnualReturn(result.Profit, result.TotalOutOfPocket, horizon)

	return result
}

// effectiveAnnualReturn is the simple (non-compounded) annualization
// profit / cashInvested * 100 / horizonYears. Consumers depend on this exact
// formula; it is deliberately not an IRR.
func effectiveAnnualReturn(profit, cashInvested decimal.Decimal, horizonMonths int) decimal.Decimal {
	if cashInvested.LessThanOrEqual(decimal.Zero) || horizonMonths <= 0 {
		return decimal.Zero
	}
	years := decimal.NewFromInt(int64(horizonMonths)).Div(twelve)
	return profit.Div(cashInvested).Mul(hundred).Div(years)
}
