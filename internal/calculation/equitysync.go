package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// EquityTolerance is the dollar slack allowed in the identity
//
//	homeValue = currentDebt + downPayment + existingEquity
//
// before a scenario is flagged as broken.
var EquityTolerance = decimal.NewFromInt(500)

// SyncResult is the outcome of one equity-synchronization pass: the adjusted
// scenario plus a flag for the caller to surface when home value, debt, and
// equity could not be reconciled within tolerance. The pass never iterates
// and never auto-corrects beyond its single recomputation.
type SyncResult struct {
	Scenario       domain.Scenario
	EquationBroken bool
}

// currentDebts returns the primary and additional current balances seeded
// from each loan's start date.
func currentDebts(s *domain.Scenario) (primary, additional decimal.Decimal) {
	now := nowFunc()
	primary = CurrentBalance(s.LoanAmount, s.InterestRate, s.LoanTermYears, s.StartDate, now)
	for _, l := range s.AdditionalLoans {
		additional = additional.Add(CurrentBalance(l.Balance, l.Rate, l.TermYears, l.StartDate, now))
	}
	return primary, additional
}

func equationBroken(s *domain.Scenario) bool {
	primary, additional := currentDebts(s)
	lhs := s.HomeValue
	rhs := primary.Add(additional).Add(s.DownPayment).Add(s.ExistingEquity)
	return lhs.Sub(rhs).Abs().GreaterThan(EquityTolerance)
}

// routeEquityGap distributes the difference between home value and current
// debt into the cash-equity fields: with no down payment on record the whole
// gap is existing equity, otherwise the down payment absorbs the gap net of
// whatever existing equity is already present.
func routeEquityGap(s *domain.Scenario, gap decimal.Decimal) {
	if s.DownPayment.IsZero() {
		s.ExistingEquity = gap
		return
	}
	s.DownPayment = gap.Sub(s.ExistingEquity)
}

// SyncHomeValueChanged re-derives the cash-equity fields after a home value
// edit, holding the loans fixed.
func SyncHomeValueChanged(s domain.Scenario, newHomeValue decimal.Decimal) SyncResult {
	s.HomeValue = newHomeValue
	primary, additional := currentDebts(&s)
	routeEquityGap(&s, newHomeValue.Sub(primary).Sub(additional))
	return SyncResult{Scenario: s, EquationBroken: equationBroken(&s)}
}

// SyncLoanAmountChanged re-derives the cash-equity fields after the primary
// loan's original amount is edited, holding home value fixed. The loan's
// current balance is recomputed from the new original amount first.
func SyncLoanAmountChanged(s domain.Scenario, newLoanAmount decimal.Decimal) SyncResult {
	s.LoanAmount = newLoanAmount
	primary, additional := currentDebts(&s)
	routeEquityGap(&s, s.HomeValue.Sub(primary).Sub(additional))
	return SyncResult{Scenario: s, EquationBroken: equationBroken(&s)}
}

// SyncDownPaymentChanged back-solves a new original primary loan amount after
// a down payment edit, holding home value and existing equity fixed. The
// implied original amount uses the current-to-original balance ratio observed
// before the edit, so a seasoned loan stays seasoned.
func SyncDownPaymentChanged(s domain.Scenario, newDownPayment decimal.Decimal) SyncResult {
	s.DownPayment = newDownPayment
	resolveImpliedLoan(&s)
	return SyncResult{Scenario: s, EquationBroken: equationBroken(&s)}
}

// SyncExistingEquityChanged is the existing-equity twin of
// SyncDownPaymentChanged.
func SyncExistingEquityChanged(s domain.Scenario, newExistingEquity decimal.Decimal) SyncResult {
	s.ExistingEquity = newExistingEquity
	resolveImpliedLoan(&s)
	return SyncResult{Scenario: s, EquationBroken: equationBroken(&s)}
}

func resolveImpliedLoan(s *domain.Scenario) {
	primaryBefore, additional := currentDebts(s)

	ratio := one
	if s.LoanAmount.IsPositive() && primaryBefore.IsPositive() {
		ratio = primaryBefore.Div(s.LoanAmount)
	}

	targetPrimary := s.HomeValue.Sub(s.DownPayment).Sub(s.ExistingEquity).Sub(additional)
	if targetPrimary.IsNegative() {
		// Cannot owe a negative amount; the broken flag surfaces the residual.
		s.LoanAmount = decimal.Zero
		return
	}
	s.LoanAmount = targetPrimary.Div(ratio)
}
