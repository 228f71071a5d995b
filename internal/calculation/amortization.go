package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
	"github.com/hec/home-equity-compass/pkg/dateutil"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// monthlyRate converts an annual percentage rate (e.g. 5.75) to a monthly
// fraction (0.0575/12).
func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}

// LevelPayment returns the standard annuity payment for a loan of the given
// original principal, annual percentage rate, and term. A zero rate degrades
// to straight-line principal reduction. Non-positive terms or principals
// yield a zero payment.
func LevelPayment(original, annualPercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || original.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	i := monthlyRate(annualPercent)
	if i.IsZero() {
		return original.Div(decimal.NewFromInt(int64(termMonths)))
	}
	growth := one.Add(i).Pow(decimal.NewFromInt(int64(termMonths)))
	return original.Mul(i).Mul(growth).Div(growth.Sub(one))
}

// RemainingBalance returns the already-amortized balance after elapsedMonths
// of scheduled payments, using the closed-form annuity identity
//
//	B_k = L * ((1+i)^n - (1+i)^k) / ((1+i)^n - 1)
//
// with i = 0 handled as straight-line reduction. Used once per run to seed a
// loan's current balance from its historical start date; the month-by-month
// simulation takes over from there.
func RemainingBalance(original, annualPercent decimal.Decimal, termMonths, elapsedMonths int) decimal.Decimal {
	if termMonths <= 0 || original.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if elapsedMonths <= 0 {
		return original
	}
	if elapsedMonths >= termMonths {
		return decimal.Zero
	}
	i := monthlyRate(annualPercent)
	k := decimal.NewFromInt(int64(elapsedMonths))
	n := decimal.NewFromInt(int64(termMonths))
	if i.IsZero() {
		return original.Mul(one.Sub(k.Div(n)))
	}
	gn := one.Add(i).Pow(n)
	gk := one.Add(i).Pow(k)
	return original.Mul(gn.Sub(gk)).Div(gn.Sub(one))
}

// CurrentBalance seeds a loan's balance as of a given date from its original
// terms and start date.
func CurrentBalance(original, annualPercent decimal.Decimal, termYears int, startDate, asOf time.Time) decimal.Decimal {
	termMonths := termYears * 12
	elapsed := dateutil.ElapsedMonths(startDate, asOf, termMonths)
	return RemainingBalance(original, annualPercent, termMonths, elapsed)
}

// amortizableLoan is the single abstraction behind both the primary loan and
// each additional loan. extrasEligible is true only for the primary: only it
// participates in recurring extras, lump sums, one-time payments, and manual
// overrides.
type amortizableLoan struct {
	original       decimal.Decimal
	annualRate     decimal.Decimal // percent
	payment        decimal.Decimal // level payment on the original terms
	balance        decimal.Decimal
	extrasEligible bool
}

func newAmortizableLoan(original, annualPercent decimal.Decimal, termYears int, startDate, asOf time.Time, extrasEligible bool) *amortizableLoan {
	return &amortizableLoan{
		original:       original,
		annualRate:     annualPercent,
		payment:        LevelPayment(original, annualPercent, termYears*12),
		balance:        CurrentBalance(original, annualPercent, termYears, startDate, asOf),
		extrasEligible: extrasEligible,
	}
}

// monthOutcome is the cash movement of one loan over one simulated month.
type monthOutcome struct {
	payment   decimal.Decimal
	interest  decimal.Decimal
	principal decimal.Decimal
	extra     decimal.Decimal
}

// step advances the loan by one month. The level payment is clamped so it
// never exceeds balance plus interest (final-month payoff), and the extra is
// clamped to [0, remaining balance] so the balance can never go negative.
func (l *amortizableLoan) step(extra decimal.Decimal) monthOutcome {
	if l.balance.LessThanOrEqual(decimal.Zero) {
		return monthOutcome{}
	}
	interest := l.balance.Mul(monthlyRate(l.annualRate))
	payment := l.payment
	if payoff := l.balance.Add(interest); payment.GreaterThan(payoff) {
		payment = payoff
	}
	principal := payment.Sub(interest)
	remaining := l.balance.Sub(principal)
	if extra.IsNegative() {
		extra = decimal.Zero
	}
	if extra.GreaterThan(remaining) {
		extra = remaining
	}
	l.balance = remaining.Sub(extra)
	return monthOutcome{payment: payment, interest: interest, principal: principal, extra: extra}
}

// extraPaymentFor resolves the ad-hoc principal payment for an absolute
// 1-based month of the projection. A manual override, when present, wins over
// every other rule; an explicit zero override is honored. Otherwise the
// recurring extra (from extra_payment_delay_months+1 onward, every month or
// only each 12th month for the annually-spread frequency), the one-time
// payment on its configured month, and the annual lump sum on
// (month-1)%12 == lump_sum_month all stack.
func extraPaymentFor(s *domain.Scenario, month int) decimal.Decimal {
	if v, ok := s.ManualExtraPayments[month]; ok {
		return v
	}
	extra := decimal.Zero
	if s.MonthlyExtraPayment.IsPositive() && month > s.ExtraPaymentDelayMonths {
		if s.ExtraPaymentFrequency != domain.ExtraAnnuallySpread || month%12 == 0 {
			extra = extra.Add(s.MonthlyExtraPayment)
		}
	}
	if s.OneTimeExtraPayment.IsPositive() && month == s.OneTimeExtraMonth {
		extra = extra.Add(s.OneTimeExtraPayment)
	}
	if s.AnnualLumpSumPayment.IsPositive() && (month-1)%12 == s.LumpSumMonth {
		extra = extra.Add(s.AnnualLumpSumPayment)
	}
	return extra
}
