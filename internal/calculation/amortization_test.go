package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hec/home-equity-compass/internal/domain"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func withinDollars(t *testing.T, expected, actual decimal.Decimal, tolerance float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, expected.Sub(actual).Abs().LessThan(dec(tolerance)),
		"expected %s within $%.2f of %s", actual.StringFixed(2), tolerance, expected.StringFixed(2))
}

func TestLevelPayment(t *testing.T) {
	tests := []struct {
		name      string
		original  decimal.Decimal
		rate      decimal.Decimal
		months    int
		expected  decimal.Decimal
		tolerance float64
	}{
		{"30yr at 5.75%", dec(458000), dec(5.75), 360, dec(2672.75), 0.50},
		{"15yr at 4%", dec(300000), dec(4), 180, dec(2219.06), 0.50},
		{"zero rate straight line", dec(120000), decimal.Zero, 120, dec(1000), 0.01},
		{"zero term", dec(100000), dec(5), 0, decimal.Zero, 0.001},
		{"zero principal", decimal.Zero, dec(5), 360, decimal.Zero, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withinDollars(t, tt.expected, LevelPayment(tt.original, tt.rate, tt.months), tt.tolerance)
		})
	}
}

func TestRemainingBalanceZeroRateIsStraightLine(t *testing.T) {
	original := dec(240000)
	for _, k := range []int{0, 60, 120, 239, 240, 300} {
		want := original.Mul(decimal.NewFromInt(int64(240 - k))).Div(decimal.NewFromInt(240))
		if k >= 240 {
			want = decimal.Zero
		}
		withinDollars(t, want, RemainingBalance(original, decimal.Zero, 240, k), 0.01, "k=%d", k)
	}
}

func TestRemainingBalanceBoundaries(t *testing.T) {
	original := dec(458000)
	assert.True(t, RemainingBalance(original, dec(5.75), 360, 0).Equal(original), "zero elapsed returns original")
	assert.True(t, RemainingBalance(original, dec(5.75), 360, 360).IsZero(), "full term returns zero")
	assert.True(t, RemainingBalance(original, dec(5.75), 360, 500).IsZero(), "past term clamps to zero")
	assert.True(t, RemainingBalance(original, dec(5.75), 0, 12).IsZero(), "zero-length term yields zero")
}

// Simulating forward month by month must reproduce the closed-form balance at
// the same elapsed-month count.
func TestSimulationMatchesClosedForm(t *testing.T) {
	tests := []struct {
		name   string
		rate   decimal.Decimal
		months int
	}{
		{"5.75% over 2 years", dec(5.75), 24},
		{"5.75% over 10 years", dec(5.75), 120},
		{"zero rate over 3 years", decimal.Zero, 36},
		{"7.25% over 1 year", dec(7.25), 12},
	}
	original := dec(458000)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := newAmortizableLoan(original, tt.rate, 30, start, start, true)
			for m := 0; m < tt.months; m++ {
				loan.step(decimal.Zero)
			}
			want := RemainingBalance(original, tt.rate, 360, tt.months)
			withinDollars(t, want, loan.balance, 1.0)
		})
	}
}

func TestStepFinalMonthPayoffClamp(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loan := newAmortizableLoan(dec(1000), dec(12), 30, start, start, true)
	// Force a tiny balance; the level payment must clamp to balance+interest.
	loan.balance = dec(5)
	out := loan.step(decimal.Zero)
	assert.True(t, loan.balance.IsZero(), "balance clamps at zero")
	withinDollars(t, dec(5.05), out.payment, 0.01, "payment is balance plus one month of interest")
}

func TestStepExtraClamping(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	loan := newAmortizableLoan(dec(100000), dec(5), 30, start, start, true)
	loan.step(dec(1e9))
	assert.True(t, loan.balance.IsZero(), "oversized extra clamps to remaining balance")

	loan = newAmortizableLoan(dec(100000), dec(5), 30, start, start, true)
	before := loan.balance
	out := loan.step(dec(-500))
	assert.True(t, out.extra.IsZero(), "negative extra contributes nothing")
	assert.True(t, loan.balance.LessThan(before), "scheduled principal still applies")
}

func TestExtraPaymentForPrecedence(t *testing.T) {
	s := &domain.Scenario{
		MonthlyExtraPayment: dec(300),
		ManualExtraPayments: map[int]decimal.Decimal{5: decimal.Zero, 8: dec(1234)},
	}
	s.ApplyDefaults()

	for month := 1; month <= 12; month++ {
		got := extraPaymentFor(s, month)
		switch month {
		case 5:
			assert.True(t, got.IsZero(), "explicit zero override wins in month 5")
		case 8:
			assert.True(t, got.Equal(dec(1234)), "override amount wins in month 8")
		default:
			assert.True(t, got.Equal(dec(300)), "recurring extra applies in month %d", month)
		}
	}
}

func TestExtraPaymentForRules(t *testing.T) {
	t.Run("delay months", func(t *testing.T) {
		s := &domain.Scenario{MonthlyExtraPayment: dec(200), ExtraPaymentDelayMonths: 6}
		s.ApplyDefaults()
		assert.True(t, extraPaymentFor(s, 6).IsZero())
		assert.True(t, extraPaymentFor(s, 7).Equal(dec(200)))
	})

	t.Run("annually spread", func(t *testing.T) {
		s := &domain.Scenario{MonthlyExtraPayment: dec(200), ExtraPaymentFrequency: domain.ExtraAnnuallySpread}
		s.ApplyDefaults()
		for m := 1; m <= 36; m++ {
			if m%12 == 0 {
				assert.True(t, extraPaymentFor(s, m).Equal(dec(200)), "month %d", m)
			} else {
				assert.True(t, extraPaymentFor(s, m).IsZero(), "month %d", m)
			}
		}
	})

	t.Run("one-time payment", func(t *testing.T) {
		s := &domain.Scenario{OneTimeExtraPayment: dec(5000), OneTimeExtraMonth: 9}
		s.ApplyDefaults()
		assert.True(t, extraPaymentFor(s, 9).Equal(dec(5000)))
		assert.True(t, extraPaymentFor(s, 10).IsZero())
	})

	t.Run("annual lump sum on configured month", func(t *testing.T) {
		s := &domain.Scenario{AnnualLumpSumPayment: dec(3000), LumpSumMonth: 2}
		s.ApplyDefaults()
		// (month-1)%12 == 2 means months 3, 15, 27, ...
		assert.True(t, extraPaymentFor(s, 3).Equal(dec(3000)))
		assert.True(t, extraPaymentFor(s, 15).Equal(dec(3000)))
		assert.True(t, extraPaymentFor(s, 4).IsZero())
	})

	t.Run("rules stack", func(t *testing.T) {
		s := &domain.Scenario{
			MonthlyExtraPayment:  dec(300),
			AnnualLumpSumPayment: dec(3000),
			LumpSumMonth:         0,
			OneTimeExtraPayment:  dec(1000),
			OneTimeExtraMonth:    1,
		}
		s.ApplyDefaults()
		assert.True(t, extraPaymentFor(s, 1).Equal(dec(4300)))
	})
}

// Increasing the recurring extra payment never increases total interest and
// never delays payoff.
func TestExtraPaymentMonotonicity(t *testing.T) {
	defer SetNowFunc(time.Now)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })

	engine := NewCalculationEngine()
	globals := domain.Globals{HorizonMonths: 480}

	base := domain.Scenario{
		Name:          "buy",
		HomeValue:     dec(500000),
		LoanAmount:    dec(400000),
		InterestRate:  dec(6),
		LoanTermYears: 30,
		StartDate:     now,
		DownPayment:   dec(100000),
	}

	var lastInterest decimal.Decimal
	lastPayoff := 0
	for i, extra := range []float64{0, 100, 300, 1000} {
		s := base
		s.MonthlyExtraPayment = dec(extra)
		result := engine.Project(s, globals)
		payoff := result.PayoffMonth()
		require.NotZero(t, payoff, "extra %.0f pays off within the horizon", extra)
		if i > 0 {
			assert.True(t, result.TotalInterest.LessThanOrEqual(lastInterest),
				"extra %.0f: interest %s exceeds %s", extra, result.TotalInterest.StringFixed(2), lastInterest.StringFixed(2))
			assert.LessOrEqual(t, payoff, lastPayoff, "extra %.0f delays payoff", extra)
		}
		lastInterest = result.TotalInterest
		lastPayoff = payoff
	}
}
