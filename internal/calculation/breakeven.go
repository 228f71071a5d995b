package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// BreakEvenAppreciationRate finds the annual appreciation rate (in percent)
// at which the buy scenario's profit matches the reference scenario's. The
// reference is typically a rent or pure-investment strategy whose outcome
// does not depend on appreciation; its profit is computed once at the given
// globals. Binary search over the rate, bounded iterations, dollar tolerance.
func (ce *CalculationEngine) BreakEvenAppreciationRate(buy, reference domain.Scenario, globals domain.Globals) (decimal.Decimal, error) {
	if !buy.IncludesHome() {
		return decimal.Zero, fmt.Errorf("scenario %q does not include a home", buy.Name)
	}

	targetProfit := ce.Project(reference, globals).Profit

	minRate := decimal.NewFromInt(-10)
	maxRate := decimal.NewFromInt(20)
	tolerance := decimal.NewFromInt(1) // within $1 of profit
	maxIterations := 60

	profitAt := func(rate decimal.Decimal) decimal.Decimal {
		testGlobals := globals
		testGlobals.AppreciationRate = rate
		return ce.Project(buy, testGlobals).Profit
	}

	lowDiff := profitAt(minRate).Sub(targetProfit)
	highDiff := profitAt(maxRate).Sub(targetProfit)
	if lowDiff.Sign() == highDiff.Sign() {
		return decimal.Zero, fmt.Errorf("no break-even appreciation rate between %s%% and %s%%", minRate, maxRate)
	}

	for i := 0; i < maxIterations; i++ {
		testRate := minRate.Add(maxRate).Div(decimal.NewFromInt(2))
		diff := profitAt(testRate).Sub(targetProfit)

		if diff.Abs().LessThan(tolerance) {
			return testRate, nil
		}

		if diff.Sign() == lowDiff.Sign() {
			minRate = testRate
			lowDiff = diff
		} else {
			maxRate = testRate
		}
	}

	return minRate.Add(maxRate).Div(decimal.NewFromInt(2)), nil
}
