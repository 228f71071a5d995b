package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// CompareScenarios projects every scenario independently and reduces the set
// to a cross-scenario report: per-scenario summaries plus the best-profit and
// lowest-net-cost picks.
func (ce *CalculationEngine) CompareScenarios(scenarios []domain.Scenario, globals domain.Globals) *domain.ScenarioComparison {
	comparison := &domain.ScenarioComparison{HorizonMonths: globals.HorizonMonths}

	var bestProfit, lowestNetCost decimal.Decimal
	for i, s := range scenarios {
		result := ce.Project(s, globals)
		summary := domain.ScenarioSummary{
			Name:                  s.Name,
			Color:                 s.Color,
			Mode:                  scenarioMode(&s),
			Profit:                result.Profit,
			NetWorth:              result.NetWorth,
			NetCost:               result.NetCost,
			TotalOutOfPocket:      result.TotalOutOfPocket,
			EffectiveAnnualReturn: result.EffectiveAnnualReturn,
			Result:                result,
		}
		comparison.Scenarios = append(comparison.Scenarios, summary)

		if i == 0 || result.Profit.GreaterThan(bestProfit) {
			bestProfit = result.Profit
			comparison.BestProfit = s.Name
		}
		if i == 0 || result.NetCost.LessThan(lowestNetCost) {
			lowestNetCost = result.NetCost
			comparison.LowestNetCost = s.Name
		}
	}

	comparison.KeyConsiderations = ce.keyConsiderations(comparison)
	return comparison
}

func scenarioMode(s *domain.Scenario) string {
	switch {
	case s.IsRentOnly:
		return "rent"
	case s.IsInvestmentOnly:
		return "investment"
	default:
		return "buy"
	}
}

// keyConsiderations derives short caveat strings a report surfaces next to
// the headline numbers.
func (ce *CalculationEngine) keyConsiderations(c *domain.ScenarioComparison) []string {
	var notes []string
	for _, s := range c.Scenarios {
		if s.Result == nil {
			continue
		}
		if payoff := s.Result.PayoffMonth(); payoff > 0 {
			notes = append(notes, fmt.Sprintf("%s pays off its primary loan in month %d", s.Name, payoff))
		}
		if s.Profit.IsNegative() {
			notes = append(notes, fmt.Sprintf("%s ends the horizon at a net loss of %s", s.Name, s.Profit.Neg().StringFixed(2)))
		}
	}
	if c.BestProfit != "" && c.BestProfit != c.LowestNetCost {
		notes = append(notes, fmt.Sprintf("best profit (%s) and lowest net cost (%s) disagree; review cash requirements", c.BestProfit, c.LowestNetCost))
	}
	return notes
}
