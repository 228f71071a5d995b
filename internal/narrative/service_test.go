package narrative

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hec/home-equity-compass/internal/domain"
)

func TestComparisonPrompt(t *testing.T) {
	comparison := &domain.ScenarioComparison{
		HorizonMonths: 120,
		Scenarios: []domain.ScenarioSummary{
			{
				Name:                  "Buy",
				Mode:                  "buy",
				Profit:                decimal.NewFromInt(80000),
				TotalOutOfPocket:      decimal.NewFromInt(400000),
				EffectiveAnnualReturn: decimal.NewFromInt(2),
				Result: &domain.CalculatedResult{
					LiquidNetWorth: decimal.NewFromInt(480000),
				},
			},
			{
				Name:                  "Rent",
				Mode:                  "rent",
				Profit:                decimal.NewFromInt(-30000),
				TotalOutOfPocket:      decimal.NewFromInt(300000),
				EffectiveAnnualReturn: decimal.NewFromInt(-1),
				Result: &domain.CalculatedResult{
					LiquidNetWorth: decimal.NewFromInt(270000),
				},
			},
		},
		BestProfit:        "Buy",
		LowestNetCost:     "Buy",
		KeyConsiderations: []string{"Rent ends the horizon at a net loss."},
	}

	prompt := comparisonPrompt(comparison)

	assert.Contains(t, prompt, "120 months (10 years)")
	assert.Contains(t, prompt, `Scenario "Buy" (buy)`)
	assert.Contains(t, prompt, "$480000.00")
	assert.Contains(t, prompt, "profit: -$30000.00")
	assert.Contains(t, prompt, "Highest profit: Buy")
	assert.Contains(t, prompt, "Rent ends the horizon at a net loss.")
}

func TestAnalyzeRequiresStart(t *testing.T) {
	svc := NewService()
	_, err := svc.Analyze(context.Background(), &domain.ScenarioComparison{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}
