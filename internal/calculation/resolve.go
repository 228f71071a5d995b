package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

// Effective is the fully resolved set of inputs a projection runs on.
// Broadcast globals and per-scenario lock flags collapse into plain values
// here, once per run; the simulation loop never consults Globals again.
type Effective struct {
	HorizonMonths         int
	AppreciationRate      decimal.Decimal // annual percent
	InvestmentCapital     decimal.Decimal
	Contribution          decimal.Decimal
	ContributionFrequency domain.ContributionFrequency
	InvestmentReturnRate  decimal.Decimal // annual percent
	InvestmentTaxRate     decimal.Decimal // percent
	RentMonthly           decimal.Decimal
	RentalIncome          decimal.Decimal
	BaselinePayment       *decimal.Decimal
}

// ResolveEffective merges a scenario with the shared globals. A locked
// concern keeps the scenario's own values; an unlocked one takes the
// broadcast global. This replaces any notion of a live subscription between
// global fields and scenarios: resolution is a pure function evaluated at the
// start of each projection.
func ResolveEffective(s *domain.Scenario, g *domain.Globals) Effective {
	eff := Effective{
		HorizonMonths:         g.HorizonMonths,
		AppreciationRate:      g.AppreciationRate,
		InvestmentCapital:     g.InvestmentCapital,
		Contribution:          g.Contribution,
		ContributionFrequency: g.ContributionFrequency,
		InvestmentReturnRate:  g.InvestmentReturnRate,
		InvestmentTaxRate:     g.InvestmentTaxRate,
		RentMonthly:           s.RentMonthly,
		RentalIncome:          s.RentalIncome,
		BaselinePayment:       g.BaselinePayment,
	}
	if s.LockInvestment {
		eff.InvestmentCapital = s.InvestmentCapital
		eff.Contribution = s.InvestmentMonthly
		eff.ContributionFrequency = s.InvestmentContributionFrequency
		eff.InvestmentReturnRate = s.InvestmentRate
		eff.InvestmentTaxRate = s.InvestmentTaxRate
	}
	if g.UseGlobalRent && !s.LockRent && g.Rent != nil {
		eff.RentMonthly = *g.Rent
	}
	return eff
}
