package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentFlowType distinguishes rent the household pays from rent it collects.
type RentFlowType string

const (
	RentOutflow RentFlowType = "outflow"
	RentInflow  RentFlowType = "inflow"
)

// ContributionFrequency describes how often investment contributions are made.
// The engine normalizes every frequency to an equivalent monthly amount.
type ContributionFrequency string

const (
	Weekly       ContributionFrequency = "weekly"
	Biweekly     ContributionFrequency = "biweekly"
	Monthly      ContributionFrequency = "monthly"
	Semiannually ContributionFrequency = "semiannually"
	Annually     ContributionFrequency = "annually"
)

// ExtraPaymentFrequency controls how a recurring extra payment is applied.
type ExtraPaymentFrequency string

const (
	// ExtraMonthly applies the recurring extra every eligible month.
	ExtraMonthly ExtraPaymentFrequency = "monthly"
	// ExtraAnnuallySpread applies the recurring extra only on every 12th month.
	ExtraAnnuallySpread ExtraPaymentFrequency = "annually"
)

// PrimaryResidenceExclusionAmount is the fixed capital-gains exclusion applied
// when a sold home qualifies as a primary residence.
var PrimaryResidenceExclusionAmount = decimal.NewFromInt(250000)

// Loan is one additional amortizable loan on the property (HELOC, second
// mortgage). Balance is the original principal; the engine seeds the current
// balance from StartDate. Additional loans receive only their level payment:
// recurring extras, lump sums, and manual overrides apply to the primary only.
type Loan struct {
	Balance         decimal.Decimal `yaml:"balance" json:"balance"`
	Rate            decimal.Decimal `yaml:"rate" json:"rate"` // annual percent
	TermYears       int             `yaml:"term_years" json:"term_years"`
	StartDate       time.Time       `yaml:"start_date" json:"start_date"`
	Locked          bool            `yaml:"locked,omitempty" json:"locked,omitempty"`
	OneTimeExpenses decimal.Decimal `yaml:"one_time_expenses,omitempty" json:"one_time_expenses,omitempty"`
}

// CustomExpense is a named recurring monthly cost attached to a scenario.
type CustomExpense struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// Scenario describes one strategy under comparison. It is pure data: the
// calculation engine never mutates it, and every projection is recomputed
// wholesale from it. Optional toggles that default to true are pointers so a
// scenario file can distinguish "unset" from "explicitly false"; call
// ApplyDefaults once at the loading boundary before handing a Scenario to the
// engine.
type Scenario struct {
	ID    string `yaml:"id,omitempty" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`

	// Mode flags. At most one may be set; both false means buy/refinance.
	IsRentOnly       bool `yaml:"is_rent_only,omitempty" json:"is_rent_only,omitempty"`
	IsInvestmentOnly bool `yaml:"is_investment_only,omitempty" json:"is_investment_only,omitempty"`

	// Asset.
	HomeValue   decimal.Decimal `yaml:"home_value,omitempty" json:"home_value"`
	OriginalFMV decimal.Decimal `yaml:"original_fmv,omitempty" json:"original_fmv"` // defaults to HomeValue
	LockFMV     bool            `yaml:"lock_fmv,omitempty" json:"lock_fmv,omitempty"`

	// Primary loan.
	LoanAmount    decimal.Decimal `yaml:"loan_amount,omitempty" json:"loan_amount"`
	InterestRate  decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate"` // annual percent
	LoanTermYears int             `yaml:"loan_term_years,omitempty" json:"loan_term_years"`
	StartDate     time.Time       `yaml:"start_date,omitempty" json:"start_date"`
	LockLoan      bool            `yaml:"lock_loan,omitempty" json:"lock_loan,omitempty"`

	AdditionalLoans []Loan `yaml:"additional_loans,omitempty" json:"additional_loans,omitempty"`

	// Equity and cash.
	DownPayment          decimal.Decimal `yaml:"down_payment,omitempty" json:"down_payment"`
	ExistingEquity       decimal.Decimal `yaml:"existing_equity,omitempty" json:"existing_equity"`
	PrimaryBalanceLocked bool            `yaml:"primary_balance_locked,omitempty" json:"primary_balance_locked,omitempty"`

	// Extra payments against the primary loan.
	MonthlyExtraPayment     decimal.Decimal           `yaml:"monthly_extra_payment,omitempty" json:"monthly_extra_payment"`
	ExtraPaymentDelayMonths int                       `yaml:"extra_payment_delay_months,omitempty" json:"extra_payment_delay_months"`
	ExtraPaymentFrequency   ExtraPaymentFrequency     `yaml:"extra_payment_frequency,omitempty" json:"extra_payment_frequency"`
	AnnualLumpSumPayment    decimal.Decimal           `yaml:"annual_lump_sum_payment,omitempty" json:"annual_lump_sum_payment"`
	LumpSumMonth            int                       `yaml:"lump_sum_month,omitempty" json:"lump_sum_month"` // 0-11
	OneTimeExtraPayment     decimal.Decimal           `yaml:"one_time_extra_payment,omitempty" json:"one_time_extra_payment"`
	OneTimeExtraMonth       int                       `yaml:"one_time_extra_month,omitempty" json:"one_time_extra_month"`
	ManualExtraPayments     map[int]decimal.Decimal   `yaml:"manual_extra_payments,omitempty" json:"manual_extra_payments,omitempty"`

	// Recurring property costs, all annual dollars.
	PropertyTax          decimal.Decimal `yaml:"property_tax,omitempty" json:"property_tax"`
	HomeInsurance        decimal.Decimal `yaml:"home_insurance,omitempty" json:"home_insurance"`
	HOA                  decimal.Decimal `yaml:"hoa,omitempty" json:"hoa"`
	PMI                  decimal.Decimal `yaml:"pmi,omitempty" json:"pmi"`
	CustomExpenses       []CustomExpense `yaml:"custom_expenses,omitempty" json:"custom_expenses,omitempty"`
	IncludePropertyCosts *bool           `yaml:"include_property_costs,omitempty" json:"include_property_costs,omitempty"`

	// Tax refund on mortgage interest and property tax (buy/refi only).
	TaxRefundRate decimal.Decimal `yaml:"tax_refund_rate,omitempty" json:"tax_refund_rate"` // percent

	// Rent.
	RentMonthly            decimal.Decimal `yaml:"rent_monthly,omitempty" json:"rent_monthly"`
	RentalIncome           decimal.Decimal `yaml:"rental_income,omitempty" json:"rental_income"`
	RentFlowType           RentFlowType    `yaml:"rent_flow_type,omitempty" json:"rent_flow_type"`
	RentIncreasePerYear    decimal.Decimal `yaml:"rent_increase_per_year,omitempty" json:"rent_increase_per_year"` // percent
	RentalIncomeTaxEnabled bool            `yaml:"rental_income_tax_enabled,omitempty" json:"rental_income_tax_enabled,omitempty"`
	RentalIncomeTaxRate    decimal.Decimal `yaml:"rental_income_tax_rate,omitempty" json:"rental_income_tax_rate"` // percent
	LockRent               bool            `yaml:"lock_rent,omitempty" json:"lock_rent,omitempty"`
	LockRentIncome         bool            `yaml:"lock_rent_income,omitempty" json:"lock_rent_income,omitempty"`
	IncludeRent            *bool           `yaml:"include_rent,omitempty" json:"include_rent,omitempty"`

	// Side investment.
	InvestmentCapital               decimal.Decimal       `yaml:"investment_capital,omitempty" json:"investment_capital"`
	InvestmentMonthly               decimal.Decimal       `yaml:"investment_monthly,omitempty" json:"investment_monthly"`
	InvestmentContributionFrequency ContributionFrequency `yaml:"investment_contribution_frequency,omitempty" json:"investment_contribution_frequency"`
	InvestmentRate                  decimal.Decimal       `yaml:"investment_rate,omitempty" json:"investment_rate"`         // annual percent
	InvestmentTaxRate               decimal.Decimal       `yaml:"investment_tax_rate,omitempty" json:"investment_tax_rate"` // percent on growth
	LockInvestment                  bool                  `yaml:"lock_investment,omitempty" json:"lock_investment,omitempty"`
	IncludeInvestment               *bool                 `yaml:"include_investment,omitempty" json:"include_investment,omitempty"`
	InvestMonthlySavings            bool                  `yaml:"invest_monthly_savings,omitempty" json:"invest_monthly_savings,omitempty"`

	// Settlement at the horizon.
	EnableSelling             *bool           `yaml:"enable_selling,omitempty" json:"enable_selling,omitempty"`
	SellingCostRate           decimal.Decimal `yaml:"selling_cost_rate,omitempty" json:"selling_cost_rate"` // percent
	ClosingCosts              decimal.Decimal `yaml:"closing_costs,omitempty" json:"closing_costs"`
	CustomClosingCosts        []CustomExpense `yaml:"custom_closing_costs,omitempty" json:"custom_closing_costs,omitempty"`
	CapitalGainsTaxRate       decimal.Decimal `yaml:"capital_gains_tax_rate,omitempty" json:"capital_gains_tax_rate"` // percent
	PrimaryResidenceExclusion bool            `yaml:"primary_residence_exclusion,omitempty" json:"primary_residence_exclusion,omitempty"`
}

// IncludesHome reports whether the scenario carries a property (buy/refi mode).
func (s *Scenario) IncludesHome() bool {
	return !s.IsRentOnly && !s.IsInvestmentOnly
}

// PropertyCostsIncluded resolves the include_property_costs toggle (default true).
func (s *Scenario) PropertyCostsIncluded() bool {
	return s.IncludePropertyCosts == nil || *s.IncludePropertyCosts
}

// RentIncluded resolves the include_rent toggle (default true).
func (s *Scenario) RentIncluded() bool {
	return s.IncludeRent == nil || *s.IncludeRent
}

// InvestmentIncluded resolves the include_investment toggle (default true).
func (s *Scenario) InvestmentIncluded() bool {
	return s.IncludeInvestment == nil || *s.IncludeInvestment
}

// SellingEnabled resolves the enable_selling toggle (default true).
func (s *Scenario) SellingEnabled() bool {
	return s.EnableSelling == nil || *s.EnableSelling
}

// TotalClosingCosts sums the flat closing cost with any custom line items.
func (s *Scenario) TotalClosingCosts() decimal.Decimal {
	total := s.ClosingCosts
	for _, c := range s.CustomClosingCosts {
		total = total.Add(c.Amount)
	}
	return total
}

// ApplyDefaults resolves optional value fields: original FMV falls back to
// the purchase price and enumerations get their documented defaults. It is
// deterministic and safe to call repeatedly; identity (EnsureID) and clock
// defaults (StartDate) are resolved by the loading boundary and the engine
// respectively, never here.
func (s *Scenario) ApplyDefaults() {
	if s.OriginalFMV.IsZero() {
		s.OriginalFMV = s.HomeValue
	}
	if s.RentFlowType == "" {
		s.RentFlowType = RentOutflow
	}
	if s.ExtraPaymentFrequency == "" {
		s.ExtraPaymentFrequency = ExtraMonthly
	}
	if s.InvestmentContributionFrequency == "" {
		s.InvestmentContributionFrequency = Monthly
	}
}

// EnsureID mints a UUID for a scenario loaded without one. Called once when a
// configuration is loaded; the projection path never generates identifiers,
// so identical inputs always produce identical results.
func (s *Scenario) EnsureID() {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
}

// Globals carries the shared assumptions broadcast across scenarios. Per-field
// lock flags on a Scenario decide whether the scenario's own value or the
// global one is used; resolution happens once per projection, never through a
// side-effecting subscription.
type Globals struct {
	HorizonMonths         int                   `yaml:"horizon_months" json:"horizon_months"`
	AppreciationRate      decimal.Decimal       `yaml:"appreciation_rate" json:"appreciation_rate"`             // annual percent
	InvestmentReturnRate  decimal.Decimal       `yaml:"investment_return_rate" json:"investment_return_rate"`   // annual percent
	InvestmentCapital     decimal.Decimal       `yaml:"investment_capital,omitempty" json:"investment_capital"`
	Contribution          decimal.Decimal       `yaml:"contribution,omitempty" json:"contribution"`
	ContributionFrequency ContributionFrequency `yaml:"contribution_frequency,omitempty" json:"contribution_frequency"`
	InvestmentTaxRate     decimal.Decimal       `yaml:"investment_tax_rate,omitempty" json:"investment_tax_rate"` // percent
	BaselinePayment       *decimal.Decimal      `yaml:"baseline_payment,omitempty" json:"baseline_payment,omitempty"`
	Rent                  *decimal.Decimal      `yaml:"rent,omitempty" json:"rent,omitempty"`
	UseGlobalRent         bool                  `yaml:"use_global_rent,omitempty" json:"use_global_rent,omitempty"`
}

// ApplyDefaults fills enumeration defaults on the globals record.
func (g *Globals) ApplyDefaults() {
	if g.ContributionFrequency == "" {
		g.ContributionFrequency = Monthly
	}
}
