package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hec/home-equity-compass/internal/domain"
)

// Configuration is the top-level scenario file: shared globals plus the set
// of strategies to compare.
type Configuration struct {
	Globals   domain.Globals    `yaml:"globals" json:"globals"`
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// InputParser handles parsing of scenario configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML file, validates it, and
// resolves scenario defaults so the engine never sees unset optional fields.
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	config.Globals.ApplyDefaults()
	for i := range config.Scenarios {
		config.Scenarios[i].ApplyDefaults()
		config.Scenarios[i].EnsureID()
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration.
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	if err := ip.validateGlobals(&config.Globals); err != nil {
		return fmt.Errorf("globals validation failed: %w", err)
	}

	for i := range config.Scenarios {
		if err := ip.validateScenario(&config.Scenarios[i]); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateGlobals(g *domain.Globals) error {
	if g.HorizonMonths <= 0 {
		return fmt.Errorf("horizon must be positive, got %d months", g.HorizonMonths)
	}
	if g.HorizonMonths > 1200 {
		return fmt.Errorf("horizon cannot exceed 1200 months, got %d", g.HorizonMonths)
	}
	if err := ratePlausible("appreciation rate", g.AppreciationRate, -20, 30); err != nil {
		return err
	}
	if err := ratePlausible("investment return rate", g.InvestmentReturnRate, -20, 50); err != nil {
		return err
	}
	if g.InvestmentCapital.IsNegative() {
		return fmt.Errorf("investment capital cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.IsRentOnly && s.IsInvestmentOnly {
		return fmt.Errorf("scenario %q: rent-only and investment-only modes are mutually exclusive", s.Name)
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"home value", s.HomeValue},
		{"loan amount", s.LoanAmount},
		{"down payment", s.DownPayment},
		{"property tax", s.PropertyTax},
		{"home insurance", s.HomeInsurance},
		{"hoa", s.HOA},
		{"pmi", s.PMI},
		{"rent", s.RentMonthly},
		{"rental income", s.RentalIncome},
		{"investment capital", s.InvestmentCapital},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("scenario %q: %s cannot be negative", s.Name, a.name)
		}
	}

	if s.IncludesHome() && s.LoanAmount.IsPositive() && s.LoanTermYears <= 0 {
		return fmt.Errorf("scenario %q: loan term must be positive when a loan amount is set", s.Name)
	}
	if err := ratePlausible("interest rate", s.InterestRate, 0, 30); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	for i, l := range s.AdditionalLoans {
		if l.Balance.IsNegative() {
			return fmt.Errorf("scenario %q: additional loan %d balance cannot be negative", s.Name, i)
		}
		if l.Balance.IsPositive() && l.TermYears <= 0 {
			return fmt.Errorf("scenario %q: additional loan %d term must be positive", s.Name, i)
		}
		if err := ratePlausible("rate", l.Rate, 0, 30); err != nil {
			return fmt.Errorf("scenario %q: additional loan %d: %w", s.Name, i, err)
		}
	}

	if s.LumpSumMonth < 0 || s.LumpSumMonth > 11 {
		return fmt.Errorf("scenario %q: lump sum month must be between 0 and 11, got %d", s.Name, s.LumpSumMonth)
	}
	for month, amount := range s.ManualExtraPayments {
		if month < 1 {
			return fmt.Errorf("scenario %q: manual extra payment month must be at least 1, got %d", s.Name, month)
		}
		if amount.IsNegative() {
			return fmt.Errorf("scenario %q: manual extra payment for month %d cannot be negative", s.Name, month)
		}
	}

	percentages := []struct {
		name  string
		value decimal.Decimal
	}{
		{"rental income tax rate", s.RentalIncomeTaxRate},
		{"tax refund rate", s.TaxRefundRate},
		{"investment tax rate", s.InvestmentTaxRate},
		{"capital gains tax rate", s.CapitalGainsTaxRate},
		{"selling cost rate", s.SellingCostRate},
	}
	for _, p := range percentages {
		if p.value.IsNegative() || p.value.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("scenario %q: %s must be between 0 and 100", s.Name, p.name)
		}
	}

	return nil
}

func ratePlausible(name string, rate decimal.Decimal, min, max int64) error {
	if rate.LessThan(decimal.NewFromInt(min)) || rate.GreaterThan(decimal.NewFromInt(max)) {
		return fmt.Errorf("%s must be between %d%% and %d%%, got %s%%", name, min, max, rate.StringFixed(2))
	}
	return nil
}
