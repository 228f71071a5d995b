package output

import (
	"bytes"
	"fmt"

	"github.com/hec/home-equity-compass/internal/domain"
)

// ConsoleFormatter provides a concise console-style summary via the formatter
// interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOME FINANCE STRATEGY COMPARISON")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Horizon: %d months\n", results.HorizonMonths)
	fmt.Fprintln(&buf)

	for _, sc := range results.Scenarios {
		fmt.Fprintf(&buf, "%s [%s]\n", sc.Name, sc.Mode)
		fmt.Fprintf(&buf, "  Profit=%s NetWorth=%s NetCost=%s\n",
			FormatCurrency(sc.Profit), FormatCurrency(sc.NetWorth), FormatCurrency(sc.NetCost))
		fmt.Fprintf(&buf, "  OutOfPocket=%s AnnualReturn=%s\n",
			FormatCurrency(sc.TotalOutOfPocket), FormatPercentage(sc.EffectiveAnnualReturn))
		if r := sc.Result; r != nil {
			fmt.Fprintf(&buf, "  FinalHomeValue=%s RemainingDebt=%s Investments=%s\n",
				FormatCurrency(r.FutureHomeValue), FormatCurrency(r.RemainingBalance), FormatCurrency(r.InvestmentBalance))
			if payoff := r.PayoffMonth(); payoff > 0 {
				fmt.Fprintf(&buf, "  Primary loan paid off in month %d\n", payoff)
			}
		}
		fmt.Fprintln(&buf)
	}

	if results.BestProfit != "" {
		fmt.Fprintf(&buf, "Best profit: %s\n", results.BestProfit)
	}
	if results.LowestNetCost != "" {
		fmt.Fprintf(&buf, "Lowest net cost: %s\n", results.LowestNetCost)
	}
	for _, note := range results.KeyConsiderations {
		fmt.Fprintf(&buf, "  - %s\n", note)
	}
	return buf.Bytes(), nil
}
