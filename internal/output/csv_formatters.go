package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/hec/home-equity-compass/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per
// scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Mode", "Profit", "NetWorth", "NetCost", "OutOfPocket", "EffectiveAnnualReturn", "FinalHomeValue", "RemainingDebt", "InvestmentBalance", "TotalInterest", "CapitalGainsTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		row := []string{
			sc.Name,
			sc.Mode,
			sc.Profit.StringFixed(2),
			sc.NetWorth.StringFixed(2),
			sc.NetCost.StringFixed(2),
			sc.TotalOutOfPocket.StringFixed(2),
			sc.EffectiveAnnualReturn.StringFixed(2),
		}
		if r := sc.Result; r != nil {
			row = append(row,
				r.FutureHomeValue.StringFixed(2),
				r.RemainingBalance.StringFixed(2),
				r.InvestmentBalance.StringFixed(2),
				r.TotalInterest.StringFixed(2),
				r.CapitalGainsTax.StringFixed(2),
			)
		} else {
			row = append(row, "", "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVScheduleExporter emits the full month-by-month amortization schedule of
// every scenario, one row per scenario-month.
type CSVScheduleExporter struct{}

func (c CSVScheduleExporter) Name() string      { return "schedule-csv" }
func (c CSVScheduleExporter) Extension() string { return "csv" }

func (c CSVScheduleExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "Date", "Payment", "Interest", "Principal", "Extra", "PrimaryBalance", "TotalDebt", "CumulativeInterest"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		for _, p := range sc.Result.AmortizationSchedule {
			row := []string{
				sc.Name,
				strconv.Itoa(p.Month),
				p.Date.Format("2006-01-02"),
				p.Payment.StringFixed(2),
				p.Interest.StringFixed(2),
				p.Principal.StringFixed(2),
				p.Extra.StringFixed(2),
				p.PrimaryBalance.StringFixed(2),
				p.TotalDebt.StringFixed(2),
				p.CumulativeInterest.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
