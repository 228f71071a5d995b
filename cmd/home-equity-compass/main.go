package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/hec/home-equity-compass/internal/calculation"
	"github.com/hec/home-equity-compass/internal/config"
	"github.com/hec/home-equity-compass/internal/domain"
	"github.com/hec/home-equity-compass/internal/narrative"
	"github.com/hec/home-equity-compass/internal/output"
	"github.com/hec/home-equity-compass/internal/propertydata"
	moneyfmt "github.com/hec/home-equity-compass/pkg/decimal"
)

var (
	configFile   string
	outputFormat string
	outputDir    string
	verbose      bool
)

// stderrLogger routes engine diagnostics to stderr when -v is set.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

func main() {
	rootCmd := &cobra.Command{
		Use:   "home-equity-compass",
		Short: "Long-horizon home finance projections",
		Long: `Home Equity Compass projects buy, refinance, rent, and pure-investment
strategies month by month over a shared horizon and compares where each
leaves you: total cash out of pocket, liquid net worth after a hypothetical
sale, and effective annual return.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to scenario configuration YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose engine logging to stderr")

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project all configured scenarios and emit a report",
		RunE:  runProject,
	}
	projectCmd.Flags().StringVarP(&outputFormat, "format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.FormatNames(), ", ")))
	projectCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to a file in this directory instead of stdout")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare scenarios and report the break-even appreciation rate",
		RunE:  runCompare,
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch <listing-url>",
		Short: "Fetch property facts for a listing and preview the merge",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	fetchCmd.Flags().String("service", "http://localhost:8080", "Base URL of the property-data extraction service")
	fetchCmd.Flags().String("scenario", "", "Merge the fetched facts into this scenario from the config")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Generate a plain-language assessment of the comparison with Gemini",
		RunE:  runAnalyze,
	}

	rootCmd.AddCommand(projectCmd, compareCmd, fetchCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newEngine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if verbose {
		engine.SetLogger(stderrLogger{})
	}
	return engine
}

func loadConfiguration() (*config.Configuration, error) {
	if configFile == "" {
		return nil, fmt.Errorf("no configuration file specified (use -c)")
	}
	return config.NewInputParser().LoadFromFile(configFile)
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(outputFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", outputFormat, strings.Join(output.FormatNames(), ", "))
	}

	comparison := newEngine().CompareScenarios(cfg.Scenarios, cfg.Globals)

	if outputDir != "" {
		path, err := output.WriteFormatted(formatter, comparison, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Format(comparison)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	engine := newEngine()
	comparison := engine.CompareScenarios(cfg.Scenarios, cfg.Globals)

	data, err := output.GetFormatterByName("console").Format(comparison)
	if err != nil {
		return err
	}
	os.Stdout.Write(data)

	buy, reference := breakEvenPair(cfg.Scenarios)
	if buy == nil || reference == nil {
		return nil
	}
	rate, err := engine.BreakEvenAppreciationRate(*buy, *reference, cfg.Globals)
	if err != nil {
		fmt.Printf("\nBreak-even appreciation rate: not found (%v)\n", err)
		return nil
	}
	fmt.Printf("\nBreak-even appreciation rate for %q vs %q: %s\n",
		buy.Name, reference.Name, moneyfmt.FormatPercent(rate))
	return nil
}

// breakEvenPair picks the first home-owning scenario and the first scenario
// without a home to compare it against.
func breakEvenPair(scenarios []domain.Scenario) (buy, reference *domain.Scenario) {
	for i := range scenarios {
		s := &scenarios[i]
		if s.IncludesHome() {
			if buy == nil {
				buy = s
			}
		} else if reference == nil {
			reference = s
		}
	}
	return buy, reference
}

func runFetch(cmd *cobra.Command, args []string) error {
	serviceURL, _ := cmd.Flags().GetString("service")
	scenarioName, _ := cmd.Flags().GetString("scenario")

	client := propertydata.NewClient(&propertydata.Options{BaseURL: serviceURL, MaxRetries: 3})
	facts, err := client.Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printFact := func(label string, d interface{ String() string }) {
		fmt.Printf("  %-15s %s\n", label, d.String())
	}
	fmt.Println("Fetched property facts:")
	if facts.HomeValue != nil {
		printFact("home value:", facts.HomeValue)
	}
	if facts.PropertyTax != nil {
		printFact("property tax:", facts.PropertyTax)
	}
	if facts.HomeInsurance != nil {
		printFact("insurance:", facts.HomeInsurance)
	}
	if facts.HOA != nil {
		printFact("hoa:", facts.HOA)
	}

	if scenarioName == "" {
		return nil
	}
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name == scenarioName {
			changed := propertydata.Merge(&cfg.Scenarios[i], facts)
			fmt.Printf("\nWould update %q: %s\n", scenarioName, strings.Join(changed, ", "))
			return nil
		}
	}
	return fmt.Errorf("scenario %q not found in %s", scenarioName, configFile)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	comparison := newEngine().CompareScenarios(cfg.Scenarios, cfg.Globals)

	ctx := context.Background()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("initializing Gemini client: %w", err)
	}

	svc := narrative.NewService()
	if err := svc.Start(ctx, client); err != nil {
		return err
	}
	text, err := svc.Analyze(ctx, comparison)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
