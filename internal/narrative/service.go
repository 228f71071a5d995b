// Package narrative turns a scenario comparison into a plain-language
// assessment using Gemini. It is an optional layer over the projection
// engine; nothing in the engine depends on it.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hec/home-equity-compass/internal/domain"
	moneyfmt "github.com/hec/home-equity-compass/pkg/decimal"
)

const model = "gemini-2.5-pro"

// Service wraps a Gemini chat session seeded with a housing-finance
// system instruction.
type Service struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewService creates an analysis service with the default model and
// system instruction.
func NewService() *Service {
	return &Service{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a personal-finance analyst reviewing long-horizon housing
			projections. You will be given per-scenario summaries: total cash
			outflow, liquid net worth after a hypothetical sale, profit, and
			effective annual return.

			Explain in plain language which strategy comes out ahead and why,
			what assumptions drive the ranking (appreciation, investment
			return, rent growth), and which assumption changes would flip it.
			Do not invent numbers that are not in the summaries. Keep the
			response under four paragraphs.
		`}}},
		},
	}
}

// Start opens the chat session. It must be called once before Analyze.
func (s *Service) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, s.ModelName, s.Config, nil)
	if err != nil {
		return err
	}
	s.chat = chat
	return nil
}

// Analyze sends the comparison to the model and returns its assessment.
func (s *Service) Analyze(ctx context.Context, comparison *domain.ScenarioComparison) (string, error) {
	if s.chat == nil {
		return "", fmt.Errorf("narrative service not started")
	}

	resp, err := s.chat.Send(ctx, &genai.Part{Text: comparisonPrompt(comparison)})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// comparisonPrompt renders the comparison as the user turn of the chat.
func comparisonPrompt(c *domain.ScenarioComparison) string {
	var b strings.Builder
	years := c.HorizonMonths / 12
	fmt.Fprintf(&b, "Projection horizon: %d months (%d years).\n\n", c.HorizonMonths, years)

	for _, s := range c.Scenarios {
		fmt.Fprintf(&b, "Scenario %q (%s):\n", s.Name, s.Mode)
		fmt.Fprintf(&b, "  total cash outflow: %s\n", moneyfmt.NewMoneyFromDecimal(s.TotalOutOfPocket).Format())
		fmt.Fprintf(&b, "  liquid net worth after sale: %s\n", moneyfmt.NewMoneyFromDecimal(s.Result.LiquidNetWorth).Format())
		fmt.Fprintf(&b, "  profit: %s\n", moneyfmt.NewMoneyFromDecimal(s.Profit).Format())
		fmt.Fprintf(&b, "  effective annual return: %s\n\n", moneyfmt.FormatPercent(s.EffectiveAnnualReturn))
	}

	if c.BestProfit != "" {
		fmt.Fprintf(&b, "Highest profit: %s. Lowest net cost: %s.\n", c.BestProfit, c.LowestNetCost)
	}
	for _, k := range c.KeyConsiderations {
		fmt.Fprintf(&b, "Note: %s\n", k)
	}

	b.WriteString("\nPlease assess these strategies.")
	return b.String()
}
