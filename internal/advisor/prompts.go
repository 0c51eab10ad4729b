package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/lysa-labs/lysa/internal/models"
)

// PromptTemplates holds the system persona and analysis prompt builder for the
// completion collaborator.
type PromptTemplates struct {
	SystemPrompt string
}

// NewPromptTemplates creates the default advisory prompts.
func NewPromptTemplates() *PromptTemplates {
	return &PromptTemplates{SystemPrompt: buildSystemPrompt()}
}

func buildSystemPrompt() string {
	return `You are Lysa Wealth Advisor, an elite AI investment consultant with expertise in:
- Modern Portfolio Theory and asset allocation
- Risk management and diversification strategies
- Market analysis and trend identification
- Tax-efficient investing strategies
- Behavioral finance principles

Provide comprehensive, personalized investment advice based on the user's profile and current holdings.
Be specific, actionable, and consider both quantitative metrics and qualitative factors.
Always emphasize risk management and long-term wealth building principles.

FORMAT YOUR RESPONSE AS FOLLOWS:

1. Start with a brief executive summary paragraph
2. Use clear section headers with ## markdown syntax
3. Use bullet points (- ) for lists of recommendations
4. Be specific and actionable
5. Include numerical data where relevant

Your response will be parsed, so structure it clearly with:
- A RECOMMENDATIONS section with bullet points
- A RISK ASSESSMENT section
- NEXT STEPS section with action items`
}

// holdingSummary is the per-position digest embedded in the analysis prompt.
type holdingSummary struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	ReturnPct float64 `json:"return_pct"`
}

// portfolioSummary is the JSON document the model analyzes.
type portfolioSummary struct {
	UserProfile      models.UserProfile `json:"user_profile"`
	PortfolioMetrics any                `json:"portfolio_metrics"`
	Holdings         []holdingSummary   `json:"holdings"`
}

// BuildAnalysisPrompt assembles the user prompt: the profile, computed
// metrics, per-holding summaries, and any extra context, followed by the
// section layout the extractor expects. metrics is nil when the portfolio
// data was invalid.
func (p *PromptTemplates) BuildAnalysisPrompt(req models.PortfolioAnalysisRequest, metrics *models.PortfolioMetrics) string {
	summary := portfolioSummary{
		UserProfile: req.UserProfile,
		Holdings:    make([]holdingSummary, 0, len(req.Holdings)),
	}

	if metrics != nil {
		summary.PortfolioMetrics = metrics
	} else {
		summary.PortfolioMetrics = map[string]string{"error": "Invalid portfolio data"}
	}

	for _, h := range req.Holdings {
		summary.Holdings = append(summary.Holdings, holdingSummary{
			Symbol:    h.Symbol,
			Name:      h.Name,
			Type:      string(h.AssetType),
			Value:     h.MarketValue(),
			ReturnPct: h.ReturnPct(),
		})
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		// The summary is built from plain values; marshaling cannot fail in
		// practice, but the prompt should still carry something useful.
		summaryJSON = []byte("{}")
	}

	context := req.AdditionalContext
	if context == "" {
		context = "No additional context provided"
	}

	return fmt.Sprintf(`Analyze this investment portfolio and provide comprehensive advice:

PORTFOLIO DATA:
%s

ADDITIONAL CONTEXT:
%s

Please provide a structured analysis with the following sections:

## EXECUTIVE SUMMARY
Brief overview of the portfolio's current state

## PORTFOLIO ANALYSIS
Detailed analysis of holdings, performance, and allocation

## RECOMMENDATIONS
- [List 4-6 specific, actionable recommendations as bullet points]

## RISK ASSESSMENT
Detailed risk analysis considering user's profile and current holdings

## NEXT STEPS
- [List 4-5 immediate action items as bullet points]

Consider the user's age (%d), risk tolerance (%s), goals, and time horizon (%d years) in your analysis.`,
		summaryJSON, context, req.UserProfile.Age, req.UserProfile.RiskTolerance, req.UserProfile.TimeHorizon)
}
