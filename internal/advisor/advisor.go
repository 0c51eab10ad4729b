package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lysa-labs/lysa/internal/completion"
	"github.com/lysa-labs/lysa/internal/models"
	"log/slog"
)

// defaultConfidenceScore is a fixed score attached to every response; it is
// not derived from the data.
const defaultConfidenceScore = 0.85

// Advisor orchestrates a portfolio analysis: deterministic metrics, one
// completion call, heuristic extraction of the reply, and the rule-based
// allocation suggestion.
type Advisor struct {
	completer completion.Completer
	prompts   *PromptTemplates
	model     string
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an Advisor using the given completion collaborator. model is
// the completion model identifier passed on every call.
func New(completer completion.Completer, model string, logger *slog.Logger) *Advisor {
	return &Advisor{
		completer: completer,
		prompts:   NewPromptTemplates(),
		model:     model,
		logger:    logger,
		now:       time.Now,
	}
}

// AnalyzePortfolio runs the full advisory pipeline for one request. A failed
// completion call is propagated as-is; no partial response is returned. The
// structured sub-fields always carry content thanks to the extractor's
// fallbacks.
func (a *Advisor) AnalyzePortfolio(ctx context.Context, req models.PortfolioAnalysisRequest) (*models.AdvisorResponse, error) {
	var metricsPtr *models.PortfolioMetrics
	diversification := neutralDiversificationScore

	metrics, err := CalculateMetrics(req.Holdings)
	if err != nil {
		if !errors.Is(err, ErrInvalidPortfolio) {
			return nil, fmt.Errorf("calculate metrics: %w", err)
		}
		a.logger.Warn("portfolio metrics unavailable, using neutral diversification score",
			"holdings", len(req.Holdings))
	} else {
		metricsPtr = &metrics
		diversification = metrics.DiversificationScore
	}

	prompt := a.prompts.BuildAnalysisPrompt(req, metricsPtr)

	analysis, err := a.completer.Complete(ctx, []completion.Message{
		{Role: completion.RoleSystem, Content: a.prompts.SystemPrompt},
		{Role: completion.RoleUser, Content: prompt},
	}, a.model)
	if err != nil {
		return nil, fmt.Errorf("portfolio analysis: %w", err)
	}

	return &models.AdvisorResponse{
		Analysis:             analysis,
		Recommendations:      ExtractRecommendations(analysis),
		RiskAssessment:       ExtractRiskAssessment(analysis),
		DiversificationScore: diversification,
		SuggestedAllocations: SuggestAllocation(req.UserProfile),
		NextSteps:            ExtractNextSteps(analysis),
		ConfidenceScore:      defaultConfidenceScore,
		Timestamp:            a.now(),
	}, nil
}
