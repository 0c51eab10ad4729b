package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lysa-labs/lysa/internal/advisor"
	"github.com/lysa-labs/lysa/internal/completion"
	"github.com/lysa-labs/lysa/internal/models"
	"log/slog"
)

const (
	serviceName    = "Lysa Wealth Advisor"
	serviceVersion = "1.0.0"
)

// Handler serves the advisory API endpoints.
type Handler struct {
	advisor   *advisor.Advisor
	completer completion.Completer
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler creates the API handler. completer is used directly for the
// market summary endpoint; portfolio analysis goes through the advisor.
func NewHandler(adv *advisor.Advisor, completer completion.Completer, logger *slog.Logger) *Handler {
	return &Handler{
		advisor:   adv,
		completer: completer,
		logger:    logger,
		startTime: time.Now(),
	}
}

// errorResponse mirrors the {"detail": ...} error body of the original API.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service":     serviceName,
		"version":     serviceVersion,
		"description": "AI-powered investment advisory",
		"endpoints": map[string]string{
			"analyze_portfolio": "/analyze-portfolio",
			"health":            "/health",
			"market_summary":    "/market-summary",
		},
		"status": "running",
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"service":        serviceName,
		"version":        serviceVersion,
		"timestamp":      time.Now().Format(time.RFC3339),
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	})
}

// AnalyzePortfolio handles POST /analyze-portfolio
func (h *Handler) AnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	var req models.PortfolioAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
		return
	}

	if err := ValidateAnalysisRequest(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	analysisID := uuid.NewString()
	h.logger.Info("analyzing portfolio",
		"analysis_id", analysisID,
		"holdings", len(req.Holdings),
		"risk_tolerance", req.UserProfile.RiskTolerance)

	result, err := h.advisor.AnalyzePortfolio(r.Context(), req)
	if err != nil {
		h.logger.Error("portfolio analysis failed", "analysis_id", analysisID, "error", err)

		if errors.Is(err, completion.ErrAuthFailed) {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Invalid API key for completion service"})
			return
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Analysis service temporarily unavailable"})
		return
	}

	h.logger.Info("portfolio analysis completed",
		"analysis_id", analysisID,
		"recommendations", len(result.Recommendations),
		"diversification_score", result.DiversificationScore)

	respondJSON(w, http.StatusOK, result)
}

// MarketSummary handles GET /market-summary
func (h *Handler) MarketSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.completer.Complete(r.Context(), []completion.Message{
		{Role: completion.RoleSystem, Content: "You are a financial market analyst. Provide a concise market summary."},
		{Role: completion.RoleUser, Content: "Provide a brief summary of current market conditions and key trends."},
	}, "")
	if err != nil {
		h.logger.Error("market summary failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Market summary unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"summary":   summary,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// AssetTypes handles GET /asset-types
func (h *Handler) AssetTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"asset_types": models.AssetTypes(),
		"descriptions": map[models.AssetType]string{
			models.AssetTypeStock:      "Individual company stocks",
			models.AssetTypeBond:       "Government and corporate bonds",
			models.AssetTypeETF:        "Exchange-traded funds",
			models.AssetTypeCrypto:     "Cryptocurrency holdings",
			models.AssetTypeRealEstate: "Real estate investments",
			models.AssetTypeCommodity:  "Commodities like gold, oil, etc.",
			models.AssetTypeCash:       "Cash and cash equivalents",
		},
	})
}

// RiskProfiles handles GET /risk-profiles
func (h *Handler) RiskProfiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"risk_profiles": models.RiskTolerances(),
		"descriptions": map[models.RiskTolerance]string{
			models.RiskToleranceConservative: "Low risk, stable returns, capital preservation focus",
			models.RiskToleranceModerate:     "Balanced risk/return, moderate growth potential",
			models.RiskToleranceAggressive:   "Higher risk tolerance, growth-focused investments",
		},
	})
}

// InvestmentGoals handles GET /investment-goals
func (h *Handler) InvestmentGoals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"investment_goals": models.InvestmentGoals(),
		"descriptions": map[models.InvestmentGoal]string{
			models.GoalRetirement:          "Long-term retirement planning",
			models.GoalWealthBuilding:      "General wealth accumulation",
			models.GoalIncomeGeneration:    "Focus on dividend/income producing assets",
			models.GoalCapitalPreservation: "Protecting existing wealth",
			models.GoalEducation:           "Saving for education expenses",
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
