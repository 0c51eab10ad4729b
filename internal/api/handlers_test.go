package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lysa-labs/lysa/internal/advisor"
	"github.com/lysa-labs/lysa/internal/completion"
	"github.com/lysa-labs/lysa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, completer completion.Completer) http.Handler {
	t.Helper()
	adv := advisor.New(completer, "test-model", testLogger())
	handler := NewHandler(adv, completer, testLogger())
	return NewRouter(handler, nil, testLogger())
}

func validRequestBody() map[string]any {
	return map[string]any{
		"user_profile": map[string]any{
			"age":                   35,
			"annual_income":         95000,
			"investment_experience": "intermediate",
			"risk_tolerance":        "moderate",
			"investment_goals":      []string{"retirement", "wealth_building"},
			"time_horizon":          20,
			"liquidity_needs":       15,
		},
		"holdings": []map[string]any{
			{
				"symbol":         "VTI",
				"name":           "Vanguard Total Stock Market ETF",
				"asset_type":     "etf",
				"quantity":       25,
				"current_price":  220.5,
				"purchase_price": 195.0,
				"purchase_date":  "2023-03-10",
			},
			{
				"symbol":         "BND",
				"name":           "Vanguard Total Bond Market ETF",
				"asset_type":     "bond",
				"quantity":       40,
				"current_price":  72.3,
				"purchase_price": 75.1,
				"purchase_date":  "2022-08-22",
			},
		},
		"additional_context": "Saving toward early retirement",
	}
}

func postAnalyze(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/analyze-portfolio", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzePortfolioEndpoint(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	rec := postAnalyze(t, router, validRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.AdvisorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Analysis)
	assert.NotEmpty(t, resp.Recommendations)
	assert.NotEmpty(t, resp.NextSteps)
	assert.GreaterOrEqual(t, len(resp.RiskAssessment), 50)
	assert.GreaterOrEqual(t, resp.DiversificationScore, 0.0)
	assert.LessOrEqual(t, resp.DiversificationScore, 10.0)
	assert.Equal(t, 0.85, resp.ConfidenceScore)
	assert.False(t, resp.Timestamp.IsZero())

	for _, key := range []string{"stocks", "bonds", "alternatives"} {
		assert.Contains(t, resp.SuggestedAllocations, key)
	}
}

func TestAnalyzePortfolioInvalidBody(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	req := httptest.NewRequest(http.MethodPost, "/analyze-portfolio", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request body", resp["detail"])
}

func TestAnalyzePortfolioValidationErrors(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	tests := []struct {
		name   string
		mutate func(body map[string]any)
		detail string
	}{
		{
			name: "underage investor",
			mutate: func(body map[string]any) {
				body["user_profile"].(map[string]any)["age"] = 12
			},
			detail: "age",
		},
		{
			name: "no holdings",
			mutate: func(body map[string]any) {
				body["holdings"] = []map[string]any{}
			},
			detail: "holdings",
		},
		{
			name: "bad asset type",
			mutate: func(body map[string]any) {
				body["holdings"].([]map[string]any)[1]["asset_type"] = "tulips"
			},
			detail: "holdings[1].asset_type",
		},
		{
			name: "bad purchase date",
			mutate: func(body map[string]any) {
				body["holdings"].([]map[string]any)[0]["purchase_date"] = "10/03/2023"
			},
			detail: "holdings[0].purchase_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validRequestBody()
			tt.mutate(body)

			rec := postAnalyze(t, router, body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp["detail"], tt.detail)
		})
	}
}

func TestAnalyzePortfolioAuthFailure(t *testing.T) {
	router := newTestRouter(t, &completion.MockCompleter{Err: completion.ErrAuthFailed})

	rec := postAnalyze(t, router, validRequestBody())
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid API key for completion service", resp["detail"])
}

func TestAnalyzePortfolioServiceUnavailable(t *testing.T) {
	failure := fmt.Errorf("%w after 3 attempts: timeout", completion.ErrUnavailable)
	router := newTestRouter(t, &completion.MockCompleter{Err: failure})

	rec := postAnalyze(t, router, validRequestBody())
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Analysis service temporarily unavailable", resp["detail"])
}

func TestRoot(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Lysa Wealth Advisor", resp["service"])
	assert.Equal(t, "running", resp["status"])
	assert.Contains(t, resp["endpoints"], "analyze_portfolio")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "Lysa Wealth Advisor", resp["service"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestMarketSummary(t *testing.T) {
	router := newTestRouter(t, &completion.MockCompleter{Reply: "Markets are mixed with rates in focus."})

	req := httptest.NewRequest(http.MethodGet, "/market-summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Markets are mixed with rates in focus.", resp["summary"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestMarketSummaryFailure(t *testing.T) {
	router := newTestRouter(t, &completion.MockCompleter{Err: completion.ErrUnavailable})

	req := httptest.NewRequest(http.MethodGet, "/market-summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	router := newTestRouter(t, completion.NewMockCompleter())

	t.Run("asset types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/asset-types", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			AssetTypes   []string          `json:"asset_types"`
			Descriptions map[string]string `json:"descriptions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.AssetTypes, 7)
		assert.Contains(t, resp.AssetTypes, "stock")
		assert.Len(t, resp.Descriptions, 7)
	})

	t.Run("risk profiles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/risk-profiles", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			RiskProfiles []string `json:"risk_profiles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.ElementsMatch(t, []string{"conservative", "moderate", "aggressive"}, resp.RiskProfiles)
	})

	t.Run("investment goals", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/investment-goals", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			InvestmentGoals []string `json:"investment_goals"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.InvestmentGoals, 5)
		assert.Contains(t, resp.InvestmentGoals, "retirement")
	})
}
