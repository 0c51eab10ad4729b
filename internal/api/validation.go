package api

import (
	"fmt"
	"time"

	"github.com/lysa-labs/lysa/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAnalysisRequest validates a portfolio analysis request body.
func ValidateAnalysisRequest(req *models.PortfolioAnalysisRequest) error {
	if err := ValidateUserProfile(&req.UserProfile); err != nil {
		return err
	}

	if len(req.Holdings) == 0 {
		return ValidationError{Field: "holdings", Message: "At least one holding is required"}
	}

	for i, holding := range req.Holdings {
		if err := ValidateHolding(&holding); err != nil {
			if verr, ok := err.(ValidationError); ok {
				return ValidationError{
					Field:   fmt.Sprintf("holdings[%d].%s", i, verr.Field),
					Message: verr.Message,
				}
			}
			return err
		}
	}

	return nil
}

// ValidateHolding validates a single portfolio holding.
func ValidateHolding(h *models.Holding) error {
	if h.Symbol == "" {
		return ValidationError{Field: "symbol", Message: "Symbol is required"}
	}

	if h.Name == "" {
		return ValidationError{Field: "name", Message: "Name is required"}
	}

	if !h.AssetType.Valid() {
		return ValidationError{Field: "asset_type", Message: "Invalid asset type"}
	}

	if h.Quantity <= 0 {
		return ValidationError{Field: "quantity", Message: "Quantity must be greater than zero"}
	}

	if h.CurrentPrice <= 0 {
		return ValidationError{Field: "current_price", Message: "Current price must be greater than zero"}
	}

	if h.PurchasePrice <= 0 {
		return ValidationError{Field: "purchase_price", Message: "Purchase price must be greater than zero"}
	}

	if _, err := time.Parse("2006-01-02", h.PurchaseDate); err != nil {
		return ValidationError{Field: "purchase_date", Message: "Date must be in YYYY-MM-DD format"}
	}

	return nil
}

// ValidateUserProfile validates the investor profile.
func ValidateUserProfile(p *models.UserProfile) error {
	// Validate age (18 - 100)
	if p.Age < 18 || p.Age > 100 {
		return ValidationError{Field: "age", Message: "Age must be between 18 and 100"}
	}

	if p.AnnualIncome <= 0 {
		return ValidationError{Field: "annual_income", Message: "Annual income must be greater than zero"}
	}

	switch p.InvestmentExperience {
	case models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceAdvanced:
	default:
		return ValidationError{Field: "investment_experience", Message: "Experience must be beginner, intermediate, or advanced"}
	}

	if !p.RiskTolerance.Valid() {
		return ValidationError{Field: "risk_tolerance", Message: "Invalid risk tolerance"}
	}

	for _, goal := range p.InvestmentGoals {
		if !goal.Valid() {
			return ValidationError{Field: "investment_goals", Message: fmt.Sprintf("Invalid investment goal %q", goal)}
		}
	}

	// Validate time horizon (1 - 50 years)
	if p.TimeHorizon < 1 || p.TimeHorizon > 50 {
		return ValidationError{Field: "time_horizon", Message: "Time horizon must be between 1 and 50 years"}
	}

	if p.LiquidityNeeds < 0 {
		return ValidationError{Field: "liquidity_needs", Message: "Liquidity needs cannot be negative"}
	}

	return nil
}
