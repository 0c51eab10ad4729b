package models

import "time"

// AssetType classifies a portfolio holding.
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeBond       AssetType = "bond"
	AssetTypeETF        AssetType = "etf"
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeRealEstate AssetType = "real_estate"
	AssetTypeCommodity  AssetType = "commodity"
	AssetTypeCash       AssetType = "cash"
)

// AssetTypes lists every supported asset type in catalog order.
func AssetTypes() []AssetType {
	return []AssetType{
		AssetTypeStock,
		AssetTypeBond,
		AssetTypeETF,
		AssetTypeCrypto,
		AssetTypeRealEstate,
		AssetTypeCommodity,
		AssetTypeCash,
	}
}

// Valid reports whether the asset type is one of the supported values.
func (a AssetType) Valid() bool {
	for _, t := range AssetTypes() {
		if a == t {
			return true
		}
	}
	return false
}

// RiskTolerance describes how much volatility an investor accepts.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "conservative"
	RiskToleranceModerate     RiskTolerance = "moderate"
	RiskToleranceAggressive   RiskTolerance = "aggressive"
)

// RiskTolerances lists every supported risk tolerance profile.
func RiskTolerances() []RiskTolerance {
	return []RiskTolerance{
		RiskToleranceConservative,
		RiskToleranceModerate,
		RiskToleranceAggressive,
	}
}

// Valid reports whether the risk tolerance is a supported value.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskToleranceConservative, RiskToleranceModerate, RiskToleranceAggressive:
		return true
	}
	return false
}

// InvestmentGoal describes what the investor is saving toward.
type InvestmentGoal string

const (
	GoalRetirement          InvestmentGoal = "retirement"
	GoalWealthBuilding      InvestmentGoal = "wealth_building"
	GoalIncomeGeneration    InvestmentGoal = "income_generation"
	GoalCapitalPreservation InvestmentGoal = "capital_preservation"
	GoalEducation           InvestmentGoal = "education"
)

// InvestmentGoals lists every supported investment goal.
func InvestmentGoals() []InvestmentGoal {
	return []InvestmentGoal{
		GoalRetirement,
		GoalWealthBuilding,
		GoalIncomeGeneration,
		GoalCapitalPreservation,
		GoalEducation,
	}
}

// Valid reports whether the goal is a supported value.
func (g InvestmentGoal) Valid() bool {
	for _, goal := range InvestmentGoals() {
		if g == goal {
			return true
		}
	}
	return false
}

// Experience levels accepted for UserProfile.InvestmentExperience.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Holding is a single position in a portfolio. Holdings are built from the
// inbound request and never mutated afterwards.
type Holding struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	AssetType     AssetType `json:"asset_type"`
	Quantity      float64   `json:"quantity"`
	CurrentPrice  float64   `json:"current_price"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  string    `json:"purchase_date"` // YYYY-MM-DD
}

// MarketValue returns the holding's current value.
func (h Holding) MarketValue() float64 {
	return h.Quantity * h.CurrentPrice
}

// CostBasis returns what was paid for the holding.
func (h Holding) CostBasis() float64 {
	return h.Quantity * h.PurchasePrice
}

// ReturnPct returns the holding's gain or loss as a percentage of cost.
// Holdings with no recorded purchase price report zero return; the value must
// stay finite so it can be embedded in JSON.
func (h Holding) ReturnPct() float64 {
	if h.PurchasePrice == 0 {
		return 0
	}
	return (h.CurrentPrice - h.PurchasePrice) / h.PurchasePrice * 100
}

// UserProfile captures the investor's financial situation and preferences.
type UserProfile struct {
	Age                  int              `json:"age"`
	AnnualIncome         float64          `json:"annual_income"`
	InvestmentExperience string           `json:"investment_experience"`
	RiskTolerance        RiskTolerance    `json:"risk_tolerance"`
	InvestmentGoals      []InvestmentGoal `json:"investment_goals"`
	TimeHorizon          int              `json:"time_horizon"` // years
	LiquidityNeeds       float64          `json:"liquidity_needs"`
}

// PortfolioAnalysisRequest is the body of POST /analyze-portfolio.
type PortfolioAnalysisRequest struct {
	UserProfile       UserProfile `json:"user_profile"`
	Holdings          []Holding   `json:"holdings"`
	AdditionalContext string      `json:"additional_context,omitempty"`
}

// PortfolioMetrics holds derived portfolio statistics, recomputed on every
// analysis request.
type PortfolioMetrics struct {
	TotalValue           float64               `json:"total_value"`
	TotalReturnPct       float64               `json:"total_return_pct"`
	AssetAllocation      map[AssetType]float64 `json:"asset_allocation"`
	DiversificationScore float64               `json:"diversification_score"`
	HoldingCount         int                   `json:"num_holdings"`
}

// AdvisorResponse is the structured advisory result returned to the caller.
// It is assembled once per request and never persisted.
type AdvisorResponse struct {
	Analysis             string             `json:"analysis"`
	Recommendations      []string           `json:"recommendations"`
	RiskAssessment       string             `json:"risk_assessment"`
	DiversificationScore float64            `json:"diversification_score"`
	SuggestedAllocations map[string]float64 `json:"suggested_allocations"`
	NextSteps            []string           `json:"next_steps"`
	ConfidenceScore      float64            `json:"confidence_score"`
	Timestamp            time.Time          `json:"timestamp"`
}
