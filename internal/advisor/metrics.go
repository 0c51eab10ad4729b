package advisor

import (
	"errors"
	"math"

	"github.com/lysa-labs/lysa/internal/models"
)

// ErrInvalidPortfolio marks a holding set whose total purchase cost is zero.
// Metrics are unavailable for such portfolios; callers substitute the neutral
// diversification score and continue.
var ErrInvalidPortfolio = errors.New("invalid portfolio data")

// neutralDiversificationScore is used downstream when metrics are unavailable.
const neutralDiversificationScore = 5.0

// CalculateMetrics derives portfolio statistics from a set of holdings.
//
// The diversification score is a simplified Herfindahl index over asset-type
// allocation: fully concentrated in one type scores 0, spreading evenly across
// N types approaches 10*(1-1/N).
func CalculateMetrics(holdings []models.Holding) (models.PortfolioMetrics, error) {
	var totalValue, totalCost float64
	for _, h := range holdings {
		totalValue += h.MarketValue()
		totalCost += h.CostBasis()
	}

	if totalCost == 0 {
		return models.PortfolioMetrics{}, ErrInvalidPortfolio
	}

	totalReturn := (totalValue - totalCost) / totalCost * 100

	allocation := make(map[models.AssetType]float64)
	for _, h := range holdings {
		allocation[h.AssetType] += h.MarketValue() / totalValue * 100
	}

	concentration := 0.0
	for _, weight := range allocation {
		concentration += (weight / 100) * (weight / 100)
	}
	diversification := math.Max(0, math.Min(10, (1-concentration)*10))

	return models.PortfolioMetrics{
		TotalValue:           totalValue,
		TotalReturnPct:       totalReturn,
		AssetAllocation:      allocation,
		DiversificationScore: diversification,
		HoldingCount:         len(holdings),
	}, nil
}
