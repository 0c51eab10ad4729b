package advisor

import (
	"math"

	"github.com/lysa-labs/lysa/internal/models"
)

// SuggestAllocation produces a target {stocks, bonds, alternatives} split from
// the investor's age and risk tolerance.
//
// The base stock weight follows the (100 - age) rule of thumb clamped to
// [20, 90], then shifts by risk tolerance. Percentages are rounded to one
// decimal and are not re-normalized, so the split may not sum to exactly 100.
func SuggestAllocation(profile models.UserProfile) map[string]float64 {
	stockBase := math.Max(20, math.Min(90, float64(100-profile.Age)))

	var stockPct, bondPct float64
	switch profile.RiskTolerance {
	case models.RiskToleranceConservative:
		stockPct = math.Max(20, stockBase-20)
		bondPct = math.Min(70, 100-stockPct-10)
	case models.RiskToleranceAggressive:
		stockPct = math.Min(90, stockBase+20)
		bondPct = math.Max(5, 100-stockPct-15)
	default: // moderate
		stockPct = stockBase
		bondPct = math.Max(15, 100-stockPct-10)
	}

	otherPct := math.Max(5, 100-stockPct-bondPct)

	return map[string]float64{
		"stocks":       round1(stockPct),
		"bonds":        round1(bondPct),
		"alternatives": round1(otherPct),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
