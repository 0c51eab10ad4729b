package advisor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extraction limits. The caps and the minimum risk-assessment length are
// carried over from the prompt contract; the model is asked for 4-6
// recommendations and 4-5 next steps.
const (
	maxRecommendations      = 6
	maxNextSteps            = 5
	minRiskAssessmentChars  = 50
	recommendationsToken    = "RECOMMENDATION"
	nextStepsToken          = "NEXT STEP"
	riskAssessmentToken     = "RISK ASSESSMENT"
)

// sectionState drives the line scanner through a single extraction pass.
type sectionState int

const (
	seekingHeader sectionState = iota
	capturing
	done
)

// ExtractRecommendations pulls the bullet items under the RECOMMENDATIONS
// header. When the reply carries no usable section, a fixed set of generic
// recommendations is returned instead; the result is never empty.
func ExtractRecommendations(text string) []string {
	items := captureBullets(text, recommendationsToken)
	if len(items) == 0 {
		items = []string{
			"Diversify holdings across multiple asset classes",
			"Rebalance portfolio to match target allocation",
			"Review and adjust based on market conditions",
			"Consider tax-loss harvesting opportunities",
			"Maintain emergency fund before investing",
		}
	}
	if len(items) > maxRecommendations {
		items = items[:maxRecommendations]
	}
	return items
}

// ExtractNextSteps pulls the bullet items under the NEXT STEPS header, with
// the same fallback contract as ExtractRecommendations.
func ExtractNextSteps(text string) []string {
	items := captureBullets(text, nextStepsToken)
	if len(items) == 0 {
		items = []string{
			"Review and rebalance portfolio quarterly",
			"Set up automated contributions if possible",
			"Monitor holdings for significant changes",
			"Reassess goals and risk tolerance annually",
		}
	}
	if len(items) > maxNextSteps {
		items = items[:maxNextSteps]
	}
	return items
}

// ExtractRiskAssessment joins the prose under the RISK ASSESSMENT header into
// a single block. Empty or very short sections degrade to a fixed sentence.
func ExtractRiskAssessment(text string) string {
	var collected []string
	state := seekingHeader

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if isSectionHeader(line, riskAssessmentToken) {
			state = capturing
			continue
		}

		if state != capturing {
			continue
		}

		if strings.HasPrefix(line, "##") {
			state = done
			break
		}

		if line != "" && !strings.HasPrefix(line, "#") {
			collected = append(collected, line)
		}
	}

	assessment := strings.TrimSpace(strings.Join(collected, " "))
	if utf8.RuneCountInString(assessment) < minRiskAssessmentChars {
		return "Portfolio risk should be evaluated based on diversification, volatility, and alignment with investor's risk tolerance and time horizon."
	}
	return assessment
}

// captureBullets scans line by line for the section opened by a ## header
// containing token, then strips bullet markers from each captured line. The
// window closes on the next ## header that does not re-match the token.
func captureBullets(text, token string) []string {
	var items []string
	state := seekingHeader

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if isSectionHeader(line, token) {
			state = capturing
			continue
		}

		if state != capturing {
			continue
		}

		if strings.HasPrefix(line, "##") {
			state = done
			break
		}

		if line == "" {
			continue
		}

		if item, ok := stripBullet(line); ok {
			items = append(items, item)
		}
	}

	return items
}

// isSectionHeader reports whether the line is a markdown header for the given
// section token, case-insensitively.
func isSectionHeader(line, token string) bool {
	return strings.Contains(line, "##") && strings.Contains(strings.ToUpper(line), token)
}

// stripBullet removes a leading bullet marker or list number from a line.
// Marker priority: "- ", "• ", "* ", then "N. " numbered items.
func stripBullet(line string) (string, bool) {
	for _, marker := range []string{"- ", "• ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}

	runes := []rune(line)
	if len(runes) > 0 && unicode.IsDigit(runes[0]) && strings.Contains(line, ". ") {
		parts := strings.SplitN(line, ". ", 2)
		return strings.TrimSpace(parts[1]), true
	}

	return "", false
}
