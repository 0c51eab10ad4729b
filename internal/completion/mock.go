package completion

import "context"

// MockCompleter is a Completer that returns a canned, well-formed advisory
// reply without calling any external service. It backs tests and lets the
// server run when no API key is configured.
type MockCompleter struct {
	// Reply overrides the default canned response when non-empty.
	Reply string
	// Err is returned instead of a reply when set.
	Err error
}

// NewMockCompleter creates a mock with the default canned advisory reply.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns the canned reply.
func (m *MockCompleter) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return defaultMockReply, nil
}

const defaultMockReply = `The portfolio shows a reasonable foundation with room for improved diversification and risk alignment.

## PORTFOLIO ANALYSIS
Holdings are concentrated in a small number of asset classes. Returns to date are in line with broad market performance.

## RECOMMENDATIONS
- Diversify into additional asset classes to reduce concentration risk
- Rebalance toward the target allocation for your risk profile
- Review fee structure of current holdings
- Build a cash reserve covering three to six months of expenses

## RISK ASSESSMENT
Overall portfolio risk is moderate. Concentration in a few asset classes raises drawdown risk during market stress, and the current allocation may not match the stated risk tolerance and time horizon. Diversification across uncorrelated assets would reduce volatility.

## NEXT STEPS
- Rebalance the portfolio this quarter
- Set up automatic monthly contributions
- Schedule an annual review of goals and risk tolerance`
