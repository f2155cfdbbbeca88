// Package workflow assembles the ordered task list for an analysis run.
// Tasks execute strictly sequentially; each one sees every prior output.
package workflow

import (
	"fmt"
	"strings"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/types"
)

// Build returns the task sequence for the given mode. Quick runs two tasks,
// comprehensive runs four. Order is fixed and never depends on credentials;
// degraded capabilities show up as missing tool queries, not missing tasks.
func Build(mode types.Mode, team *agents.Team, tickers []string, profile types.InvestorProfile) []*Task {
	stocks := strings.Join(tickers, ", ")
	focus := fmt.Sprintf("suitability for %s with %s risk tolerance over a %s horizon",
		profile.Goals, profile.RiskTolerance, profile.Horizon)

	switch mode {
	case types.ModeQuick:
		return []*Task{
			newRapidAnalysisTask(team.ResearchAnalyst, stocks, profile),
			newRecommendationTask(team.InvestmentAdvisor, stocks, profile),
		}
	default:
		return []*Task{
			newResearchTask(team.ResearchAnalyst, stocks, focus),
			newFinancialAnalysisTask(team.FinancialAnalyst, stocks, focus),
			newMarketAnalysisTask(team.MarketStrategist, stocks, focus),
			newRecommendationTask(team.InvestmentAdvisor, stocks, profile),
		}
	}
}
