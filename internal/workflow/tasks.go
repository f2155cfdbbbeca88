package workflow

import (
	"fmt"
	"strings"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/types"
)

// ToolQuery is a capability invocation gathered before a task's LLM call.
type ToolQuery struct {
	Tool  interfaces.Tool
	Input string
}

// Task is one unit of prompted work assigned to an agent. Instantiated per
// run with the tickers and profile interpolated; discarded afterwards.
type Task struct {
	Name           string
	Agent          *agents.Agent
	Description    string
	ExpectedOutput string
	ToolQueries    []ToolQuery
}

// Prompt assembles the full user prompt for this task: prior task outputs
// (append-only context), tool findings, the description, and the expected
// output contract.
func (t *Task) Prompt(priorOutputs []types.TaskOutput, findings []string) string {
	var sb strings.Builder

	if len(priorOutputs) > 0 {
		sb.WriteString("Context from earlier analysis steps:\n\n")
		for _, out := range priorOutputs {
			fmt.Fprintf(&sb, "--- %s (%s) ---\n%s\n\n", out.Task, out.Agent, out.Output)
		}
	}

	if len(findings) > 0 {
		sb.WriteString("Pre-gathered findings:\n\n")
		for _, f := range findings {
			sb.WriteString(f)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString(t.Description)
	fmt.Fprintf(&sb, "\n\nExpected output:\n%s\n", t.ExpectedOutput)
	return sb.String()
}

func newResearchTask(agent *agents.Agent, stocks string, focusAreas string) *Task {
	t := &Task{
		Name:  "research",
		Agent: agent,
		Description: fmt.Sprintf(`**COMPREHENSIVE STOCK RESEARCH TASK**

Conduct thorough research and analysis on the specified stocks to gather all relevant
information needed for investment decision-making.

**Research Scope:**
- Company fundamentals (revenue, earnings, growth trends, margins)
- Financial health indicators (debt levels, cash flow, liquidity)
- Industry analysis and competitive positioning
- Recent news, earnings reports, and market developments
- Management quality and corporate governance
- Business model and competitive advantages
- Key risks and challenges facing each company

**Target Stocks:** %s
**Focus Areas:** %s

**Deliverable:**
Provide a detailed research report for each stock that includes an executive summary
of the investment thesis, key financial metrics and trends, competitive position,
major opportunities and risks, and recent developments with their impact.`, stocks, focusAreas),
		ExpectedOutput: `A comprehensive research report containing:
- Executive summary for each stock analyzed
- Key financial metrics, ratios, and performance trends
- Industry and competitive analysis
- Identification of growth drivers and risk factors
- Summary of recent developments and their potential impact
- Clear data-driven insights to support investment decisions`,
	}

	if search := agent.Tool("Web Search"); search != nil {
		t.ToolQueries = append(t.ToolQueries, ToolQuery{
			Tool:  search,
			Input: fmt.Sprintf("%s stock fundamentals earnings recent news", stocks),
		})
	}
	if filing := agent.Tool("SEC Filing Search"); filing != nil {
		for _, sym := range strings.Split(stocks, ", ") {
			t.ToolQueries = append(t.ToolQueries, ToolQuery{
				Tool:  filing,
				Input: fmt.Sprintf("%s 10-K key risk factors and growth drivers", sym),
			})
		}
	}
	return t
}

func newFinancialAnalysisTask(agent *agents.Agent, stocks string, analysisFocus string) *Task {
	t := &Task{
		Name:  "financial-analysis",
		Agent: agent,
		Description: fmt.Sprintf(`**DETAILED FINANCIAL ANALYSIS TASK**

Perform in-depth financial analysis of the specified stocks, focusing on valuation,
financial health, and investment attractiveness.

**Analysis Requirements:**
1. Valuation: P/E, P/B, P/S, EV/EBITDA vs industry averages, historical ranges, and peers
2. Financial health: profitability (margins, ROE, ROA, ROIC), liquidity, leverage, cash flow
3. Growth: revenue and earnings trends, margin patterns, capital allocation efficiency
4. Quality: earnings consistency, balance sheet strength, working capital management

**Target Stocks:** %s
**Analysis Focus:** %s

**Deliverable:**
Provide a detailed financial analysis report with clear investment implications.`, stocks, analysisFocus),
		ExpectedOutput: `A detailed financial analysis report containing:
- Comprehensive valuation assessment with multiple metrics
- Financial health evaluation with key ratios and trends
- Growth analysis and sustainability assessment
- Quality metrics and red flag identification
- Comparative analysis against industry peers
- Clear conclusions on financial attractiveness and fair value estimates`,
	}

	if filing := agent.Tool("SEC Filing Search"); filing != nil {
		for _, sym := range strings.Split(stocks, ", ") {
			t.ToolQueries = append(t.ToolQueries, ToolQuery{
				Tool:  filing,
				Input: fmt.Sprintf("%s 10-Q revenue earnings margins cash flow", sym),
			})
		}
	}
	return t
}

func newMarketAnalysisTask(agent *agents.Agent, stocks string, marketFocus string) *Task {
	t := &Task{
		Name:  "market-analysis",
		Agent: agent,
		Description: fmt.Sprintf(`**MARKET AND SECTOR ANALYSIS TASK**

Analyze current market conditions, sector dynamics, and macroeconomic factors
that could impact the specified stocks and overall investment strategy.

**Analysis Requirements:**
1. Market environment: trends, sentiment, economic indicators, interest rates, volatility
2. Sector: industry growth prospects, regulatory environment, competitive dynamics, disruption
3. Timing: market cycle positioning, seasonal factors, upcoming catalysts
4. Risk: systemic risks, geopolitical uncertainties, sector-specific challenges

**Target Stocks:** %s
**Market Focus:** %s

**Deliverable:**
Provide comprehensive market context for investment decisions.`, stocks, marketFocus),
		ExpectedOutput: `A comprehensive market analysis report containing:
- Current market environment assessment and outlook
- Detailed sector analysis and industry dynamics
- Identification of key market drivers and catalysts
- Risk factor analysis and potential market scenarios
- Timing recommendations and strategic implications for the target stocks`,
	}

	if search := agent.Tool("Web Search"); search != nil {
		t.ToolQueries = append(t.ToolQueries, ToolQuery{
			Tool:  search,
			Input: fmt.Sprintf("%s sector outlook macroeconomic trends market conditions", stocks),
		})
	}
	return t
}

func newRecommendationTask(agent *agents.Agent, stocks string, profile types.InvestorProfile) *Task {
	return &Task{
		Name:  "recommendation",
		Agent: agent,
		Description: fmt.Sprintf(`**INVESTMENT RECOMMENDATION TASK**

Based on the comprehensive research and financial analysis, provide personalized
investment recommendations that align with the investor's profile and objectives.

**Recommendation Process:**
1. Portfolio fit: alignment with goals and risk tolerance, diversification, horizon suitability
2. Risk-return: upside and downside scenarios, risk factors and mitigation, volatility expectations
3. Strategy: top pick(s) with rationale, entry timing and price targets, position sizing, exits
4. Alternatives: sector/thematic or risk-adjusted alternatives when the primary pick fits poorly

**Investor Profile:**
- Investment Goals: %s
- Risk Tolerance: %s
- Investment Horizon: %s
- Investment Amount: %s
- Target Stocks: %s

**Deliverable:**
Provide clear, actionable investment recommendations with specific rationale.`,
			profile.Goals, profile.RiskTolerance, profile.Horizon, profile.Amount, stocks),
		ExpectedOutput: `A personalized investment recommendation report containing:
- Top stock recommendation with detailed investment thesis
- Clear rationale based on research and analysis findings
- Risk assessment and alignment with investor profile
- Specific entry strategies and price targets
- Position sizing and portfolio allocation suggestions
- Key catalysts and timeline expectations
- Risk management and exit strategy recommendations
- Alternative investment options if the primary recommendation doesn't fit`,
	}
}

func newRapidAnalysisTask(agent *agents.Agent, stocks string, profile types.InvestorProfile) *Task {
	t := &Task{
		Name:  "rapid-analysis",
		Agent: agent,
		Description: fmt.Sprintf(`**RAPID STOCK ANALYSIS TASK**

Conduct a focused analysis of the specified stocks to provide quick investment insights.

**Analysis Requirements:**
1. Key financial metrics and recent performance
2. Current valuation vs. historical and peer averages
3. Major recent developments and news impact
4. Primary investment thesis and key risks
5. Alignment with investor profile and goals

**Target Stocks:** %s
**Investor Profile:** %s

Focus on the most critical factors for investment decision-making.`, stocks, profile),
		ExpectedOutput: `A concise analysis report with:
- Key financial highlights and valuation metrics
- Investment thesis and primary risks for each stock
- Quick assessment of fit with investor profile
- Clear recommendation with rationale`,
	}

	if search := agent.Tool("Web Search"); search != nil {
		t.ToolQueries = append(t.ToolQueries, ToolQuery{
			Tool:  search,
			Input: fmt.Sprintf("%s stock news valuation analysis", stocks),
		})
	}
	return t
}
