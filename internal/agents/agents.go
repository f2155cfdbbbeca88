package agents

import (
	"fmt"
	"strings"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/tools"
)

// Agent is a fixed declarative record binding a persona to a capability set.
// Created once at startup, immutable, stateless across runs.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
	Tools     []interfaces.Tool
}

// Persona renders the system prompt that conditions LLM calls for this agent.
func (a *Agent) Persona() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\nGoal: %s\n\nBackstory:\n%s\n", a.Role, a.Goal, a.Backstory)
	if len(a.Tools) > 0 {
		sb.WriteString("\nPre-gathered findings from these capabilities may accompany your task:\n")
		for _, t := range a.Tools {
			fmt.Fprintf(&sb, "- %s: %s\n", t.Name(), t.Description())
		}
	}
	return sb.String()
}

// Tool returns the agent's tool with the given name, or nil.
func (a *Agent) Tool(name string) interfaces.Tool {
	for _, t := range a.Tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Team is the complete set of financial analysis agents.
type Team struct {
	ResearchAnalyst   *Agent
	FinancialAnalyst  *Agent
	InvestmentAdvisor *Agent
	MarketStrategist  *Agent
}

// BuildTeam creates the agent team. Filing capability is bound only when its
// credential is present; agents otherwise operate with reduced tool access.
func BuildTeam(ts *tools.Toolset) *Team {
	return &Team{
		ResearchAnalyst: &Agent{
			Role: "Senior Stock Research Analyst",
			Goal: "Conduct comprehensive research and analysis of stocks, gathering key financial data, " +
				"market trends, and industry insights to support investment decisions",
			Backstory: "A seasoned stock research analyst with over 15 years of experience in equity research " +
				"at top-tier investment banks. Excels at analyzing financial statements and SEC filings, " +
				"identifying market trends and industry dynamics, and producing detailed, data-driven " +
				"research reports. Methodical, detail-oriented, and always backs findings with solid evidence.",
			Tools: ts.WithFiling(),
		},
		FinancialAnalyst: &Agent{
			Role: "Expert Financial Analyst",
			Goal: "Analyze financial metrics, ratios, and valuation models to assess the financial health " +
				"and investment attractiveness of stocks",
			Backstory: "A highly skilled financial analyst with an MBA in Finance, CFA certification, and " +
				"12+ years of experience. Specialties include ratio analysis, DCF modeling and relative " +
				"valuation, risk assessment, and earnings forecasting. Has a keen eye for red flags in " +
				"financial statements and quickly assesses whether a company is financially sound and fairly valued.",
			Tools: ts.WithFiling(),
		},
		InvestmentAdvisor: &Agent{
			Role: "Senior Investment Advisor",
			Goal: "Provide personalized investment recommendations and strategic advice based on " +
				"comprehensive analysis and investor profile",
			Backstory: "A senior investment advisor with 20+ years of experience managing portfolios for " +
				"high-net-worth individuals and institutions, holding both CFA and CFP certifications. " +
				"Expert in portfolio construction, risk management, and matching investments to client goals " +
				"and risk tolerance. Known for translating complex analysis into clear, actionable advice.",
			Tools: ts.Base(),
		},
		MarketStrategist: &Agent{
			Role: "Chief Market Strategist",
			Goal: "Analyze macroeconomic conditions, market trends, and sector dynamics to provide " +
				"strategic market insights and timing recommendations",
			Backstory: "A chief market strategist with extensive experience in macroeconomic analysis and " +
				"market forecasting at leading investment firms. Areas of expertise include policy impact " +
				"assessment, market cycle analysis, sector rotation, and global market dynamics. Synthesizes " +
				"complex macroeconomic data into actionable investment themes.",
			Tools: ts.Base(),
		},
	}
}
