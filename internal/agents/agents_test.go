package agents

import (
	"context"
	"strings"
	"testing"

	"stock-analyst/internal/store"
	"stock-analyst/internal/tools"
)

func buildTestTeam(t *testing.T, withFiling bool) *Team {
	t.Helper()
	creds := &store.Credentials{}
	if withFiling {
		creds.SECAPIKey = "test-key"
	}
	ts := tools.Available(context.Background(), store.DefaultConfig(), creds, nil)
	return BuildTeam(ts)
}

func TestBuildTeamRoles(t *testing.T) {
	team := buildTestTeam(t, false)

	cases := []struct {
		agent *Agent
		role  string
	}{
		{team.ResearchAnalyst, "Senior Stock Research Analyst"},
		{team.FinancialAnalyst, "Expert Financial Analyst"},
		{team.InvestmentAdvisor, "Senior Investment Advisor"},
		{team.MarketStrategist, "Chief Market Strategist"},
	}
	for _, c := range cases {
		if c.agent == nil {
			t.Fatalf("Expected agent for role %s", c.role)
		}
		if c.agent.Role != c.role {
			t.Errorf("Expected role %s, got %s", c.role, c.agent.Role)
		}
		if c.agent.Goal == "" || c.agent.Backstory == "" {
			t.Errorf("Agent %s missing goal or backstory", c.role)
		}
	}
}

func TestFilingToolGatedOnCredential(t *testing.T) {
	without := buildTestTeam(t, false)
	if without.ResearchAnalyst.Tool("SEC Filing Search") != nil {
		t.Error("Expected no filing tool without SEC credential")
	}

	with := buildTestTeam(t, true)
	if with.ResearchAnalyst.Tool("SEC Filing Search") == nil {
		t.Error("Expected filing tool with SEC credential")
	}
	if with.FinancialAnalyst.Tool("SEC Filing Search") == nil {
		t.Error("Expected financial analyst to carry the filing tool")
	}
	// Advisor and strategist never carry filing access
	if with.InvestmentAdvisor.Tool("SEC Filing Search") != nil {
		t.Error("Expected advisor without filing tool")
	}
}

func TestAllAgentsCarryBaseTools(t *testing.T) {
	team := buildTestTeam(t, false)

	for _, agent := range []*Agent{team.ResearchAnalyst, team.FinancialAnalyst, team.InvestmentAdvisor, team.MarketStrategist} {
		for _, name := range []string{"Financial Calculator", "Stock Price Analysis", "Web Search"} {
			if agent.Tool(name) == nil {
				t.Errorf("Agent %s missing tool %s", agent.Role, name)
			}
		}
	}
}

func TestPersonaRendersToolList(t *testing.T) {
	team := buildTestTeam(t, false)
	persona := team.ResearchAnalyst.Persona()

	if !strings.HasPrefix(persona, "Senior Stock Research Analyst") {
		t.Errorf("Expected persona to open with the role, got %q", persona)
	}
	if !strings.Contains(persona, "Web Search") {
		t.Error("Expected persona to list tools")
	}
}
