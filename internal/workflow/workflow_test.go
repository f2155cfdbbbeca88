package workflow

import (
	"strings"
	"testing"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/types"
)

func testProfile() types.InvestorProfile {
	return types.InvestorProfile{
		Goals:         "long-term growth",
		RiskTolerance: types.RiskModerate,
		Horizon:       types.HorizonLong,
		Amount:        "$10,000",
	}
}

func testTeam() *agents.Team {
	// Tool-less agents keep workflow tests offline; tool queries are only
	// added for tools the agent actually carries.
	return &agents.Team{
		ResearchAnalyst:   &agents.Agent{Role: "Senior Stock Research Analyst"},
		FinancialAnalyst:  &agents.Agent{Role: "Expert Financial Analyst"},
		InvestmentAdvisor: &agents.Agent{Role: "Senior Investment Advisor"},
		MarketStrategist:  &agents.Agent{Role: "Chief Market Strategist"},
	}
}

func TestBuildQuickWorkflow(t *testing.T) {
	tasks := Build(types.ModeQuick, testTeam(), []string{"AAPL"}, testProfile())

	if len(tasks) != 2 {
		t.Fatalf("Expected 2 quick tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "rapid-analysis" {
		t.Errorf("Expected rapid-analysis first, got %s", tasks[0].Name)
	}
	if tasks[1].Name != "recommendation" {
		t.Errorf("Expected recommendation last, got %s", tasks[1].Name)
	}
}

func TestBuildComprehensiveWorkflow(t *testing.T) {
	tasks := Build(types.ModeComprehensive, testTeam(), []string{"NVDA", "AMD"}, testProfile())

	want := []string{"research", "financial-analysis", "market-analysis", "recommendation"}
	if len(tasks) != len(want) {
		t.Fatalf("Expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Errorf("tasks[%d] = %s, want %s", i, tasks[i].Name, name)
		}
	}
}

func TestTaskDescriptionsEmbedTickers(t *testing.T) {
	tasks := Build(types.ModeComprehensive, testTeam(), []string{"NVDA", "AMD", "INTC"}, testProfile())

	for _, task := range tasks {
		if !strings.Contains(task.Description, "NVDA, AMD, INTC") {
			t.Errorf("Task %s description missing ticker list", task.Name)
		}
	}
}

func TestRecommendationEmbedsProfile(t *testing.T) {
	tasks := Build(types.ModeQuick, testTeam(), []string{"AAPL"}, testProfile())

	rec := tasks[1]
	for _, part := range []string{"long-term growth", "moderate", "$10,000"} {
		if !strings.Contains(rec.Description, part) {
			t.Errorf("Recommendation description missing %q", part)
		}
	}
}

func TestPromptCarriesPriorOutputs(t *testing.T) {
	tasks := Build(types.ModeQuick, testTeam(), []string{"AAPL"}, testProfile())

	prior := []types.TaskOutput{
		{Task: "rapid-analysis", Agent: "Senior Stock Research Analyst", Output: "AAPL looks strong"},
	}
	prompt := tasks[1].Prompt(prior, []string{"[Web Search] headline findings"})

	if !strings.Contains(prompt, "AAPL looks strong") {
		t.Error("Expected prompt to carry prior task output")
	}
	if !strings.Contains(prompt, "[Web Search] headline findings") {
		t.Error("Expected prompt to carry tool findings")
	}
	if !strings.Contains(prompt, "Expected output:") {
		t.Error("Expected prompt to end with the output contract")
	}
	// Context precedes the task description
	ctxIdx := strings.Index(prompt, "AAPL looks strong")
	descIdx := strings.Index(prompt, "INVESTMENT RECOMMENDATION TASK")
	if ctxIdx > descIdx {
		t.Error("Expected prior context before the task description")
	}
}

func TestNoToolQueriesWithoutTools(t *testing.T) {
	tasks := Build(types.ModeComprehensive, testTeam(), []string{"AAPL"}, testProfile())
	for _, task := range tasks {
		if len(task.ToolQueries) != 0 {
			t.Errorf("Task %s has %d tool queries with a tool-less team", task.Name, len(task.ToolQueries))
		}
	}
}
