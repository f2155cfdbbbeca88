package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stock-analyst/internal/agents"
	"stock-analyst/internal/llm"
	"stock-analyst/internal/llm/llmobs"
	"stock-analyst/internal/logger"
	"stock-analyst/internal/orchestrator"
	"stock-analyst/internal/report"
	"stock-analyst/internal/store"
	"stock-analyst/internal/tools"
	"stock-analyst/internal/trace"
	"stock-analyst/internal/types"
)

func main() {
	// Command-line flags
	configPath := flag.String("config", "config.yaml", "path to config file")
	stocks := flag.String("stocks", "", "comma-separated ticker symbols to analyze (required)")
	quick := flag.Bool("quick", false, "run the quick two-task analysis")
	comprehensive := flag.Bool("comprehensive", false, "run the full four-task analysis")
	goals := flag.String("goals", "long-term growth", "investment goals")
	risk := flag.String("risk", "moderate", "risk tolerance: conservative, moderate, aggressive, or high")
	horizon := flag.String("horizon", "long-term", "investment horizon: short-term, medium-term, long-term, or 5+ years")
	amount := flag.String("amount", "$10,000", "investment amount")
	timeoutSec := flag.Int("timeout", 0, "overall timeout in seconds (0 = config default)")
	noTimeout := flag.Bool("no-timeout", false, "disable the overall timeout")
	outputFile := flag.String("output", "", "save report to file (optional, defaults to the analysis directory)")
	flag.Parse()

	if *stocks == "" {
		fmt.Println("Error: -stocks is required")
		flag.Usage()
		os.Exit(1)
	}
	if *quick && *comprehensive {
		fmt.Println("Error: -quick and -comprehensive are mutually exclusive")
		os.Exit(1)
	}

	_ = godotenv.Load()

	// Load configuration
	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = store.DefaultConfig()
		} else {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Initialize logger
	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := trace.Init(); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}
	defer trace.Shutdown(ctx)

	mode := types.ModeComprehensive
	if *quick {
		mode = types.ModeQuick
	}

	profile := types.InvestorProfile{
		Goals:         *goals,
		RiskTolerance: types.RiskTolerance(strings.ToLower(*risk)),
		Horizon:       types.Horizon(strings.ToLower(*horizon)),
		Amount:        *amount,
	}
	if err := profile.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	creds, err := store.LoadCredentials()
	if err != nil {
		fmt.Printf("Error loading credentials: %v\n", err)
		os.Exit(1)
	}

	completer, err := llm.NewCompleter(cfg, creds)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	completer = llmobs.Wrap(completer)

	toolset := tools.Available(ctx, cfg, creds, completer)
	team := agents.BuildTeam(toolset)
	orch := orchestrator.New(cfg, completer, team)

	var timeout time.Duration
	if *noTimeout {
		timeout = -1
	} else if *timeoutSec > 0 {
		timeout = time.Duration(*timeoutSec) * time.Second
	}

	tickers := strings.Split(*stocks, ",")
	fmt.Printf("📊 Starting %s analysis for %s\n", mode, strings.TrimSpace(*stocks))
	fmt.Println(strings.Repeat("─", 70))

	result, err := orch.Run(ctx, orchestrator.Request{
		Tickers: tickers,
		Profile: profile,
		Mode:    mode,
		Timeout: timeout,
	})
	if err != nil {
		var timeoutErr *types.TimeoutError
		if errors.As(err, &timeoutErr) {
			fmt.Printf("⏱  Analysis timed out after %s. Try -quick mode or a larger -timeout.\n", timeoutErr.Limit)
		} else {
			fmt.Printf("Error running analysis: %v\n", err)
		}
		os.Exit(1)
	}

	text := report.Format(result, profile, cfg.Report.IncludeIntermediate)
	fmt.Println(text)

	savedPath, err := report.Save(ctx, text, result, cfg.Report.OutputDir, *outputFile)
	if err != nil {
		fmt.Printf("Warning: Could not save report: %v\n", err)
	} else {
		fmt.Printf("\n✅ Report saved to: %s\n", savedPath)
	}

	fmt.Println("\n" + strings.Repeat("─", 70))
	fmt.Printf("Analysis complete for %s in %s (%d tasks)\n",
		strings.Join(result.Tickers, ", "), result.Elapsed.Round(time.Second), len(result.TaskOutputs))
	os.Exit(0)
}
