package types

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the analysis workflow depth.
type Mode string

const (
	ModeQuick         Mode = "quick"
	ModeComprehensive Mode = "comprehensive"
)

// ParseMode converts a user-supplied mode string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quick", "":
		return ModeQuick, nil
	case "comprehensive":
		return ModeComprehensive, nil
	default:
		return "", fmt.Errorf("unknown analysis mode '%s': must be 'quick' or 'comprehensive'", s)
	}
}

// RiskTolerance is the investor's appetite for volatility.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
	RiskHigh         RiskTolerance = "high"
)

// Horizon is the intended holding period.
type Horizon string

const (
	HorizonShort    Horizon = "short-term"
	HorizonMedium   Horizon = "medium-term"
	HorizonLong     Horizon = "long-term"
	HorizonFivePlus Horizon = "5+ years"
)

// InvestorProfile describes the investor a recommendation is tailored for.
// Immutable once constructed.
type InvestorProfile struct {
	Goals         string
	RiskTolerance RiskTolerance
	Horizon       Horizon
	Amount        string
}

// Validate checks the enum fields against their allowed values.
func (p InvestorProfile) Validate() error {
	switch p.RiskTolerance {
	case RiskConservative, RiskModerate, RiskAggressive, RiskHigh:
	default:
		return fmt.Errorf("invalid risk tolerance '%s': must be conservative, moderate, aggressive, or high", p.RiskTolerance)
	}
	switch p.Horizon {
	case HorizonShort, HorizonMedium, HorizonLong, HorizonFivePlus:
	default:
		return fmt.Errorf("invalid horizon '%s': must be short-term, medium-term, long-term, or 5+ years", p.Horizon)
	}
	return nil
}

// String renders the profile the way task prompts embed it.
func (p InvestorProfile) String() string {
	return fmt.Sprintf("goals=%s risk=%s horizon=%s amount=%s",
		p.Goals, p.RiskTolerance, p.Horizon, p.Amount)
}

// TaskOutput is the captured result of one executed task.
type TaskOutput struct {
	Task   string `json:"task"`
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

// RunResult is the final product of one workflow run.
type RunResult struct {
	RunID       string        `json:"run_id"`
	Mode        Mode          `json:"mode"`
	Tickers     []string      `json:"tickers"`
	Report      string        `json:"report"`
	TaskOutputs []TaskOutput  `json:"task_outputs"`
	StartedAt   time.Time     `json:"started_at"`
	Elapsed     time.Duration `json:"elapsed"`
}

// ValidateTickers cleans a ticker list: upper-cased, alphanumeric, 1-5 chars.
// Invalid entries are dropped and returned separately so callers can warn.
func ValidateTickers(tickers []string) (valid, skipped []string) {
	for _, t := range tickers {
		sym := strings.ToUpper(strings.TrimSpace(t))
		if len(sym) >= 1 && len(sym) <= 5 && isAlnum(sym) {
			valid = append(valid, sym)
		} else if sym != "" {
			skipped = append(skipped, sym)
		}
	}
	return valid, skipped
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
