package llm

import (
	"fmt"

	"stock-analyst/internal/interfaces"
	"stock-analyst/internal/llm/claude"
	"stock-analyst/internal/llm/gemini"
	"stock-analyst/internal/llm/openai"
	"stock-analyst/internal/llm/scripted"
	"stock-analyst/internal/store"
	"stock-analyst/internal/types"
)

// NewCompleter selects an LLM provider from config and credentials. With an
// explicit provider the matching key must be present; with no provider the
// first available key wins. No key at all is a ConfigurationError.
func NewCompleter(cfg *store.Config, creds *store.Credentials) (interfaces.Completer, error) {
	switch cfg.LLM.Provider {
	case "SCRIPTED":
		return scripted.New(), nil
	case "GEMINI":
		if creds.GoogleAPIKey == "" {
			return nil, &types.ConfigurationError{
				Reason: "llm.provider is GEMINI but GOOGLE_API_KEY is not set",
				Remedy: "add GOOGLE_API_KEY to your .env file",
			}
		}
		return gemini.New(cfg, creds.GoogleAPIKey), nil
	case "OPENAI":
		if creds.OpenAIAPIKey == "" {
			return nil, &types.ConfigurationError{
				Reason: "llm.provider is OPENAI but OPENAI_API_KEY is not set",
				Remedy: "add OPENAI_API_KEY to your .env file",
			}
		}
		return openai.New(cfg, creds.OpenAIAPIKey), nil
	case "CLAUDE":
		if creds.ClaudeAPIKey == "" {
			return nil, &types.ConfigurationError{
				Reason: "llm.provider is CLAUDE but CLAUDE_API_KEY is not set",
				Remedy: "add CLAUDE_API_KEY to your .env file",
			}
		}
		return claude.New(cfg, creds.ClaudeAPIKey), nil
	case "":
		switch {
		case creds.GoogleAPIKey != "":
			return gemini.New(cfg, creds.GoogleAPIKey), nil
		case creds.OpenAIAPIKey != "":
			return openai.New(cfg, creds.OpenAIAPIKey), nil
		case creds.ClaudeAPIKey != "":
			return claude.New(cfg, creds.ClaudeAPIKey), nil
		default:
			return nil, &types.ConfigurationError{
				Reason: "no LLM credential available",
				Remedy: "set GOOGLE_API_KEY, OPENAI_API_KEY, or CLAUDE_API_KEY",
			}
		}
	default:
		return nil, fmt.Errorf("unknown llm provider '%s'", cfg.LLM.Provider)
	}
}
