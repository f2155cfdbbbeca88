package store

import "github.com/kelseyhightower/envconfig"

// Credentials holds the API keys read once at process start. Only the LLM
// key for the selected provider is required; everything else degrades.
type Credentials struct {
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	ClaudeAPIKey string `envconfig:"CLAUDE_API_KEY"`
	SerperAPIKey string `envconfig:"SERPER_API_KEY"`
	SECAPIKey    string `envconfig:"SEC_API_API_KEY"`
}

// LoadCredentials reads credentials from the environment.
func LoadCredentials() (*Credentials, error) {
	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// HasAnyLLM reports whether at least one LLM provider key is configured.
func (c *Credentials) HasAnyLLM() bool {
	return c.GoogleAPIKey != "" || c.OpenAIAPIKey != "" || c.ClaudeAPIKey != ""
}
