// Package llm wraps text-completion providers behind a narrow client interface.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the only provider currently wired.
const ProviderGemini Provider = "gemini"

// Default generation settings.
const (
	DefaultModel       = "gemini-2.0-flash-lite"
	DefaultTemperature = float32(0.7)
	DefaultMaxTokens   = int32(1200)
	DefaultTimeout     = 30 * time.Second
)

// Config holds model settings for a Client.
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
	// SystemPrompt is sent as the system instruction when non-empty.
	SystemPrompt string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// WithModel returns a copy of c using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

// WithTimeout returns a copy of c using d. Non-positive values keep the current one.
func (c *Config) WithTimeout(d time.Duration) *Config {
	out := *c
	if d > 0 {
		out.Timeout = d
	}
	return &out
}
