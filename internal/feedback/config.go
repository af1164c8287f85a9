package feedback

import "time"

// Provider identifies a feedback text-completion backend
type Provider string

// Provider constants define the supported backends
const (
	// ProviderLocal is a locally hosted completion endpoint (default)
	ProviderLocal Provider = "local"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultTimeout bounds a single remote feedback call. Longer than this and
// the caller gets the fallback payload instead of waiting.
const DefaultTimeout = 20 * time.Second

// Config holds feedback generator configuration. The endpoint is injected
// here explicitly; nothing in this package reads ambient environment state.
type Config struct {
	Provider Provider
	Endpoint string // local completion endpoint base URL
	Model    string
	APIKey   string // Gemini only
	Timeout  time.Duration
}

// DefaultConfig returns the default local-endpoint configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderLocal,
		Endpoint: "http://localhost:11434",
		Model:    "llama3.1",
		Timeout:  DefaultTimeout,
	}
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
