// Package config provides configuration loading and validation for the
// response library server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents server configuration loadable from a JSON file.
// All fields are optional; missing values use defaults or come from
// environment variables merged in MergeWithEnv.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Feedback generator. The endpoint is injected from here into the
	// generator at construction; nothing reads it ambiently later.
	FeedbackProvider string `json:"feedback_provider,omitempty"` // "local" or "gemini"
	FeedbackEndpoint string `json:"feedback_endpoint,omitempty"`
	FeedbackModel    string `json:"feedback_model,omitempty"`
	FeedbackAPIKey   string `json:"feedback_api_key,omitempty"`
	FeedbackTimeout  int    `json:"feedback_timeout_seconds,omitempty"`

	// Heuristic constants. Empty slices keep the built-in defaults.
	SkillVocabulary []string `json:"skill_vocabulary,omitempty"`
	GapCategories   []string `json:"gap_categories,omitempty"`
}

// Load reads configuration from a JSON file
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithEnv fills empty fields from environment variables and applies
// defaults. Explicit config file values win over the environment.
func (c *Config) MergeWithEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.FeedbackProvider == "" {
		c.FeedbackProvider = os.Getenv("FEEDBACK_PROVIDER")
	}
	if c.FeedbackEndpoint == "" {
		c.FeedbackEndpoint = os.Getenv("FEEDBACK_ENDPOINT")
	}
	if c.FeedbackModel == "" {
		c.FeedbackModel = os.Getenv("FEEDBACK_MODEL")
	}
	if c.FeedbackAPIKey == "" {
		c.FeedbackAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if c.Port == 0 {
		c.Port = 8080
	}
	if c.FeedbackProvider == "" {
		c.FeedbackProvider = "local"
	}
	if c.FeedbackEndpoint == "" {
		c.FeedbackEndpoint = "http://localhost:11434"
	}
	if c.FeedbackModel == "" {
		c.FeedbackModel = "llama3.1"
	}
	if c.FeedbackTimeout == 0 {
		c.FeedbackTimeout = 20
	}
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.FeedbackProvider != "local" && c.FeedbackProvider != "gemini" {
		return fmt.Errorf("config error: unknown feedback provider: %s", c.FeedbackProvider)
	}
	if c.FeedbackProvider == "gemini" && c.FeedbackAPIKey == "" {
		return fmt.Errorf("config error: feedback_api_key is required for the gemini provider")
	}
	if c.FeedbackTimeout < 1 {
		return fmt.Errorf("config error: feedback_timeout_seconds must be positive")
	}
	return nil
}

// FeedbackTimeoutDuration returns the feedback call bound as a duration
func (c *Config) FeedbackTimeoutDuration() time.Duration {
	return time.Duration(c.FeedbackTimeout) * time.Second
}
