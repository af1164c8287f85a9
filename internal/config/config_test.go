package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/responses",
		"feedback_provider": "local",
		"feedback_endpoint": "http://ollama:11434",
		"skill_vocabulary": ["python", "sql"]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/responses", cfg.DatabaseURL)
	assert.Equal(t, "http://ollama:11434", cfg.FeedbackEndpoint)
	assert.Equal(t, []string{"python", "sql"}, cfg.SkillVocabulary)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeConfigFile(t, "{not json"))
	assert.Error(t, err)
}

func TestMergeWithEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FEEDBACK_PROVIDER", "")
	t.Setenv("FEEDBACK_ENDPOINT", "")
	t.Setenv("FEEDBACK_MODEL", "")

	cfg := &Config{}
	cfg.MergeWithEnv()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "local", cfg.FeedbackProvider)
	assert.Equal(t, "http://localhost:11434", cfg.FeedbackEndpoint)
	assert.Equal(t, "llama3.1", cfg.FeedbackModel)
	assert.Equal(t, 20, cfg.FeedbackTimeout)
}

func TestMergeWithEnv_FileValuesWin(t *testing.T) {
	t.Setenv("FEEDBACK_ENDPOINT", "http://from-env:11434")

	cfg := &Config{FeedbackEndpoint: "http://from-file:11434"}
	cfg.MergeWithEnv()

	assert.Equal(t, "http://from-file:11434", cfg.FeedbackEndpoint)
}

func TestMergeWithEnv_EnvFillsGaps(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/responses")

	cfg := &Config{}
	cfg.MergeWithEnv()

	assert.Equal(t, "postgres://env/responses", cfg.DatabaseURL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:             8080,
		DatabaseURL:      "postgres://localhost/responses",
		FeedbackProvider: "local",
		FeedbackTimeout:  20,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: ""},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: "database_url",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.FeedbackProvider = "openai" },
			wantErr: "provider",
		},
		{
			name:    "gemini without key",
			mutate:  func(c *Config) { c.FeedbackProvider = "gemini" },
			wantErr: "feedback_api_key",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.FeedbackTimeout = 0 },
			wantErr: "feedback_timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFeedbackTimeoutDuration(t *testing.T) {
	cfg := Config{FeedbackTimeout: 45}
	assert.Equal(t, 45*time.Second, cfg.FeedbackTimeoutDuration())
}
