package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "models/text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-1.5-flash", cfg.GenerationModel)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "test-key", cfg.APIKey())
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoad_PrefixedOverridesBare(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RAG_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("RAG_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("RAG_LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LOG_LEVEL")
}

func TestAPIKey_FallsBackToGoogleKey(t *testing.T) {
	cfg := &Config{GoogleAPIKey: "google"}
	assert.Equal(t, "google", cfg.APIKey())

	cfg.GeminiAPIKey = "gemini"
	assert.Equal(t, "gemini", cfg.APIKey())
}

func TestValidate_UnknownEnvironment(t *testing.T) {
	cfg := &Config{
		Port:           8000,
		RequestTimeout: time.Second,
		MaxBodyBytes:   1,
		LogLevel:       "info",
		Environment:    "staging",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported ENVIRONMENT")
}
