package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Environment names the deployment flavour; development switches the logger to console output.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds the service configuration.
// Every key is read as RAG_<KEY> first and then as the bare <KEY>,
// so GEMINI_API_KEY keeps working as in the original deployment.
type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8000"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`

	EmbeddingModel  string `envconfig:"EMBEDDING_MODEL" default:"models/text-embedding-004"`
	GenerationModel string `envconfig:"GENERATION_MODEL" default:"gemini-1.5-flash"`
	EmbedDimensions int    `envconfig:"EMBED_DIMENSIONS" default:"0"`
	GenAIBaseURL    string `envconfig:"GENAI_BASE_URL"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	MaxBodyBytes   int64         `envconfig:"MAX_BODY_BYTES" default:"8388608"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
}

const envPrefix = "RAG"

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT: %s", c.RequestTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid MAX_BODY_BYTES: %d", c.MaxBodyBytes)
	}
	if c.EmbedDimensions < 0 {
		return fmt.Errorf("invalid EMBED_DIMENSIONS: %d", c.EmbedDimensions)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	return nil
}

// APIKey returns the Gemini key, preferring GEMINI_API_KEY over GOOGLE_API_KEY.
func (c *Config) APIKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.GoogleAPIKey
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
