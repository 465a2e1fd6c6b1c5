package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider backends.
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

type Config struct {
	// Server
	Port         string        `env:"PORT" envDefault:"8080"`
	Env          string        `env:"ENV" envDefault:"development"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"2m"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`

	// Gemini AI
	GeminiAPIKey  string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiBackend string `env:"GEMINI_BACKEND" envDefault:"rest"`

	// Redis (optional, relay counters)
	RedisURL string `env:"REDIS_URL"`

	// Tracing (optional)
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Frontend
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.GeminiBackend = strings.ToLower(strings.TrimSpace(cfg.GeminiBackend))
	if cfg.GeminiBackend != BackendREST && cfg.GeminiBackend != BackendSDK {
		return nil, fmt.Errorf("GEMINI_BACKEND must be %q or %q, got %q", BackendREST, BackendSDK, cfg.GeminiBackend)
	}
	cfg.GeminiBaseURL = strings.TrimRight(cfg.GeminiBaseURL, "/")

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
