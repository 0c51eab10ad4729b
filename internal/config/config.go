package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"log/slog"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	OpenRouter OpenRouterConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// OpenRouterConfig holds settings for the completion collaborator: endpoint,
// model, generation parameters, and the bounded retry policy.
type OpenRouterConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Temperature   float32
	MaxTokens     int
	RetryAttempts int
	RetryMinWait  time.Duration
	RetryMaxWait  time.Duration
}

const (
	defaultPort            = "5000"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 120 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultBaseURL       = "https://openrouter.ai/api/v1"
	defaultModel         = "openai/gpt-oss-20b:free"
	defaultTemperature   = 0.7
	defaultMaxTokens     = 2000
	defaultRetryAttempts = 3
	defaultRetryMinWait  = 4 * time.Second
	defaultRetryMaxWait  = 10 * time.Second
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided. A .env file in the working directory is honored
// for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	// Cloud platforms set PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		OpenRouter: OpenRouterConfig{
			APIKey:        os.Getenv("OPENROUTER_API_KEY"),
			BaseURL:       getEnv("OPENROUTER_BASE_URL", defaultBaseURL),
			Model:         getEnv("OPENROUTER_MODEL", defaultModel),
			Temperature:   defaultTemperature,
			MaxTokens:     defaultMaxTokens,
			RetryAttempts: defaultRetryAttempts,
			RetryMinWait:  defaultRetryMinWait,
			RetryMaxWait:  defaultRetryMaxWait,
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("OPENROUTER_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil || temp < 0 || temp > 2 {
			return Config{}, fmt.Errorf("invalid OPENROUTER_TEMPERATURE: must be a number between 0.0 and 2.0")
		}
		cfg.OpenRouter.Temperature = float32(temp)
	}

	if v := os.Getenv("OPENROUTER_MAX_TOKENS"); v != "" {
		tokens, err := strconv.Atoi(v)
		if err != nil || tokens < 1 {
			return Config{}, fmt.Errorf("invalid OPENROUTER_MAX_TOKENS: must be a positive integer")
		}
		cfg.OpenRouter.MaxTokens = tokens
	}

	if v := os.Getenv("OPENROUTER_RETRY_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts < 1 {
			return Config{}, fmt.Errorf("invalid OPENROUTER_RETRY_ATTEMPTS: must be a positive integer")
		}
		cfg.OpenRouter.RetryAttempts = attempts
	}

	if v := os.Getenv("OPENROUTER_RETRY_MIN_WAIT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPENROUTER_RETRY_MIN_WAIT_SECONDS: %w", err)
		}
		cfg.OpenRouter.RetryMinWait = d
	}

	if v := os.Getenv("OPENROUTER_RETRY_MAX_WAIT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPENROUTER_RETRY_MAX_WAIT_SECONDS: %w", err)
		}
		cfg.OpenRouter.RetryMaxWait = d
	}

	if cfg.OpenRouter.RetryMinWait > cfg.OpenRouter.RetryMaxWait {
		return Config{}, fmt.Errorf("invalid retry wait bounds: min wait %v exceeds max wait %v",
			cfg.OpenRouter.RetryMinWait, cfg.OpenRouter.RetryMaxWait)
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
