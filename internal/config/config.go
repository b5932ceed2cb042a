package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config holds the server configuration loaded from the environment.
type Config struct {
	Port string
	Env  string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string

	// OpenAIAPIKey is the completion API credential. It is only ever read by
	// the server process and never sent to callers.
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	EnhanceTimeout time.Duration

	EnhanceRateLimit float64
	EnhanceRateBurst int

	CORSOrigins []string

	LogLevel string
	LogFile  string
}

func Load() Config {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "mysql"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/promptstudio?parseTime=true"),
		JWTSecret:        getEnv("JWT_SECRET", devJWTSecret),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		EnhanceTimeout:   getEnvDuration("ENHANCE_TIMEOUT", 60*time.Second),
		EnhanceRateLimit: getEnvFloat("ENHANCE_RATE_LIMIT", 1),
		EnhanceRateBurst: getEnvInt("ENHANCE_RATE_BURST", 5),
		CORSOrigins:      getEnvList("CORS_ORIGINS"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, prompt enhancement will report a server misconfiguration")
	}

	return cfg
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ClientConfig configures the promptctl command line client.
type ClientConfig struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	LogLevel string
}

func LoadClient() ClientConfig {
	return ClientConfig{
		BaseURL:  strings.TrimRight(getEnv("PROMPTSTUDIO_URL", "http://localhost:8080"), "/"),
		Token:    os.Getenv("PROMPTSTUDIO_TOKEN"),
		Timeout:  getEnvDuration("PROMPTSTUDIO_TIMEOUT", 90*time.Second),
		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid number", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
