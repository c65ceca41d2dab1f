// Package config handles application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tikkun/tikkun-api/internal/llm"
)

// DefaultMaxBodyBytes accommodates long input texts (50 MiB).
const DefaultMaxBodyBytes int64 = 50 * 1024 * 1024

// Config holds all application configuration.
// It is read once at startup and passed to the components that need it.
type Config struct {
	// Server settings
	Port            int
	ShutdownTimeout time.Duration

	// IdleTimeout stops the server after this long without requests (0 = never)
	IdleTimeout time.Duration

	// Upstream completion API
	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicVersion string

	// Optional YAML file adding or replacing instruction profiles
	ProfilesFile string

	// Client page: empty means the embedded copy is served
	StaticDir string

	// Optional JSON file of runtime log filters, re-read every LogFiltersReload
	LogFiltersFile   string
	LogFiltersReload time.Duration

	// HTTP surface
	CORSOrigins  []string
	MaxBodyBytes int64
}

// Load reads configuration from environment variables.
// A .env file (or the file named by ENV_FILE) is applied first; variables
// already present in the process environment are never overwritten.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnvInt("PORT", 3000),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		IdleTimeout:      getEnvDuration("IDLE_TIMEOUT", 0),
		AnthropicAPIKey:  strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		AnthropicBaseURL: strings.TrimRight(getEnv("ANTHROPIC_BASE_URL", llm.DefaultBaseURL), "/"),
		AnthropicVersion: getEnv("ANTHROPIC_VERSION", llm.DefaultVersion),
		ProfilesFile:     getEnv("PROFILES_FILE", ""),
		StaticDir:        getEnv("STATIC_DIR", ""),
		LogFiltersFile:   getEnv("LOG_FILTERS_FILE", ""),
		LogFiltersReload: getEnvDuration("LOG_FILTERS_RELOAD", time.Minute),
		CORSOrigins:      getEnvSlice("CORS_ORIGINS", []string{"*"}),
		MaxBodyBytes:     getEnvInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.IdleTimeout < 0 {
		return nil, fmt.Errorf("IDLE_TIMEOUT must not be negative, got %s", cfg.IdleTimeout)
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

// HasAPIKey reports whether the upstream credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.AnthropicAPIKey != ""
}

// loadEnvFile applies a dotenv file. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
