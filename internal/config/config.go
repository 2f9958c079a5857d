// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds process configuration read from the environment at startup.
// Collaborator credentials are read here once and handed to constructors;
// an absent credential produces an explicitly unconfigured collaborator
// rather than nil checks at call sites.
type Config struct {
	Port        int
	DatabaseURL string
	AppEnv      string // "production" suppresses diagnostic detail in error bodies
	BaseURL     string // public base URL embedded in shareable assessment links

	// AI generation
	GeminiAPIKey string
	GeminiModel  string

	// Outbound email; all empty means email delivery is disabled
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromAddress  string

	// Assessment defaults
	AssessmentDuration int // minutes
	PassingScore       int // percent
}

// Load reads configuration from environment variables. DATABASE_URL is the
// only hard requirement; everything else has a default or an explicit
// disabled state.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               envInt("PORT", 8080),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AppEnv:             envOr("APP_ENV", "development"),
		BaseURL:            envOr("BASE_URL", "http://localhost:8080"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           envInt("SMTP_PORT", 587),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		FromAddress:        os.Getenv("SMTP_FROM"),
		AssessmentDuration: envInt("ASSESSMENT_DURATION_MINUTES", 30),
		PassingScore:       envInt("ASSESSMENT_PASSING_SCORE", 60),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}
	if cfg.AssessmentDuration <= 0 {
		return nil, fmt.Errorf("ASSESSMENT_DURATION_MINUTES must be positive")
	}
	if cfg.PassingScore <= 0 || cfg.PassingScore > 100 {
		return nil, fmt.Errorf("ASSESSMENT_PASSING_SCORE must be in 1..100")
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with production error
// shaping (no diagnostic detail in responses).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// EmailConfigured reports whether outbound email delivery is usable.
// An unset SMTP host is a valid, silent "disabled" state.
func (c *Config) EmailConfigured() bool {
	return c.SMTPHost != "" && c.FromAddress != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
