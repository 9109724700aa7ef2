// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
)

// Config holds runtime settings for the StudyDesk server.
type Config struct {
	Port       string
	DBPath     string
	Env        string // "development" or "production"; controls the Secure cookie flag
	LogLevel   string
	JWTSecret  string
	OpenAIKey  string
	OpenAIBase string
	AIModel    string
}

// Load reads configuration from environment variables. JWT_SECRET is
// required; everything else has a development default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getenv("STUDYDESK_PORT", "8080"),
		DBPath:     getenv("STUDYDESK_DB_PATH", "studydesk.db"),
		Env:        getenv("STUDYDESK_ENV", "development"),
		LogLevel:   getenv("STUDYDESK_LOG_LEVEL", "info"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBase: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:    getenv("OPENAI_MODEL", "gpt-4-turbo-preview"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
