// Package config reads the application settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the full runtime configuration.
type Config struct {
	Port           string
	APIKey         string
	BaseURL        string
	Referer        string
	Title          string
	Login          string
	PasswordHash   string
	CORSOrigins    []string
	BatchStoreSize int
}

// Load builds the configuration from environment variables, applying
// the defaults the app ships with.
func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "8081"),
		APIKey:         os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:        getenv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Referer:        getenv("APP_REFERER", "https://ai-football-by-dthen.web.app"),
		Title:          getenv("APP_TITLE", "AI Football by Dthen"),
		Login:          os.Getenv("APP_LOGIN"),
		PasswordHash:   os.Getenv("APP_PASSWORD_HASH"),
		CORSOrigins:    []string{"http://localhost:4200"},
		BatchStoreSize: 64,
	}

	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("BATCH_STORE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchStoreSize = n
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
