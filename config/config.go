package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings read from the environment.
type Config struct {
	Port            string
	AdminSecret     string
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	ExternalAPIURL  string
	ExternalTimeout time.Duration
}

// Load reads configuration from environment variables. ADMIN_SECRET is
// required; everything else has a default. EXTERNAL_API_URL left empty
// disables the external flight source.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		AdminSecret:     os.Getenv("ADMIN_SECRET"),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		SweepInterval:   time.Duration(getEnvInt("SESSION_SWEEP_SECONDS", 60)) * time.Second,
		ExternalAPIURL:  os.Getenv("EXTERNAL_API_URL"),
		ExternalTimeout: time.Duration(getEnvInt("EXTERNAL_API_TIMEOUT_SECONDS", 5)) * time.Second,
	}

	if cfg.AdminSecret == "" {
		return Config{}, fmt.Errorf("ADMIN_SECRET must be set")
	}

	return cfg, nil
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
	}
	return fallback
}
