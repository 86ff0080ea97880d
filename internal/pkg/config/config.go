package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// UpstreamConfig describes the remote task-manager API this frontend talks to.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	Upstream      UpstreamConfig
	ServerPort    string
	SessionSecret string
	MetricsAddr   string
	PprofAddr     string
}

func Load() (*Config, error) {
	cfg := &Config{
		Upstream: UpstreamConfig{
			BaseURL: getEnvOrDefault("API_BASE_URL", "http://127.0.0.1:8000"),
			Timeout: getDurationOrDefault("API_TIMEOUT", 15*time.Second),
		},
		ServerPort:    getEnvOrDefault("SERVER_PORT", "8091"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		MetricsAddr:   getEnvOrDefault("METRICS_ADDR", ":9092"),
		PprofAddr:     getEnvOrDefault("PPROF_ADDR", ":6060"),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
