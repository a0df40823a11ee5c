package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the analytics API.
type Config struct {
	DatabaseURL  string
	Port         int
	BearerToken  string
	HorizonYears int
	LogLevel     slog.Level
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:         8080,
		HorizonYears: 6,
		LogLevel:     slog.LevelInfo,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if horizonStr := os.Getenv("PROJECTION_HORIZON_YEARS"); horizonStr != "" {
		if horizon, err := strconv.Atoi(horizonStr); err == nil && horizon > 0 {
			cfg.HorizonYears = horizon
		} else {
			return cfg, fmt.Errorf("invalid PROJECTION_HORIZON_YEARS: %s", horizonStr)
		}
	}

	if levelStr := os.Getenv("API_LOG_LEVEL"); levelStr != "" {
		level, err := parseLevel(levelStr)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = level
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid API_LOG_LEVEL: %s", s)
	}
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
