package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultDatabaseURL      = "fitlink.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTTTL           = "24h"
	defaultNotifyRefresh    = "60s"
	defaultNotifyGenerate   = "30s"
	defaultNotifyChance     = "0.10"
	defaultTrendThreshold   = "0.05"
	defaultStatsFetchBudget = "5s"
)

// Config is the process-wide runtime configuration, read from the
// environment once at startup.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Notification store timers.
	NotifyRefreshInterval  time.Duration
	NotifyGenerateInterval time.Duration
	NotifyGenerateChance   float64

	// Health statistics.
	TrendThreshold   float64
	StatsFetchBudget time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.NotifyRefreshInterval, err = parseDurationEnv("NOTIFY_REFRESH_INTERVAL", defaultNotifyRefresh); err != nil {
		return nil, err
	}
	if cfg.NotifyGenerateInterval, err = parseDurationEnv("NOTIFY_GENERATE_INTERVAL", defaultNotifyGenerate); err != nil {
		return nil, err
	}
	if cfg.NotifyGenerateChance, err = parseFloatEnv("NOTIFY_GENERATE_CHANCE", defaultNotifyChance); err != nil {
		return nil, err
	}
	if cfg.TrendThreshold, err = parseFloatEnv("TREND_THRESHOLD", defaultTrendThreshold); err != nil {
		return nil, err
	}
	if cfg.StatsFetchBudget, err = parseDurationEnv("STATS_FETCH_BUDGET", defaultStatsFetchBudget); err != nil {
		return nil, err
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func parseFloatEnv(key, fallback string) (float64, error) {
	raw := getEnv(key, fallback)
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", key, raw, err)
	}
	return f, nil
}
