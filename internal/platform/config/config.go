package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	Environment          string
	RunMigrations        bool
	DBMaxConns           int
	FetchConcurrency     int
	DefaultWindowDays    int
	RateLimitPerMinute   int
	MetricsEnabled       bool
	GaugeRefreshInterval time.Duration
	WeightPresetsFile    string
	LogLevel             string
	LogFile              string
	LogMaxSizeMB         int
	LogMaxBackups        int
}

// Load reads the process environment after merging an optional .env file.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		Environment:          getEnv("APP_ENV", "development"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		DBMaxConns:           getEnvInt("DB_MAX_CONNS", 10),
		FetchConcurrency:     getEnvInt("FETCH_CONCURRENCY", 8),
		DefaultWindowDays:    getEnvInt("DEFAULT_WINDOW_DAYS", 90),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		GaugeRefreshInterval: getEnvDuration("GAUGE_REFRESH_INTERVAL", 15*time.Minute),
		WeightPresetsFile:    getEnv("WEIGHT_PRESETS_FILE", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFile:              getEnv("LOG_FILE", ""),
		LogMaxSizeMB:         getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:        getEnvInt("LOG_MAX_BACKUPS", 5),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.DefaultWindowDays < 1 {
		return fmt.Errorf("DEFAULT_WINDOW_DAYS must be at least 1")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.GaugeRefreshInterval < 0 {
		return fmt.Errorf("GAUGE_REFRESH_INTERVAL must not be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
