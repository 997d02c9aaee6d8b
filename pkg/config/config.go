package config

import (
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	HTTP     HTTPConfig
	Analysis AnalysisConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// HTTP delivery settings
type HTTPConfig struct {
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

// Analysis settings
type AnalysisConfig struct {
	ChangeWindowDays int
	HistoryLimit     int
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		HTTP: HTTPConfig{
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 100),
		},
		Analysis: AnalysisConfig{
			ChangeWindowDays: getIntEnv("CHANGE_WINDOW_DAYS", 7),
			HistoryLimit:     getIntEnv("HISTORY_LIMIT", 500),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
