package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	APIBaseURL     string
	LogLevel       string
	RequestTimeout time.Duration

	// Realtime invalidation
	RealtimeSource    string // "redis", "websocket", or "none"
	RedisAddr         string
	RedisPassword     string
	RedisTLS          bool
	RedisChannelBase  string
	WebsocketURL      string
	ReconcileInterval time.Duration

	// Booking
	BookingMonthWindow int
	HistoryPageSize    int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),

		RealtimeSource:    strings.ToLower(strings.TrimSpace(getEnv("REALTIME_SOURCE", "none"))),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTLS:          getEnvAsBool("REDIS_TLS", false),
		RedisChannelBase:  getEnv("REDIS_CHANNEL_BASE", "dermatrack"),
		WebsocketURL:      getEnv("WEBSOCKET_URL", ""),
		ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", 60*time.Second),

		BookingMonthWindow: getEnvAsInt("BOOKING_MONTH_WINDOW", 6),
		HistoryPageSize:    getEnvAsInt("HISTORY_PAGE_SIZE", 10),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
