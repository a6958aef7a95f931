package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lucia-hrms/internal/shared/connection"

	"github.com/joho/godotenv"
)

const (
	ActivitySinkOutbox = "outbox"
	ActivitySinkLog    = "log"
)

type Config struct {
	Port                string
	Environment         string
	Database            connection.PostgresConfig
	ConnectRetries      int
	RedisAddr           string
	KafkaBroker         string
	ConsumerGroupID     string
	JWTSecret           string
	LeavePolicyFile     string
	InsufficientBalance string
	ActivitySink        string
	RunMigrations       bool
	RateLimitPerSecond  float64
	RateLimitBurst      int
	IdempotencyTTL      time.Duration
	OutboxPollInterval  time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	CORSAllowedOrigins  []string
}

// Load reads .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),
		Database: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "lucia_hrms"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		ConnectRetries:      getEnvInt("CONNECT_RETRIES", 5),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:         getEnv("KAFKA_BROKER", ""),
		ConsumerGroupID:     getEnv("KAFKA_CONSUMER_GROUP", "lucia-hrms-leave-activity"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		LeavePolicyFile:     getEnv("LEAVE_POLICY_FILE", ""),
		InsufficientBalance: strings.ToLower(getEnv("LEAVE_INSUFFICIENT_BALANCE", "")),
		ActivitySink:        strings.ToLower(getEnv("ACTIVITY_SINK", ActivitySinkOutbox)),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		RateLimitPerSecond:  getEnvFloat("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 10),
		IdempotencyTTL:      getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		OutboxPollInterval:  getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ReadTimeout:         getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:        getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:         getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
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

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
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

// Validate checks settings every binary depends on. Binary specific
// requirements (KAFKA_BROKER for worker and consumer) are checked by the
// binary itself.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Host) == "" || strings.TrimSpace(c.Database.Name) == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.ConnectRetries <= 0 {
		return fmt.Errorf("CONNECT_RETRIES must be positive")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	switch c.InsufficientBalance {
	case "", "allow", "reject":
	default:
		return fmt.Errorf("LEAVE_INSUFFICIENT_BALANCE must be allow or reject, got %q", c.InsufficientBalance)
	}
	switch c.ActivitySink {
	case ActivitySinkOutbox, ActivitySinkLog:
	default:
		return fmt.Errorf("ACTIVITY_SINK must be %s or %s, got %q", ActivitySinkOutbox, ActivitySinkLog, c.ActivitySink)
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
