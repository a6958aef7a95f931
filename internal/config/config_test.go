package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ACTIVITY_SINK", "")
	t.Setenv("RUN_MIGRATIONS", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ActivitySinkOutbox, cfg.ActivitySink)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LEAVE_INSUFFICIENT_BALANCE", "REJECT")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("IDEMPOTENCY_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hr.example.com, ,http://localhost:5173")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "reject", cfg.InsufficientBalance)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, []string{"https://hr.example.com", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) Config {
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_NAME", "hrms")
		t.Setenv("ACTIVITY_SINK", "")
		t.Setenv("LEAVE_INSUFFICIENT_BALANCE", "")
		t.Setenv("APP_ENV", "")
		return Load()
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid(t).Validate())
	})

	t.Run("unknown balance mode", func(t *testing.T) {
		cfg := valid(t)
		cfg.InsufficientBalance = "maybe"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown activity sink", func(t *testing.T) {
		cfg := valid(t)
		cfg.ActivitySink = "email"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := valid(t)
		cfg.Environment = "production"
		cfg.JWTSecret = ""
		assert.EqualError(t, cfg.Validate(), "JWT_SECRET must be set in production")
	})
}
