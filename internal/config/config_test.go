package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvFloat(t *testing.T) {
	t.Setenv("MONTHLY_TARGET_HOURS", "")
	assert.Equal(t, 6.0, envFloat("MONTHLY_TARGET_HOURS", 6))

	t.Setenv("MONTHLY_TARGET_HOURS", "8.5")
	assert.Equal(t, 8.5, envFloat("MONTHLY_TARGET_HOURS", 6))

	t.Setenv("MONTHLY_TARGET_HOURS", "lots")
	assert.Equal(t, 6.0, envFloat("MONTHLY_TARGET_HOURS", 6))

	t.Setenv("MONTHLY_TARGET_HOURS", "-2")
	assert.Equal(t, 6.0, envFloat("MONTHLY_TARGET_HOURS", 6))

	t.Setenv("MONTHLY_TARGET_HOURS", "0")
	assert.Equal(t, 0.0, envFloat("MONTHLY_TARGET_HOURS", 6))

	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		t.Setenv("MONTHLY_TARGET_HOURS", v)
		assert.Equal(t, 6.0, envFloat("MONTHLY_TARGET_HOURS", 6), v)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "2h")
	assert.Equal(t, 2*time.Hour, envDuration("JWT_EXPIRY", time.Hour))

	t.Setenv("JWT_EXPIRY", "soon")
	assert.Equal(t, time.Hour, envDuration("JWT_EXPIRY", time.Hour))
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("MONTHLY_TARGET_HOURS", "")

	cfg := Load()

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 6.0, cfg.MonthlyTargetHours)
	assert.False(t, cfg.StorageEnabled())
}
