package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcardoso/deckstudy/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                  ":8080",
		DBPath:                "test.db",
		LogLevel:              "INFO",
		FlipDelayMS:           300,
		AdvanceDelayMS:        2500,
		SessionIdleTimeoutMin: 60,
		JanitorIntervalSec:    60,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidFlipDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay int
	}{
		{
			name:  "zero delay",
			delay: 0,
		},
		{
			name:  "negative delay",
			delay: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.FlipDelayMS = tt.delay

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "FLIP_DELAY_MS")
		})
	}
}

func TestValidate_AdvanceDelayMustExceedFlipDelay(t *testing.T) {
	tests := []struct {
		name    string
		advance int
	}{
		{
			name:    "equal to flip delay",
			advance: 300,
		},
		{
			name:    "below flip delay",
			advance: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.AdvanceDelayMS = tt.advance

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "ADVANCE_DELAY_MS")
		})
	}
}

func TestValidate_InvalidIdleTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.SessionIdleTimeoutMin = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_IDLE_TIMEOUT_MIN")
}

func TestValidate_InvalidJanitorInterval(t *testing.T) {
	cfg := validConfig()
	cfg.JanitorIntervalSec = -5

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JANITOR_INTERVAL_SEC")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "FLIP_DELAY_MS", "ADVANCE_DELAY_MS"} {
		restoreEnv(t, key)
		os.Unsetenv(key)
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:deckstudy.db", cfg.DBPath)
	assert.Equal(t, 300, cfg.FlipDelayMS)
	assert.Equal(t, 2500, cfg.AdvanceDelayMS)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	restoreEnv(t, "ADDR")
	restoreEnv(t, "DB_PATH")
	restoreEnv(t, "FLIP_DELAY_MS")

	os.Setenv("ADDR", ":9090")
	os.Setenv("DB_PATH", "custom.db")
	os.Setenv("FLIP_DELAY_MS", "150")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 150, cfg.FlipDelayMS)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	restoreEnv(t, "ADVANCE_DELAY_MS")
	os.Setenv("ADVANCE_DELAY_MS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 2500, cfg.AdvanceDelayMS)
}

// restoreEnv puts the variable back to its pre-test value on cleanup.
func restoreEnv(t *testing.T, key string) {
	t.Helper()
	original, had := os.LookupEnv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, original)
		} else {
			os.Unsetenv(key)
		}
	})
}
