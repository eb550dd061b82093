package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	FlipDelayMS           int
	AdvanceDelayMS        int
	SessionIdleTimeoutMin int
	JanitorIntervalSec    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:deckstudy.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		FlipDelayMS:           envIntOr("FLIP_DELAY_MS", 300),
		AdvanceDelayMS:        envIntOr("ADVANCE_DELAY_MS", 2500),
		SessionIdleTimeoutMin: envIntOr("SESSION_IDLE_TIMEOUT_MIN", 60),
		JanitorIntervalSec:    envIntOr("JANITOR_INTERVAL_SEC", 60),
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.FlipDelayMS <= 0 {
		return fmt.Errorf("FLIP_DELAY_MS must be positive, got %d", c.FlipDelayMS)
	}
	if c.AdvanceDelayMS <= c.FlipDelayMS {
		return fmt.Errorf("ADVANCE_DELAY_MS must be greater than FLIP_DELAY_MS, got %d", c.AdvanceDelayMS)
	}
	if c.SessionIdleTimeoutMin <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT_MIN must be positive, got %d", c.SessionIdleTimeoutMin)
	}
	if c.JanitorIntervalSec <= 0 {
		return fmt.Errorf("JANITOR_INTERVAL_SEC must be positive, got %d", c.JanitorIntervalSec)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
