package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the room server settings, loaded from the environment
// with an optional .env overlay for local development.
type Config struct {
	Addr            string        `env:"SYNCROOM_ADDR" envDefault:":4444"`
	OriginPatterns  []string      `env:"SYNCROOM_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SYNCROOM_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogDev          bool          `env:"SYNCROOM_LOG_DEV" envDefault:"false"`
}

func Load() (Config, error) {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
