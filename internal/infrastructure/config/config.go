package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/factdojo/backend/internal/domain/scoring"
)

type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS,required,notEmpty"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	DatabasePath    string        `env:"DATABASE_PATH" envDefault:"factdojo.db"`

	// Planning
	SessionSize int `env:"SESSION_SIZE" envDefault:"10"`

	// Scoring policy
	FastThreshold time.Duration `env:"FAST_THRESHOLD" envDefault:"3s"`
	KCorrectFast  float64       `env:"K_CORRECT_FAST" envDefault:"0.30"`
	KCorrectSlow  float64       `env:"K_CORRECT_SLOW" envDefault:"0.10"`
	KWrong        float64       `env:"K_WRONG" envDefault:"0.50"`

	DashboardWorkers int `env:"DASHBOARD_WORKERS" envDefault:"4"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.SessionSize < 1 {
		return nil, fmt.Errorf("config: SESSION_SIZE must be positive, got %d", cfg.SessionSize)
	}
	if err := cfg.Policy().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Policy builds the scoring policy from the K_* and FAST_THRESHOLD settings.
func (c *Config) Policy() scoring.Policy {
	return scoring.Policy{
		FastThreshold: c.FastThreshold,
		CorrectFast:   c.KCorrectFast,
		CorrectSlow:   c.KCorrectSlow,
		Wrong:         c.KWrong,
	}
}
