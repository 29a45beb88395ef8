// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/zeusync/interact/internal/core/observability/log"
)

// Config holds the settings of the scene runner.
type Config struct {
	// Scene is the path of the scene YAML file.
	Scene    string `env:"INTERACT_SCENE" envDefault:"scenes/garage.yaml"`
	LogLevel string `env:"INTERACT_LOG_LEVEL" envDefault:"info"`
	// TickRate is the number of simulation ticks per second.
	TickRate float64 `env:"INTERACT_TICK_RATE" envDefault:"30"`
	// MaxTicks stops the run after this many ticks; 0 runs until the script ends.
	MaxTicks int `env:"INTERACT_MAX_TICKS" envDefault:"0"`
	// Reach overrides the scene's targeting distance when positive.
	Reach float64 `env:"INTERACT_REACH" envDefault:"0"`
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("INTERACT_SCENE is required")
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("INTERACT_TICK_RATE must be positive, got %v", c.TickRate)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("INTERACT_MAX_TICKS must not be negative, got %d", c.MaxTicks)
	}
	if c.Reach < 0 {
		return fmt.Errorf("INTERACT_REACH must not be negative, got %v", c.Reach)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("INTERACT_LOG_LEVEL: %w", err)
	}
	return nil
}

// Level is the parsed log level; Validate has already rejected bad values.
func (c Config) Level() log.Level {
	l, _ := log.ParseLevel(c.LogLevel)
	return l
}

// TickInterval is the wall-clock duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// TickSeconds is the simulated duration of one tick.
func (c Config) TickSeconds() float64 { return 1 / c.TickRate }
