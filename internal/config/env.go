// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"pong/internal/game"
)

// Config is read once at startup. The field size is fixed for the rest of
// the process.
type Config struct {
	Width    int    `env:"PONG_WIDTH" envDefault:"800"`
	Height   int    `env:"PONG_HEIGHT" envDefault:"600"`
	TickRate int    `env:"PONG_TICK_RATE" envDefault:"60"`
	Seed     int64  `env:"PONG_SEED"` // 0 seeds from the clock
	Port     string `env:"PORT" envDefault:"8080"`
	WebDir   string `env:"PONG_WEB_DIR" envDefault:"web"`
	Server   string `env:"PONG_SERVER"` // ws URL for remote play, empty plays locally
}

var (
	ErrFieldTooSmall = errors.New("field too small")
	ErrTickRate      = errors.New("tick rate must be positive")
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that both paddles and the ball fit inside the field.
func (c Config) Validate() error {
	minW := 2*(game.PaddleMargin+game.PaddleWidth) + game.BallSize
	if float64(c.Width) <= minW {
		return fmt.Errorf("%w: width %d, need more than %v", ErrFieldTooSmall, c.Width, minW)
	}
	if float64(c.Height) <= game.PaddleHeight {
		return fmt.Errorf("%w: height %d, need more than %v", ErrFieldTooSmall, c.Height, game.PaddleHeight)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrTickRate, c.TickRate)
	}
	return nil
}

func (c Config) Field() game.Field {
	return game.Field{W: float64(c.Width), H: float64(c.Height)}
}

func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
