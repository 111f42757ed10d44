// Package config loads settings from the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
)

// UI modes.
const (
	UIText   = "text"
	UIWindow = "window"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Width         int    `env:"SNAKE_WIDTH" envDefault:"11"`
	Height        int    `env:"SNAKE_HEIGHT" envDefault:"13"`
	Seed          uint64 `env:"SNAKE_SEED"` // 0 picks a random seed
	SelfCollision bool   `env:"SNAKE_SELF_COLLISION"`
	UI            string `env:"SNAKE_UI" envDefault:"text"`
	Autopilot     bool   `env:"SNAKE_AUTOPILOT"`
	TrainEpisodes int    `env:"SNAKE_TRAIN_EPISODES"`
	QTablePath    string `env:"SNAKE_QTABLE" envDefault:"data/qtable.json"`
	DBPath        string `env:"SNAKE_DB_PATH"`
	SpectateAddr  string `env:"SNAKE_SPECTATE_ADDR"`
	MetricsAddr   string `env:"SNAKE_METRICS_ADDR"`
	LogLevel      string `env:"SNAKE_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment, then lets flags in args override it.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("slither", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "field width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "field height")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	fs.BoolVar(&cfg.SelfCollision, "self-collision", cfg.SelfCollision, "end the game when the snake bites itself")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "user interface (text, window)")
	fs.BoolVar(&cfg.Autopilot, "autopilot", cfg.Autopilot, "let the trained agent play")
	fs.IntVar(&cfg.TrainEpisodes, "train", cfg.TrainEpisodes, "train the agent for this many episodes and exit")
	fs.StringVar(&cfg.QTablePath, "qtable", cfg.QTablePath, "q-table file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite file for game records (empty = memory only)")
	fs.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "address for the websocket spectator stream")
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "address for the prometheus endpoint")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: field must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.UI != UIText && c.UI != UIWindow {
		return fmt.Errorf("%w: unknown ui %q", ErrInvalidConfig, c.UI)
	}
	if c.TrainEpisodes < 0 {
		return fmt.Errorf("%w: negative training episodes", ErrInvalidConfig)
	}
	return nil
}
