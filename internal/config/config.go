package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "BIOLQUIZ_"

// App holds runtime configuration for the CLI and the TUI.
type App struct {
	Env string `env:"ENV" envDefault:"development"`

	// DBPath is the progress store file. Empty means store.DefaultDBPath.
	DBPath string `env:"DB"`

	// Bank is a file path or http(s) URL of the question bank. Empty means the bundled sample.
	Bank string `env:"BANK"`

	ImageBase    string        `env:"IMAGE_BASE" envDefault:"/"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`

	Log Log
}

// Log configures the file logger.
type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// File is where the TUI writes logs. Empty means logging.DefaultLogPath.
	File string `env:"LOG_FILE"`
}

// Load reads an optional dotenv file, then parses BIOLQUIZ_* variables.
// A missing dotenv file is not an error; variables already set in the
// environment win over the file.
func Load(dotenv string) (*App, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("parse config: %sFETCH_TIMEOUT must not be negative", EnvPrefix)
	}
	return cfg, nil
}

// IsProduction reports whether the app runs with BIOLQUIZ_ENV=production.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}

// DefaultDotenv is the dotenv file Load reads when the caller has no other preference.
func DefaultDotenv() string {
	if p := os.Getenv(EnvPrefix + "DOTENV"); p != "" {
		return p
	}
	return ".env"
}
