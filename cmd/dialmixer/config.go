package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/phanxgames/dials"
)

// Config holds the process configuration read from the environment.
type Config struct {
	Env      string `envconfig:"ENV" default:"production"`
	LogLevel string `envconfig:"DIALS_LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"DIALS_LOG_FILE"`

	// Sensitivity defaults laid over the built-in ones. Zero leaves a field
	// unchanged.
	PixelsPerFullRange float64 `envconfig:"DIALS_PIXELS_PER_FULL_RANGE"`
	FastMultiplier     float64 `envconfig:"DIALS_FAST_MULTIPLIER"`
	PreciseMultiplier  float64 `envconfig:"DIALS_PRECISE_MULTIPLIER"`

	ScreenshotDir string `envconfig:"DIALS_SCREENSHOT_DIR" default:"screenshots"`
}

// LoadConfig loads configuration from a .env file and the environment.
func LoadConfig() (*Config, error) {
	// .env is optional.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "err", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Sensitivity returns the environment's sensitivity overrides.
func (c *Config) Sensitivity() dials.Sensitivity {
	return dials.Sensitivity{
		PixelsPerFullRange: c.PixelsPerFullRange,
		FastMultiplier:     c.FastMultiplier,
		PreciseMultiplier:  c.PreciseMultiplier,
	}
}

// apply installs the environment's sensitivity as process-wide defaults.
// It must run before any control is built.
func (c *Config) apply() {
	dials.SetDefaultSensitivity(c.Sensitivity())
}
