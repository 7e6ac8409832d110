package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

// Config holds every knob the CLI exposes.
type Config struct {
	// Input; File wins over Scenario when both are set
	File     string `mapstructure:"file"`
	Scenario string `mapstructure:"scenario"`

	// Convergence mode
	Epsilon    float64 `mapstructure:"epsilon"`
	Discount   float64 `mapstructure:"discount"`
	Discipline string  `mapstructure:"discipline"`
	MaxSweeps  int     `mapstructure:"max_sweeps"`

	// Fixed-horizon mode
	Gamma      float64 `mapstructure:"gamma"`
	Iterations int     `mapstructure:"iterations"`
	Chart      string  `mapstructure:"chart"`

	// Output
	LogLevel string `mapstructure:"log_level"`
	NoColor  bool   `mapstructure:"no_color"`
}

// Default returns a config with sensible defaults. A negative Discount or
// Gamma means "use the value stored in the definition".
func Default() *Config {
	return &Config{
		Scenario:   "threeway",
		Epsilon:    0.01,
		Discount:   -1,
		Discipline: mdp.InPlace.String(),
		MaxSweeps:  100000,
		Gamma:      -1,
		Iterations: 4,
		LogLevel:   "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.File == "" && c.Scenario == "" {
		return fmt.Errorf("one of file or scenario is required")
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive")
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("max_sweeps must not be negative")
	}
	if c.Discount > 1 || c.Gamma > 1 {
		return fmt.Errorf("discount and gamma must not exceed 1")
	}
	if _, err := mdp.ParseUpdateDiscipline(c.Discipline); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
}
