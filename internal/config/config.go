package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all RescueBot settings, populated from environment variables.
type Config struct {
	ScenariosFile     string `env:"RESCUEBOT_SCENARIOS_FILE"`
	UserLogPath       string `env:"RESCUEBOT_USER_LOG"       envDefault:"userRescueBot.csv"`
	SimulationLogPath string `env:"RESCUEBOT_SIMULATION_LOG" envDefault:"simulationRescueBot.csv"`

	// ReportEvery is how many judged scenarios pass between interactive reports.
	ReportEvery int `env:"RESCUEBOT_REPORT_EVERY" envDefault:"3"`
	// Seed feeds the random scenario generator; zero picks a time-based seed.
	Seed        uint64 `env:"RESCUEBOT_SEED"`
	MetricsFile string `env:"RESCUEBOT_METRICS_FILE"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if c.ReportEvery <= 0 {
		return errors.New("RESCUEBOT_REPORT_EVERY must be positive")
	}
	if c.UserLogPath == "" {
		return errors.New("RESCUEBOT_USER_LOG is required")
	}
	if c.SimulationLogPath == "" {
		return errors.New("RESCUEBOT_SIMULATION_LOG is required")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

// SetLogPath points both decision logs at one file, as the --log flag does.
func (c *Config) SetLogPath(path string) {
	if path == "" {
		return
	}
	c.UserLogPath = path
	c.SimulationLogPath = path
}
