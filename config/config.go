// Package config provides the settings shared by the simxl tools: output
// naming, logging, and the simulator parameters.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. It is read from YAML and can be
// overridden by SIMXL_* environment variables.
type Config struct {
	OutputExt string    `yaml:"output_ext"`
	Log       LogConfig `yaml:"log"`
	Sim       SimConfig `yaml:"sim"`
}

// LogConfig selects where and how much the tools log.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// SimConfig parameterizes the pipelined CPU simulation.
type SimConfig struct {
	FreqMHz    int  `yaml:"freq_mhz"`
	MaxCycles  int  `yaml:"max_cycles"`
	PrintState bool `yaml:"print_state"`
	Monitor    bool `yaml:"monitor"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputExt: ".test_ins",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Sim: SimConfig{
			FreqMHz:   1000,
			MaxCycles: 100000,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// FromEnv loads the file named by SIMXL_CONFIG, if any, and applies the
// SIMXL_* overrides.
func FromEnv() (Config, error) {
	cfg := Default()

	if path := env.Str("SIMXL_CONFIG"); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}

	cfg.OutputExt = env.Str("SIMXL_OUTPUT_EXT", cfg.OutputExt)
	cfg.Log.Level = env.Str("SIMXL_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = env.Str("SIMXL_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = env.Str("SIMXL_LOG_FILE", cfg.Log.File)
	cfg.Sim.FreqMHz = env.Int("SIMXL_SIM_FREQ_MHZ", cfg.Sim.FreqMHz)
	cfg.Sim.MaxCycles = env.Int("SIMXL_SIM_MAX_CYCLES", cfg.Sim.MaxCycles)
	if env.Has("SIMXL_SIM_PRINT_STATE") {
		cfg.Sim.PrintState = env.Bool("SIMXL_SIM_PRINT_STATE")
	}
	if env.Has("SIMXL_SIM_MONITOR") {
		cfg.Sim.Monitor = env.Bool("SIMXL_SIM_MONITOR")
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings for values the tools cannot use.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.OutputExt, ".") || len(c.OutputExt) < 2 {
		return fmt.Errorf("output_ext must start with a dot, got %q", c.OutputExt)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Sim.FreqMHz <= 0 {
		return fmt.Errorf("sim.freq_mhz must be positive, got %d", c.Sim.FreqMHz)
	}

	if c.Sim.MaxCycles <= 0 {
		return fmt.Errorf("sim.max_cycles must be positive, got %d", c.Sim.MaxCycles)
	}

	return nil
}

// SlogLevel converts the configured level name. "trace" enables the
// per-instruction records the tools log below Info+1.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "trace":
		return slog.Level(-100), nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("unknown log.level %q", c.Log.Level)
}
