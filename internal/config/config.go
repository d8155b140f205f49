package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Config represents ~/.slicer-guide/config.yaml.
type Config struct {
	DefaultMode    string   `yaml:"default_mode"`
	TypePriority   []string `yaml:"type_priority"`
	VendorPriority []string `yaml:"vendor_priority"`
	Region         string   `yaml:"region"`
	LogLevel       string   `yaml:"log_level"`
	LogFile        string   `yaml:"log_file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultMode:    "materials",
		TypePriority:   []string{"pla", "abs", "pet", "tpu", "pc"},
		VendorPriority: []string{"bambu lab", "bambulab", "bbl", "kexcelled", "polymaker", "esun", "generic"},
		LogLevel:       "info",
	}
}

// Parse parses config.yaml bytes into a Config. Omitted keys keep their
// defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path. A missing file yields Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Level maps LogLevel onto a slog level. Empty means info.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
