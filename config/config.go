package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDB       = "TRADEJOURNAL_DB"
	EnvLogLevel = "TRADEJOURNAL_LOG_LEVEL"
	EnvTimezone = "TRADEJOURNAL_TIMEZONE"
)

// Config represents the complete journal configuration
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Import  ImportConfig  `json:"import" yaml:"import"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// JournalConfig selects the trade store
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ImportConfig contains defaults applied to every import
type ImportConfig struct {
	// Timezone is an IANA name or "Local"; exports carry naive timestamps.
	Timezone        string `json:"timezone" yaml:"timezone"`
	DefaultAccount  string `json:"default_account,omitempty" yaml:"default_account,omitempty"`
	DefaultStrategy string `json:"default_strategy,omitempty" yaml:"default_strategy,omitempty"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// MetricsConfig controls the Prometheus textfile written after imports
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "memory":
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'memory'")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("import.timezone: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("unknown log.level: %s", c.Log.Level)
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Location resolves the import timezone. Empty means Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Import.Timezone == "" || c.Import.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Import.Timezone)
}

// ApplyEnv loads the given .env files, then overrides file values with
// the TRADEJOURNAL_* variables. Missing .env files are not an error.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if val := os.Getenv(EnvDB); val != "" {
		c.Journal.DBPath = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv(EnvTimezone); val != "" {
		c.Import.Timezone = val
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradejournal.db",
		},
		Import: ImportConfig{
			Timezone: "Local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
