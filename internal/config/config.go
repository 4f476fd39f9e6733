// Package config loads the ziphopp yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/creativeyann17/ziphopp/internal/logger"
	"github.com/creativeyann17/ziphopp/pkg/history"
	"github.com/creativeyann17/ziphopp/pkg/picker"
)

const (
	// AppDir is the directory name used under the user config directory
	AppDir = "ziphopp"

	// FileName is the default config file name
	FileName = "config.yaml"

	// HistoryFileName is the default history file name
	HistoryFileName = "hopp.db"
)

var (
	// ErrInvalidMaxRecent is returned when max_recent is below 1
	ErrInvalidMaxRecent = errors.New("max_recent must be at least 1")

	// ErrNoPatterns is returned when the filter has no patterns
	ErrNoPatterns = errors.New("filter.patterns must not be empty")
)

// Config is the on-disk configuration
type Config struct {
	HistoryFile string       `yaml:"history_file"`
	MaxRecent   int          `yaml:"max_recent"`
	Filter      FilterConfig `yaml:"filter"`
	VerifyData  bool         `yaml:"verify_data"`
	Log         LogConfig    `yaml:"log"`
}

// FilterConfig mirrors picker.Filter
type FilterConfig struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// LogConfig selects diagnostics verbosity and encoding
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir returns the ziphopp config directory
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the built-in configuration
func Default() *Config {
	historyFile := HistoryFileName
	if dir, err := Dir(); err == nil {
		historyFile = filepath.Join(dir, HistoryFileName)
	}
	return &Config{
		HistoryFile: historyFile,
		MaxRecent:   history.DefaultMaxEntries,
		Filter: FilterConfig{
			Name:     picker.ZipFilter.Name,
			Patterns: append([]string(nil), picker.ZipFilter.Patterns...),
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(logger.FormatText),
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values and expands ~/ in the history path
func (c *Config) Validate() error {
	if c.MaxRecent < 1 {
		return ErrInvalidMaxRecent
	}
	if len(c.Filter.Patterns) == 0 {
		return ErrNoPatterns
	}
	if c.Filter.Name == "" {
		c.Filter.Name = picker.ZipFilter.Name
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return err
	}

	expanded, err := expandHome(c.HistoryFile)
	if err != nil {
		return err
	}
	c.HistoryFile = expanded
	return nil
}

// PickerFilter converts the filter section
func (c *Config) PickerFilter() picker.Filter {
	return picker.Filter{Name: c.Filter.Name, Patterns: c.Filter.Patterns}
}

// LoggerOptions converts the log section; Validate has already checked it
func (c *Config) LoggerOptions() []logger.Option {
	level, _ := logger.ParseLevel(c.Log.Level)
	format, _ := logger.ParseFormat(c.Log.Format)
	return []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
