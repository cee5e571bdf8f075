// ABOUTME: Wellkit configuration management.
// ABOUTME: Handles export root, reconstruction options, and output defaults.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akeil/wellkit/internal/series"
)

// Config stores wellkit configuration.
type Config struct {
	// ExportRoot is the directory holding the raw JSON export.
	// Supports ~ expansion. Defaults to ~/.local/share/wellkit/export.
	ExportRoot string `json:"export_root,omitempty"`

	// OutputDir is where reconstructed datasets are written.
	// Defaults to ~/.local/share/wellkit/out.
	OutputDir string `json:"output_dir,omitempty"`

	// Format selects the output sink: "csv" (default), "parquet" or "sqlite".
	Format string `json:"format,omitempty"`

	// InterpolateGaps enables bounded gap interpolation for the
	// continuous metrics. Defaults to true; set to false to disable.
	InterpolateGaps *bool `json:"interpolate_gaps,omitempty"`

	// MaxGapMinutes bounds how long a gap interpolation may bridge.
	MaxGapMinutes int `json:"max_gap_minutes,omitempty"`

	// LastNDays limits reconstruction to the most recent N days.
	// Zero means all exported days.
	LastNDays int `json:"last_n_days,omitempty"`
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "wellkit")
}

// GetExportRoot returns the configured export root with ~ expanded.
func (c *Config) GetExportRoot() string {
	if c.ExportRoot == "" {
		return filepath.Join(DataDir(), "export")
	}
	return ExpandPath(c.ExportRoot)
}

// GetOutputDir returns the configured output directory with ~ expanded.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return filepath.Join(DataDir(), "out")
	}
	return ExpandPath(c.OutputDir)
}

// GetFormat returns the configured output format, defaulting to "csv".
func (c *Config) GetFormat() string {
	if c.Format == "" {
		return "csv"
	}
	return c.Format
}

// SeriesOptions translates the config into reconstruction options.
func (c *Config) SeriesOptions() series.Options {
	opts := series.DefaultOptions()
	opts.Freq = time.Minute
	if c.InterpolateGaps != nil {
		opts.InterpolateGaps = *c.InterpolateGaps
	}
	if c.MaxGapMinutes > 0 {
		opts.MaxGapMinutes = c.MaxGapMinutes
	}
	opts.LastNDays = c.LastNDays
	return opts
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "wellkit", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
