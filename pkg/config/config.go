// Package config handles workspace configuration for adbpilot.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the workspace configuration (config.yaml).
type Config struct {
	// Device selection
	Serial  string `yaml:"serial"`  // Device serial, empty = auto-detect
	ADBPath string `yaml:"adbPath"` // adb binary, empty = search PATH

	// Snapshot settings
	DumpPath string `yaml:"dumpPath"` // Local destination for UI dumps, empty = per-session temp file

	// Output settings
	ScreenshotDir string `yaml:"screenshotDir"` // Directory for pulled screenshots
	RecordingDir  string `yaml:"recordingDir"`  // Directory for pulled screen recordings

	// Logging
	LogFile string `yaml:"logFile"` // Log destination, empty = stderr
	Verbose bool   `yaml:"verbose"` // Debug-level logging
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}
