// Package config handles global paperoni configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/paperoni/config.yml. Every field is optional; zero values
// select the built-in defaults.
type GlobalConfig struct {
	S2APIKey           string `yaml:"s2_api_key,omitempty"`
	RateWindowSeconds  int    `yaml:"rate_window_seconds,omitempty"`
	RateWindowRequests int    `yaml:"rate_window_requests,omitempty"`
	DatabasePath       string `yaml:"database_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "paperoni"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// DBFile is the default collection database file name.
	DBFile = "papers.db"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/paperoni/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached config (for tests).
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// APIKey returns the Semantic Scholar API key, preferring the
// S2_API_KEY environment variable over the config file.
func (c *GlobalConfig) APIKey() string {
	if key := os.Getenv("S2_API_KEY"); key != "" {
		return key
	}
	return c.S2APIKey
}

// RateWindow returns the configured quota window and request count, or
// zeros when unset so callers fall back to the client defaults.
func (c *GlobalConfig) RateWindow() (time.Duration, int) {
	if c.RateWindowSeconds <= 0 || c.RateWindowRequests <= 0 {
		return 0, 0
	}
	return time.Duration(c.RateWindowSeconds) * time.Second, c.RateWindowRequests
}

// DBPath returns the collection database path, defaulting next to the
// config file.
func (c *GlobalConfig) DBPath() string {
	if c.DatabasePath != "" {
		return expandTilde(c.DatabasePath)
	}
	return filepath.Join(filepath.Dir(GlobalConfigPath()), DBFile)
}

// expandTilde expands a leading ~ to the user's home directory.
func expandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
