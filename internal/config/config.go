// Package config provides application configuration management for seslog.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the seslog configuration.
type Config struct {
	Theme               string       `toml:"theme"`                 // "dark" or "light"
	Wrap                string       `toml:"wrap"`                  // default wrap mode: "wrap" or "nowrap"
	CollapseThreshold   int          `toml:"collapse_threshold"`    // lines shown for a collapsed entry
	RenderCacheCapacity int          `toml:"render_cache_capacity"` // max cached entry renders
	Follow              FollowConfig `toml:"follow"`                // live-follow settings
}

// FollowConfig holds live-follow settings.
type FollowConfig struct {
	Debounce string `toml:"debounce"` // settle delay after a write (e.g. "200ms")
}

// DebounceDuration returns the parsed debounce duration (default: 200ms).
func (c FollowConfig) DebounceDuration() time.Duration {
	if c.Debounce != "" {
		if d, err := time.ParseDuration(c.Debounce); err == nil {
			return d
		}
	}
	return 200 * time.Millisecond
}

// Dir returns the path to the .seslog directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".seslog"), nil
}

// Path returns the path to the main config file.
func Path() (string, error) {
	configDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from ~/.seslog/config.toml. A missing file
// yields defaults, persisted to disk so the user has something to edit.
func Load() (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	return loadFrom(configPath)
}

func loadFrom(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		cfg := Default()
		if saveErr := saveTo(configPath, cfg); saveErr != nil {
			return cfg, nil // return defaults even if save fails
		}
		return cfg, nil
	} else if err != nil {
		return Config{}, err
	}

	// Start from defaults so missing keys get correct values
	// (e.g. an older config without render_cache_capacity won't get
	// zero, which would shrink the cache to nothing).
	config := Default()
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}

	if config.Theme == "" {
		config.Theme = "dark"
	}
	if config.Wrap != "wrap" && config.Wrap != "nowrap" {
		config.Wrap = "wrap"
	}
	if config.CollapseThreshold < 1 {
		config.CollapseThreshold = Default().CollapseThreshold
	}
	if config.RenderCacheCapacity < 1 {
		config.RenderCacheCapacity = Default().RenderCacheCapacity
	}

	return config, nil
}

// Default returns a default configuration with all defaults set.
func Default() Config {
	return Config{
		Theme:               "dark",
		Wrap:                "wrap",
		CollapseThreshold:   5,
		RenderCacheCapacity: 1000,
		Follow: FollowConfig{
			Debounce: "200ms",
		},
	}
}

// Save saves the configuration to ~/.seslog/config.toml.
func Save(config Config) error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return saveTo(configPath, config)
}

func saveTo(configPath string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}
