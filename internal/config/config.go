// Package config handles reading and writing .dialcoach/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .dialcoach/config.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	Timing   TimingConfig   `yaml:"timing"`
	Voice    VoiceConfig    `yaml:"voice"`
	Coaching CoachingConfig `yaml:"coaching"`
	Seed     int64          `yaml:"seed"` // 0 means time-based seeding
}

// TimingConfig controls the turn controller's timers.
type TimingConfig struct {
	SettleMs       int `yaml:"settle_ms"`        // silence before an unpunctuated fragment commits
	ThinkingMs     int `yaml:"thinking_ms"`      // pause before the persona replies
	SafetyTimeoutS int `yaml:"safety_timeout_s"` // forced recovery if playback never completes
}

// VoiceConfig controls the playback engine.
type VoiceConfig struct {
	Lang           string `yaml:"lang"`
	WordsPerMinute int    `yaml:"words_per_minute"`
}

// CoachingConfig controls the hints panel default.
type CoachingConfig struct {
	Enabled bool `yaml:"enabled"`
}

const configDir = ".dialcoach"
const configFile = "config.yaml"

// ReadConfig reads .dialcoach/config.yaml from the given directory.
// dir is the working directory (not .dialcoach/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .dialcoach/config.yaml in the given directory.
// Creates the .dialcoach/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Timing: TimingConfig{
			SettleMs:       1500,
			ThinkingMs:     800,
			SafetyTimeoutS: 30,
		},
		Voice: VoiceConfig{
			Lang:           "en-US",
			WordsPerMinute: 150,
		},
		Coaching: CoachingConfig{
			Enabled: true,
		},
	}
}
