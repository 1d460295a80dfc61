package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig holds configuration for local daemon mode
type LocalConfig struct {
	Daemon DaemonConfig `yaml:"daemon"`
	Store  StoreConfig  `yaml:"store"`
	Events EventsConfig `yaml:"events"`
}

// DaemonConfig holds daemon server settings
type DaemonConfig struct {
	Port     int    `yaml:"port"`
	Bind     string `yaml:"bind"`
	LogLevel string `yaml:"log_level"`
}

// StoreConfig holds local persistence settings
type StoreConfig struct {
	// Path to the SQLite database file. Empty means
	// ~/.attune/data/attune.db.
	Path string `yaml:"path"`
}

// EventsConfig holds activity event feed settings
type EventsConfig struct {
	// AMQP URL of the broker to publish activity events to.
	// Empty disables publishing.
	AMQPURL string `yaml:"amqp_url"`
}

// AttuneDir returns the path to ~/.attune
func AttuneDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".attune"), nil
}

// EnsureAttuneDir creates ~/.attune and subdirectories if they don't exist
func EnsureAttuneDir() (string, error) {
	dir, err := AttuneDir()
	if err != nil {
		return "", err
	}

	subdirs := []string{
		"",
		"logs",
		"data",
	}

	for _, subdir := range subdirs {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DefaultLocalConfig returns sensible defaults for local mode
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Daemon: DaemonConfig{
			Port:     7461,
			Bind:     "127.0.0.1",
			LogLevel: "info",
		},
	}
}

// DatabasePath resolves the SQLite file for local mode
func (c *LocalConfig) DatabasePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := AttuneDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data", "attune.db"), nil
}

// LoadLocalConfig loads configuration from ~/.attune/config.yaml
func LoadLocalConfig() (*LocalConfig, error) {
	dir, err := AttuneDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, "config.yaml")

	// If config doesn't exist, return defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultLocalConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultLocalConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveLocalConfig saves configuration to ~/.attune/config.yaml
func SaveLocalConfig(cfg *LocalConfig) error {
	dir, err := EnsureAttuneDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(dir, "config.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
