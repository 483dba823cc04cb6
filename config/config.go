// Package config provides configuration loading and management for semdelta.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete semdelta configuration
type Config struct {
	Repository RepositoryConfig `yaml:"repository"`
	NATS       NATSConfig       `yaml:"nats"`
	Storage    StorageConfig    `yaml:"storage"`
	Update     UpdateConfig     `yaml:"update"`
	Log        LogConfig        `yaml:"log"`
}

// RepositoryConfig describes the repository resources live in
type RepositoryConfig struct {
	// BaseURI is the namespace resource identifiers resolve against
	// (e.g., http://localhost:8983/fedora/rest/test)
	BaseURI string `yaml:"base_uri"`
	// Schemas is the path of the class schema file
	Schemas string `yaml:"schemas"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Timeout bounds connecting and each publish
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig configures where resource content is persisted
type StorageConfig struct {
	// Bucket is the JetStream KV bucket for resource content
	Bucket string `yaml:"bucket"`
	// Memory keeps content in process instead of JetStream
	Memory bool `yaml:"memory"`
}

// UpdateConfig configures update publishing
type UpdateConfig struct {
	// Subject is the JetStream subject updates are published on
	Subject string `yaml:"subject"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Repository: RepositoryConfig{
			BaseURI: "http://localhost:8983/fedora/rest/test",
			Schemas: "schemas.yaml",
		},
		NATS: NATSConfig{
			URL:     "", // Publishing disabled
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Bucket: "SEMDELTA_CONTENT",
		},
		Update: UpdateConfig{
			Subject: "graph.update.sparql",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Repository.BaseURI == "" {
		return fmt.Errorf("repository.base_uri is required")
	}
	u, err := url.Parse(c.Repository.BaseURI)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("repository.base_uri must be an absolute URI: %q", c.Repository.BaseURI)
	}
	if c.NATS.Timeout < 0 {
		return fmt.Errorf("nats.timeout must not be negative")
	}
	if c.Update.Subject == "" {
		return fmt.Errorf("update.subject is required")
	}
	if strings.ContainsAny(c.Update.Subject, " \t*>") {
		return fmt.Errorf("update.subject must be a literal NATS subject: %q", c.Update.Subject)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a configured level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error: %q", level)
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Repository
	if other.Repository.BaseURI != "" {
		c.Repository.BaseURI = other.Repository.BaseURI
	}
	if other.Repository.Schemas != "" {
		c.Repository.Schemas = other.Repository.Schemas
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Timeout != 0 {
		c.NATS.Timeout = other.NATS.Timeout
	}

	// Storage
	if other.Storage.Bucket != "" {
		c.Storage.Bucket = other.Storage.Bucket
	}
	if other.Storage.Memory {
		c.Storage.Memory = true
	}

	// Update
	if other.Update.Subject != "" {
		c.Update.Subject = other.Update.Subject
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
