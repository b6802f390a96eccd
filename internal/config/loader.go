package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given tree root.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (BUILDSIGHT_*)
// 2. Config file (.buildsight/config.yml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".buildsight")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("BUILDSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("repo.type")
	v.BindEnv("storage.location")
	v.BindEnv("storage.batch_size")
	v.BindEnv("embedding.provider")
	v.BindEnv("limits.max_file_bytes")
	v.BindEnv("limits.parse_timeout")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("repo.type", defaults.Repo.Type)
	v.SetDefault("paths.source", defaults.Paths.Source)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("storage.location", defaults.Storage.Location)
	v.SetDefault("storage.batch_size", defaults.Storage.BatchSize)
	v.SetDefault("embedding.provider", defaults.Embedding.Provider)
	v.SetDefault("limits.max_file_bytes", defaults.Limits.MaxFileBytes)
	v.SetDefault("limits.parse_timeout", defaults.Limits.ParseTimeout)
}

// LoadFromDir loads configuration for a specific tree root.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

// DatabasePath resolves the unit store location for a tree root.
func (c *Config) DatabasePath(rootDir string) string {
	if c.Storage.Location != "" {
		return c.Storage.Location
	}
	return filepath.Join(rootDir, ".buildsight", "units.db")
}

// VectorPath resolves the vector index location for a tree root.
func (c *Config) VectorPath(rootDir string) string {
	return filepath.Join(rootDir, ".buildsight", "vectors")
}
