package config

import "time"

// Config is the complete buildsight configuration. It loads from
// .buildsight/config.yml with environment variable overrides.
type Config struct {
	Repo      RepoConfig      `yaml:"repo" mapstructure:"repo"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding" mapstructure:"embedding"`
	Limits    LimitsConfig    `yaml:"limits" mapstructure:"limits"`
}

// RepoConfig controls repository classification.
type RepoConfig struct {
	// Type overrides path-based classification when non-empty, e.g.
	// "home-assistant" or "buildroot".
	Type string `yaml:"type" mapstructure:"type"`
}

// PathsConfig defines which build-tree files to ingest and which to skip.
type PathsConfig struct {
	Source []string `yaml:"source" mapstructure:"source"` // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// StorageConfig defines the unit store and batching behavior.
type StorageConfig struct {
	Location  string `yaml:"location" mapstructure:"location"`     // Override default .buildsight/units.db
	BatchSize int    `yaml:"batch_size" mapstructure:"batch_size"` // Units per storage flush
}

// EmbeddingConfig configures the optional vector index.
type EmbeddingConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "mock" or "none"
}

// LimitsConfig bounds a single file's extraction. Several grammars rely on
// pattern matching, so unbounded inputs must not be able to stall a run.
type LimitsConfig struct {
	MaxFileBytes int64         `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
	ParseTimeout time.Duration `yaml:"parse_timeout" mapstructure:"parse_timeout"`
}

// Default returns a configuration with sensible defaults for an embedded-OS
// build tree.
func Default() *Config {
	return &Config{
		Repo: RepoConfig{
			Type: "",
		},
		Paths: PathsConfig{
			Source: []string{
				"**/*.sh",
				"**/*.mk",
				"**/*.py",
				"**/*.ush",
				"**/*.in",
				"**/*.cfg",
			},
			Ignore: []string{
				".git/**",
				"output/**",
				"dl/**",
				"host/**",
				"__pycache__/**",
			},
		},
		Storage: StorageConfig{
			Location:  "", // Empty means .buildsight/units.db under the tree root
			BatchSize: 128,
		},
		Embedding: EmbeddingConfig{
			Provider: "none",
		},
		Limits: LimitsConfig{
			MaxFileBytes: 2 << 20, // 2 MiB
			ParseTimeout: 10 * time.Second,
		},
	}
}
