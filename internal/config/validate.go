package config

import "fmt"

// Validate rejects configurations the pipeline cannot run with.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Source) == 0 {
		return fmt.Errorf("paths.source must list at least one pattern")
	}
	if cfg.Storage.BatchSize < 0 {
		return fmt.Errorf("storage.batch_size must not be negative, got %d", cfg.Storage.BatchSize)
	}
	if cfg.Limits.MaxFileBytes < 0 {
		return fmt.Errorf("limits.max_file_bytes must not be negative, got %d", cfg.Limits.MaxFileBytes)
	}
	if cfg.Limits.ParseTimeout < 0 {
		return fmt.Errorf("limits.parse_timeout must not be negative, got %v", cfg.Limits.ParseTimeout)
	}

	switch cfg.Embedding.Provider {
	case "", "none", "mock":
	default:
		return fmt.Errorf("unknown embedding provider: %q", cfg.Embedding.Provider)
	}

	switch cfg.Repo.Type {
	case "", "home-assistant", "buildroot":
	default:
		return fmt.Errorf("unknown repo type: %q", cfg.Repo.Type)
	}

	return nil
}
