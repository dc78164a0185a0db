package config

import (
	"fmt"

	"github.com/aki/dsrename/internal/core/dataset"
	"github.com/aki/dsrename/internal/core/logger"
)

// Validate checks that every setting has a usable value.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := dataset.ParseSortOrder(cfg.Sort); err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	switch cfg.Output {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("output: unsupported format %q", cfg.Output)
	}
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logger.ParseFormat(cfg.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	if cfg.Lock.Timeout < 0 {
		return fmt.Errorf("lock.timeout must not be negative")
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	for _, c := range cfg.Classes {
		if err := dataset.ValidatePrefix(c); err != nil {
			return fmt.Errorf("classes: invalid label %q: %w", c, err)
		}
	}
	return nil
}
