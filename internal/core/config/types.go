package config

import "time"

// Config is the effective dsrename configuration.
type Config struct {
	Sort    string        `mapstructure:"sort"`
	Output  string        `mapstructure:"output"`
	Classes []string      `mapstructure:"classes"`
	Lock    LockConfig    `mapstructure:"lock"`
	Journal JournalConfig `mapstructure:"journal"`
	Log     LogConfig     `mapstructure:"log"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// LockConfig controls the advisory per-directory lock.
type LockConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JournalConfig controls progress journaling. An empty Dir disables it.
type JournalConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}
