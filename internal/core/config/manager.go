// Package config loads dsrename settings from defaults, an optional YAML
// file and DSRENAME_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/aki/dsrename/internal/core/classes"
)

const (
	// FileName is the config file looked up in the working and home directories.
	FileName = ".dsrename"
	// EnvPrefix prefixes environment overrides, e.g. DSRENAME_LOCK_ENABLED.
	EnvPrefix = "DSRENAME"
)

// Manager wraps a viper instance for one invocation.
type Manager struct {
	v        *viper.Viper
	explicit bool
}

// NewManager creates a Manager. configFile may be empty, in which case
// .dsrename.yaml is searched in the working directory and then in $HOME.
func NewManager(configFile string) *Manager {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{v: v, explicit: configFile != ""}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sort", "lexical")
	v.SetDefault("output", "pretty")
	v.SetDefault("classes", slices.Clone(classes.DefaultLabels))
	v.SetDefault("lock.enabled", false)
	v.SetDefault("lock.dir", "")
	v.SetDefault("lock.timeout", "5s")
	v.SetDefault("journal.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounce", "500ms")
}

// Set overrides a key, typically from a command line flag.
func (m *Manager) Set(key string, value any) {
	m.v.Set(key, value)
}

// Load reads the config file if there is one and returns the validated
// configuration. A missing default file is not an error; a missing file
// passed explicitly is.
func (m *Manager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ConfigFile returns the file that was loaded, or "" when defaults are in use.
func (m *Manager) ConfigFile() string {
	return m.v.ConfigFileUsed()
}

// Settings returns every effective key and value.
func (m *Manager) Settings() map[string]any {
	return m.v.AllSettings()
}

// WriteDefaults writes the effective settings to path as YAML. It refuses
// to overwrite an existing file.
func (m *Manager) WriteDefaults(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := m.v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
