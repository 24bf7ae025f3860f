// Package config loads the tool configuration from an optional YAML file
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ImportConfig struct {
	// DuplicateWindowHours is the trailing authoring window within which a
	// matching transaction counts as a probable re-submission.
	DuplicateWindowHours int `mapstructure:"duplicate_window_hours"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Import   ImportConfig   `mapstructure:"import"`
}

// DuplicateWindow returns the configured window as a duration.
func (c *Config) DuplicateWindow() time.Duration {
	return time.Duration(c.Import.DuplicateWindowHours) * time.Hour
}

// Load reads configuration from the given file path (e.g. "bahi.yaml").
// When no path is given, a bahi.yaml in the working directory is used if
// present; a missing default file is not an error. Environment variables
// with the BAHI prefix override everything (e.g. BAHI_DATABASE_PATH).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "./data/bahi.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("import.duplicate_window_hours", 24)

	if path == "" {
		v.SetConfigName("bahi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("BAHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
