// Package config provides codec defaults loaded from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:LoadConfig"

// Config holds interaction-codec defaults. The 255-byte default length
// limit matches the interactive-message callback_id field the encoded
// strings were originally sized for.
type Config struct {
	// DefaultVersion is the version tag used when an encode call does not
	// pin one. Must be a single character and registered.
	DefaultVersion string `envconfig:"CODEC_DEFAULT_VERSION" default:"A"`
	// MaxEncodedLength caps encoded strings when the caller supplies no
	// limit of its own. 0 disables the default limit.
	MaxEncodedLength int `envconfig:"CODEC_MAX_ENCODED_LENGTH" default:"255"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.DefaultVersion) != 1 {
		return fmt.Errorf("%s - CODEC_DEFAULT_VERSION must be exactly one character, got %q", logPrefix, c.DefaultVersion)
	}
	if c.MaxEncodedLength < 0 {
		return fmt.Errorf("%s - CODEC_MAX_ENCODED_LENGTH must not be negative", logPrefix)
	}
	return nil
}
