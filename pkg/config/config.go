package config

import (
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// Config represents the application configuration: standing defaults that
// command-line flags override per invocation. It is materialized once at
// startup and read-only afterwards.
type Config struct {
	// Conflict is the default conflict policy
	Conflict models.ConflictMode `yaml:"conflict"`

	// RulesFile is a standing rule-file override (lower priority than the
	// --config flag, higher than the search path)
	RulesFile string `yaml:"rules_file"`

	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show progress bars
	Color    bool   `yaml:"color"`    // Colorize human output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	File   string `yaml:"file"`   // Log file path (empty = stderr only)
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Conflict: models.ConflictSkip,
		Output: OutputConfig{
			Format:   "human",
			Progress: false,
			Color:    true,
		},
		Logging: LoggingConfig{
			File:   "",
			Format: "text",
			Level:  "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := models.ParseConflictMode(string(c.Conflict)); err != nil {
		return err
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'text' or 'json'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
