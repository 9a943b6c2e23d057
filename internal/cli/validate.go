package cli

import (
	"github.com/sdelcourt/copyconfigs/pkg/config"
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// loadConfig loads settings from file or returns defaults
func loadConfig() (*config.Config, error) {
	if globalFlags.Settings != "" {
		return config.LoadFromFile(globalFlags.Settings)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides settings with command-line flags. The result
// is the immutable configuration for this invocation; nothing mutates it
// afterwards.
func applyFlagsToConfig(cfg *config.Config) {
	if copyFlags.Conflict != "" {
		cfg.Conflict = models.ConflictMode(copyFlags.Conflict)
	}

	if copyFlags.Output != "" {
		cfg.Output.Format = copyFlags.Output
	}
	if copyFlags.Progress {
		cfg.Output.Progress = true
	}
	if globalFlags.NoColor {
		cfg.Output.Color = false
	}

	if copyFlags.LogFile != "" {
		cfg.Logging.File = copyFlags.LogFile
	}
	if copyFlags.LogFormat != "" {
		cfg.Logging.Format = copyFlags.LogFormat
	}
	if copyFlags.LogLevel != "" {
		cfg.Logging.Level = copyFlags.LogLevel
	}
}
