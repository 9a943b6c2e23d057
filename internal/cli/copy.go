package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sdelcourt/copyconfigs/internal/vcs"
	"github.com/sdelcourt/copyconfigs/pkg/config"
	"github.com/sdelcourt/copyconfigs/pkg/engine"
	"github.com/sdelcourt/copyconfigs/pkg/logging"
	"github.com/sdelcourt/copyconfigs/pkg/output"
	"github.com/sdelcourt/copyconfigs/pkg/rules"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
	"github.com/spf13/cobra"
)

// CopyFlags holds copy command flags
type CopyFlags struct {
	Targets  []string
	Config   string
	Source   string
	Conflict string
	DryRun   bool
	Output   string
	Progress bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var copyFlags CopyFlags

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy untracked config files into target directories",
		Long: `Copy version-control-excluded configuration files (secrets, AI-assistant
configuration, editor settings) from the source working tree into one or
more target directories, preserving relative paths.

Targets come from repeated --target flags, or one per line on stdin when
the input is piped.`,
		RunE: runCopy,
	}

	cmd.Flags().StringArrayVarP(&copyFlags.Targets, "target", "t", nil, "target directory (repeatable)")
	cmd.Flags().StringVarP(&copyFlags.Config, "config", "c", "", "rule file override")
	cmd.Flags().StringVarP(&copyFlags.Source, "source", "s", "", "source root override (bypasses VCS lookup)")
	cmd.Flags().StringVarP(&copyFlags.Conflict, "conflict", "C", "", "conflict policy: skip, overwrite, backup (default: skip)")
	cmd.Flags().BoolVarP(&copyFlags.DryRun, "dry-run", "n", false, "report what would be copied without writing")
	cmd.Flags().StringVarP(&copyFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&copyFlags.Progress, "progress", false, "show a progress bar per target")

	cmd.Flags().StringVar(&copyFlags.LogFile, "log-file", "", "write logs to file")
	cmd.Flags().StringVar(&copyFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&copyFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load settings and fold the flags in
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve the source root: override > git worktree > cwd
	sourceRoot, err := vcs.ResolveSourceRoot(ctx, copyFlags.Source)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Resolve the rule set. An unreadable explicit override is the one
	// configuration problem that is fatal.
	override := copyFlags.Config
	if override == "" {
		override = cfg.RulesFile
	}
	ruleSet, diags, err := rules.Resolve(sourceRoot, override)
	if err != nil {
		return err
	}
	for _, d := range diags {
		logger.Warn(ctx, "skipping rule", logging.Fields{"reason": d.Error()})
	}

	targets, err := collectTargets(copyFlags.Targets, os.Stdin)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no target directories provided (use --target or pipe paths on stdin)")
	}

	source, err := storage.NewLocal(sourceRoot)
	if err != nil {
		return fmt.Errorf("failed to open source root: %w", err)
	}
	defer source.Close()

	formatter := createFormatter(cfg)

	eng := engine.New(source, ruleSet, cfg.Conflict, copyFlags.DryRun, formatter, logger)
	report, err := eng.Run(ctx, targets)
	if err != nil {
		return err
	}

	if code := report.Status.ExitCode(); code != 0 {
		logger.Close()
		os.Exit(code)
	}
	return nil
}

// createFormatter picks the output formatter from the effective settings
func createFormatter(cfg *config.Config) output.Formatter {
	noColor := !cfg.Output.Color
	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(os.Stdout)
	case cfg.Output.Progress:
		return output.NewProgressFormatter(os.Stdout, noColor)
	default:
		return output.NewHumanFormatter(os.Stdout, noColor, globalFlags.Verbose || globalFlags.Debug)
	}
}

// createLogger builds the diagnostics logger from the effective settings
func createLogger(cfg *config.Config) (logging.Logger, error) {
	level := logging.ParseLevel(cfg.Logging.Level)
	if globalFlags.Debug {
		level = logging.DebugLevel
	} else if globalFlags.Verbose && level > logging.InfoLevel {
		level = logging.InfoLevel
	}

	if cfg.Logging.File != "" {
		format := logging.FormatText
		if cfg.Logging.Format == "json" {
			format = logging.FormatJSON
		}
		return logging.NewFile(cfg.Logging.File, format, level)
	}

	if !globalFlags.Verbose && !globalFlags.Debug {
		// Warnings and errors still surface on stderr
		level = maxLevel(level, logging.WarnLevel)
	}
	return logging.NewConsole(level, !cfg.Output.Color), nil
}

func maxLevel(a, b logging.Level) logging.Level {
	if a > b {
		return a
	}
	return b
}
