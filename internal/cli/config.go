package cli

import (
	"fmt"

	"github.com/sdelcourt/copyconfigs/pkg/config"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings",
		Long:  `View or create the copyconfigs settings file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Conflict Policy: %s\n", cfg.Conflict)
			if cfg.RulesFile != "" {
				fmt.Printf("Rule File: %s\n", cfg.RulesFile)
			}
			fmt.Printf("Output Format: %s\n", cfg.Output.Format)
			fmt.Printf("Progress: %t\n", cfg.Output.Progress)
			fmt.Printf("Color: %t\n", cfg.Output.Color)
			if cfg.Logging.File != "" {
				fmt.Printf("Log File: %s\n", cfg.Logging.File)
			}
			fmt.Printf("Log Format: %s\n", cfg.Logging.Format)
			fmt.Printf("Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Settings file created at: %s\n", path)
			return nil
		},
	}
}
