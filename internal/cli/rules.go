package cli

import (
	"context"
	"fmt"

	"github.com/sdelcourt/copyconfigs/internal/vcs"
	"github.com/sdelcourt/copyconfigs/pkg/match"
	"github.com/sdelcourt/copyconfigs/pkg/models"
	"github.com/sdelcourt/copyconfigs/pkg/rules"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
	"github.com/spf13/cobra"
)

// RulesFlags holds rules command flags
type RulesFlags struct {
	Config string
	Source string
	List   bool
}

var rulesFlags RulesFlags

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the resolved rule set",
		Long: `Resolve the rule set exactly as the copy command would and print it,
together with the files each rule matches in the source tree. Nothing is
copied.`,
		RunE: runRules,
	}

	cmd.Flags().StringVarP(&rulesFlags.Config, "config", "c", "", "rule file override")
	cmd.Flags().StringVarP(&rulesFlags.Source, "source", "s", "", "source root override (bypasses VCS lookup)")
	cmd.Flags().BoolVarP(&rulesFlags.List, "list", "l", false, "list rules only, without matching")

	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	sourceRoot, err := vcs.ResolveSourceRoot(ctx, rulesFlags.Source)
	if err != nil {
		return err
	}

	override := rulesFlags.Config
	if override == "" {
		override = cfg.RulesFile
	}
	ruleSet, diags, err := rules.Resolve(sourceRoot, override)
	if err != nil {
		return err
	}

	switch ruleSet.Origin {
	case models.OriginBuiltin:
		fmt.Println("Rule set: builtin defaults")
	default:
		fmt.Printf("Rule set: %s\n", ruleSet.Path)
	}
	for _, d := range diags {
		fmt.Printf("  warning: %v\n", d)
	}
	fmt.Println()

	if rulesFlags.List {
		for _, r := range ruleSet.Rules {
			fmt.Println(r.String())
		}
		return nil
	}

	source, err := storage.NewLocal(sourceRoot)
	if err != nil {
		return fmt.Errorf("failed to open source root: %w", err)
	}
	defer source.Close()

	matcher := match.New(source)
	for _, r := range ruleSet.Rules {
		entries, err := matcher.Match(ctx, r.SourcePattern)
		if err != nil {
			fmt.Printf("%s\n  invalid pattern: %v\n", r.String(), err)
			continue
		}

		fmt.Printf("%s (%d matches)\n", r.String(), len(entries))
		for _, e := range entries {
			if e.IsDir {
				fmt.Printf("  %s/\n", e.RelativePath)
			} else {
				fmt.Printf("  %s\n", e.RelativePath)
			}
		}
	}

	return nil
}
