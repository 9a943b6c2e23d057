package rules

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// RuleFileName is the project-local rule file looked up under the source root
const RuleFileName = ".copyconfigs"

// defaultPatterns is the built-in pattern list used when no rule file
// resolves. Covers secrets, AI-assistant configuration, and editor settings
// that are conventionally excluded from version control.
var defaultPatterns = []string{
	".env*",
	"CLAUDE.md",
	"GEMINI.md",
	"AGENTS.md",
	"AGENT.md",
	".claude/",
	".cursor/",
	".augment/",
	".clinerules/",
	".vscode/settings.json",
}

// Defaults returns the built-in rule set. Every default rule uses
// relative-structure mode.
func Defaults() models.RuleSet {
	rules := make([]models.Rule, 0, len(defaultPatterns))
	for _, p := range defaultPatterns {
		rules = append(rules, models.Rule{SourcePattern: p, DestPath: p})
	}
	return models.RuleSet{Rules: rules, Origin: models.OriginBuiltin}
}

// GlobalRulePaths returns the per-user fallback rule file locations, in
// priority order.
func GlobalRulePaths() []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, "copyconfigs", "rules"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, RuleFileName))
	}
	return paths
}

// LoadFile parses a rule file. Malformed or unsafe lines are collected as
// diagnostics (with line numbers) and skipped; they never abort the load.
// A file that parses to zero rules yields an empty, valid rule set.
func LoadFile(path string) (models.RuleSet, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RuleSet{}, nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	defer f.Close()

	var (
		rules []models.Rule
		diags []error
	)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		rule, err := ParseLine(scanner.Text())
		if err != nil {
			diags = append(diags, fmt.Errorf("%s:%d: %w", path, lineNo, err))
			continue
		}
		if rule == nil {
			continue
		}
		rules = append(rules, *rule)
	}
	if err := scanner.Err(); err != nil {
		return models.RuleSet{}, diags, fmt.Errorf("failed to read rule file: %w", err)
	}

	return models.RuleSet{Rules: rules, Origin: models.OriginFile, Path: path}, diags, nil
}

// Resolve picks the active rule set for one invocation.
//
// Priority: explicit override > <sourceRoot>/.copyconfigs > per-user global
// locations > built-in defaults. The first existing readable file wins. An
// explicit override that cannot be read is a fatal configuration error; a
// missing candidate in the search path is not.
func Resolve(sourceRoot, override string) (models.RuleSet, []error, error) {
	if override != "" {
		set, diags, err := LoadFile(override)
		if err != nil {
			return models.RuleSet{}, diags, err
		}
		return set, diags, nil
	}

	candidates := append(
		[]string{filepath.Join(sourceRoot, RuleFileName)},
		GlobalRulePaths()...,
	)
	var all []error
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		set, diags, err := LoadFile(path)
		all = append(all, diags...)
		if err != nil {
			// Exists but unreadable: fall through to the next candidate
			all = append(all, err)
			continue
		}
		return set, all, nil
	}

	return Defaults(), all, nil
}
