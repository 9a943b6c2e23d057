package rules

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tests := []struct {
			name        string
			line        string
			wantPattern string
			wantDest    string
		}{
			{"Shorthand", ".env*", ".env*", ".env*"},
			{"ExplicitMapping", "secrets/prod.env:config/prod.env", "secrets/prod.env", "config/prod.env"},
			{"FirstColonWins", "a:b:c", "a", "b:c"},
			{"TrailingCR", "CLAUDE.md\r", "CLAUDE.md", "CLAUDE.md"},
			{"InlineComment", ".claude/  # assistant config", ".claude/", ".claude/"},
			{"SurroundingWhitespace", "  AGENTS.md  ", "AGENTS.md", "AGENTS.md"},
			{"SpacesAroundColon", "secrets/a.env : config/a.env", "secrets/a.env", "config/a.env"},
			{"SpacesInName", "agents/My Agent.json", "agents/My Agent.json", "agents/My Agent.json"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rule, err := ParseLine(tt.line)
				if err != nil {
					t.Fatalf("ParseLine(%q) error = %v", tt.line, err)
				}
				if rule == nil {
					t.Fatalf("ParseLine(%q) = nil, want rule", tt.line)
				}
				if rule.SourcePattern != tt.wantPattern {
					t.Errorf("SourcePattern = %q, want %q", rule.SourcePattern, tt.wantPattern)
				}
				if rule.DestPath != tt.wantDest {
					t.Errorf("DestPath = %q, want %q", rule.DestPath, tt.wantDest)
				}
			})
		}
	})

	t.Run("SkippedLines", func(t *testing.T) {
		lines := []string{
			"",
			"   ",
			"# full-line comment",
			"  # indented comment",
			"\r",
		}

		for _, line := range lines {
			rule, err := ParseLine(line)
			if err != nil {
				t.Errorf("ParseLine(%q) error = %v, want nil", line, err)
			}
			if rule != nil {
				t.Errorf("ParseLine(%q) = %v, want nil", line, rule)
			}
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		lines := []string{
			":config/a.env",  // empty pattern
			"secrets/a.env:", // empty destination
			"../escape",      // traversal pattern
			".env:/etc/env",  // absolute destination
			"~/.ssh/config",  // home-relative pattern
			"ok:../escape",   // traversal destination
		}

		for _, line := range lines {
			rule, err := ParseLine(line)
			if err == nil {
				t.Errorf("ParseLine(%q) error = nil, want diagnostic", line)
			}
			if rule != nil {
				t.Errorf("ParseLine(%q) = %v, want nil", line, rule)
			}
		}
	})
}
