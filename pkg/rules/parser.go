package rules

import (
	"fmt"
	"strings"

	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// ParseLine turns one rule-file line into a rule.
//
// Returns (nil, nil) for lines that are empty after comment stripping; those
// are silently skipped. Returns (nil, err) for malformed or unsafe rules; the
// caller emits a diagnostic and continues with the next line. A single bad
// rule never aborts the run.
func ParseLine(line string) (*models.Rule, error) {
	line = strings.TrimSuffix(line, "\r")

	if idx := strings.Index(line, "#"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	pattern := line
	dest := line
	if idx := strings.Index(line, ":"); idx >= 0 {
		pattern = strings.TrimSpace(line[:idx])
		dest = strings.TrimSpace(line[idx+1:])
	}

	if pattern == "" {
		return nil, fmt.Errorf("missing source pattern")
	}
	if dest == "" {
		return nil, fmt.Errorf("missing destination path")
	}

	if err := Validate(pattern); err != nil {
		return nil, err
	}
	if err := Validate(dest); err != nil {
		return nil, err
	}

	return &models.Rule{SourcePattern: pattern, DestPath: dest}, nil
}
