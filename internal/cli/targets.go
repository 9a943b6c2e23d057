package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sdelcourt/copyconfigs/internal/platform"
)

// collectTargets assembles the target list. Explicit --target flags win;
// otherwise, when stdin is piped or redirected, one target per line is read
// from it. An interactive terminal is never read.
func collectTargets(flagTargets []string, stdin *os.File) ([]string, error) {
	if len(flagTargets) > 0 {
		return normalizeTargets(flagTargets)
	}

	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, nil
	}

	lines, err := readTargetLines(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets from stdin: %w", err)
	}
	return normalizeTargets(lines)
}

// readTargetLines reads one target path per line, skipping blank lines
func readTargetLines(r io.Reader) ([]string, error) {
	var targets []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}

func normalizeTargets(raw []string) ([]string, error) {
	targets := make([]string, 0, len(raw))
	for _, t := range raw {
		if err := platform.ValidatePath(t); err != nil {
			return nil, err
		}
		targets = append(targets, platform.NormalizePath(t))
	}
	return targets, nil
}
