// Package vcs resolves the source root for an invocation: an explicit
// override wins, then the enclosing git working tree, then the current
// directory. Git is probed once; a missing git binary just disables the
// working-tree lookup.
package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

var gitPath = sync.OnceValues(func() (string, error) {
	return exec.LookPath("git")
})

// HasGit reports whether a git binary is available on PATH
func HasGit() bool {
	_, err := gitPath()
	return err == nil
}

// WorktreeRoot asks git for the top level of the working tree containing dir
func WorktreeRoot(ctx context.Context, dir string) (string, error) {
	git, err := gitPath()
	if err != nil {
		return "", fmt.Errorf("git not available: %w", err)
	}

	out, err := exec.CommandContext(ctx, git, "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git working tree: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

// ResolveSourceRoot picks the source root for one invocation. With an
// explicit override the VCS lookup is bypassed entirely; otherwise the
// enclosing working tree is used when one exists, falling back to the
// current directory.
func ResolveSourceRoot(ctx context.Context, override string) (string, error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil {
			return "", fmt.Errorf("source root does not exist: %s", override)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("source root is not a directory: %s", override)
		}
		return override, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current directory: %w", err)
	}

	if HasGit() {
		if root, err := WorktreeRoot(ctx, cwd); err == nil {
			return root, nil
		}
	}

	return cwd, nil
}
