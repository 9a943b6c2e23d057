// Package match expands glob-style rule patterns against a source tree.
//
// Semantics follow shell expansion with hidden files included: dotfiles and
// dot-directories always participate, `*` never crosses a path separator,
// and a trailing slash restricts the pattern to directories. Zero matches is
// a normal outcome, not an error.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
)

// Matcher expands patterns against one source tree. The tree is walked
// lazily on first use and the snapshot is reused for subsequent patterns;
// a fresh Matcher is built per target so every target sees a current tree.
type Matcher struct {
	source  storage.Backend
	entries []storage.FileInfo
	walked  bool
}

// New creates a matcher over the given source backend
func New(source storage.Backend) *Matcher {
	return &Matcher{source: source}
}

// Match expands a pattern into the concrete entries it selects, in walk
// order. Matched directories are returned as units; their subtrees are not
// listed separately unless the pattern itself reaches into them.
func (m *Matcher) Match(ctx context.Context, pattern string) ([]storage.FileInfo, error) {
	dirOnly := strings.HasSuffix(pattern, "/")
	trimmed := strings.TrimSuffix(pattern, "/")

	g, err := glob.Compile(trimmed, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	if !m.walked {
		entries, err := m.source.List(ctx)
		if err != nil {
			return nil, err
		}
		m.entries = entries
		m.walked = true
	}

	var matches []storage.FileInfo
	for _, entry := range m.entries {
		if dirOnly && !entry.IsDir {
			continue
		}
		if g.Match(entry.RelativePath) {
			matches = append(matches, entry)
		}
	}

	return matches, nil
}
