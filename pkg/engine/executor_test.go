package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdelcourt/copyconfigs/pkg/logging"
	"github.com/sdelcourt/copyconfigs/pkg/models"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
)

func TestDestinationFor(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		rule  models.Rule
		want  string
	}{
		{
			"RelativeStructure",
			".claude/settings.json",
			models.Rule{SourcePattern: ".claude/settings.json", DestPath: ".claude/settings.json"},
			".claude/settings.json",
		},
		{
			"ExplicitFile",
			"secrets/a.env",
			models.Rule{SourcePattern: "secrets/a.env", DestPath: "config/a.env"},
			"config/a.env",
		},
		{
			"ExplicitDirCopiesInto",
			".claude",
			models.Rule{SourcePattern: ".claude/", DestPath: "backup/assistant/"},
			"backup/assistant/.claude",
		},
		{
			"ExplicitDirForFile",
			"secrets/a.env",
			models.Rule{SourcePattern: "secrets/*.env", DestPath: "config/"},
			"config/a.env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := storage.FileInfo{RelativePath: tt.entry}
			if got := destinationFor(entry, tt.rule); got != tt.want {
				t.Errorf("destinationFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func newExecFixture(t *testing.T, mode models.ConflictMode, dryRun bool) (srcDir, dstDir string, exec *executor, src *storage.Local) {
	t.Helper()
	srcDir = t.TempDir()
	dstDir = t.TempDir()

	src, err := storage.NewLocal(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := storage.NewLocal(dstDir)
	if err != nil {
		t.Fatal(err)
	}

	exec = newExecutor(dst, NewResolver(mode), dryRun, logging.NewNullLogger())
	return srcDir, dstDir, exec, src
}

func mustStat(t *testing.T, src *storage.Local, rel string) storage.FileInfo {
	t.Helper()
	info, err := src.Stat(context.Background(), rel)
	if err != nil {
		t.Fatal(err)
	}
	return *info
}

func TestExecutorRelativeStructure(t *testing.T) {
	srcDir, dstDir, exec, src := newExecFixture(t, models.ConflictSkip, false)

	path := filepath.Join(srcDir, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: ".claude/settings.json", DestPath: ".claude/settings.json"}
	outcome := exec.execute(context.Background(), mustStat(t, src, ".claude/settings.json"), rule)

	if outcome.Status != models.OutcomeCopied {
		t.Fatalf("Status = %s (%s), want copied", outcome.Status, outcome.Error)
	}
	// Parent directory created on demand
	if _, err := os.Stat(filepath.Join(dstDir, ".claude", "settings.json")); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestExecutorExplicitMapping(t *testing.T) {
	srcDir, dstDir, exec, src := newExecFixture(t, models.ConflictSkip, false)

	path := filepath.Join(srcDir, "secrets", "a.env")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("S=1"), 0600); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: "secrets/a.env", DestPath: "config/a.env"}
	outcome := exec.execute(context.Background(), mustStat(t, src, "secrets/a.env"), rule)

	if outcome.Status != models.OutcomeCopied {
		t.Fatalf("Status = %s (%s), want copied", outcome.Status, outcome.Error)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "config", "a.env"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "S=1" {
		t.Errorf("content = %q, want byte-identical copy", data)
	}

	// Relative structure must not leak through an explicit mapping
	if _, err := os.Stat(filepath.Join(dstDir, "secrets")); !os.IsNotExist(err) {
		t.Error("target/secrets should not exist under explicit mapping")
	}
}

func TestExecutorDryRun(t *testing.T) {
	srcDir, dstDir, exec, src := newExecFixture(t, models.ConflictSkip, true)

	if err := os.WriteFile(filepath.Join(srcDir, "CLAUDE.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: "CLAUDE.md", DestPath: "CLAUDE.md"}
	outcome := exec.execute(context.Background(), mustStat(t, src, "CLAUDE.md"), rule)

	if outcome.Status != models.OutcomeWouldCopy {
		t.Fatalf("Status = %s, want would-copy", outcome.Status)
	}

	entries, err := os.ReadDir(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run mutated the target: %v", entries)
	}
}

func TestExecutorOverwriteReplacesDirectory(t *testing.T) {
	srcDir, dstDir, exec, src := newExecFixture(t, models.ConflictOverwrite, false)

	if err := os.MkdirAll(filepath.Join(srcDir, ".claude"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, ".claude", "new.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	// Existing destination with content the source no longer has
	if err := os.MkdirAll(filepath.Join(dstDir, ".claude"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dstDir, ".claude", "stale.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: ".claude/", DestPath: ".claude/"}
	outcome := exec.execute(context.Background(), mustStat(t, src, ".claude"), rule)

	if outcome.Status != models.OutcomeCopied {
		t.Fatalf("Status = %s (%s), want copied", outcome.Status, outcome.Error)
	}
	if _, err := os.Stat(filepath.Join(dstDir, ".claude", "stale.json")); !os.IsNotExist(err) {
		t.Error("overwrite should replace destination contents, not merge")
	}
	if _, err := os.Stat(filepath.Join(dstDir, ".claude", "new.json")); err != nil {
		t.Errorf("new content missing: %v", err)
	}
}

func TestExecutorBackupCollision(t *testing.T) {
	srcDir, dstDir, exec, src := newExecFixture(t, models.ConflictBackup, false)

	if err := os.WriteFile(filepath.Join(srcDir, "CLAUDE.md"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dstDir, "CLAUDE.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: "CLAUDE.md", DestPath: "CLAUDE.md"}
	first := exec.execute(context.Background(), mustStat(t, src, "CLAUDE.md"), rule)
	if first.Status != models.OutcomeCopied || first.BackupPath == "" {
		t.Fatalf("first backup run: status=%s backup=%q", first.Status, first.BackupPath)
	}

	// Second run within the same second must not overwrite the first backup
	second := exec.execute(context.Background(), mustStat(t, src, "CLAUDE.md"), rule)
	if second.Status != models.OutcomeCopied || second.BackupPath == "" {
		t.Fatalf("second backup run: status=%s backup=%q", second.Status, second.BackupPath)
	}
	if second.BackupPath == first.BackupPath {
		t.Errorf("backup collision: both runs used %s", first.BackupPath)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, first.BackupPath))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Errorf("first backup content = %q, want original", data)
	}
}

// renameDenied wraps a backend and refuses every rename, standing in for a
// filesystem that blocks the backup move.
type renameDenied struct {
	storage.Backend
}

func (b *renameDenied) Rename(ctx context.Context, oldPath, newPath string) error {
	return errors.New("operation not permitted")
}

func TestExecutorBackupRenameFailure(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	src, err := storage.NewLocal(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := storage.NewLocal(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	exec := newExecutor(&renameDenied{Backend: dst}, NewResolver(models.ConflictBackup), false, logging.NewNullLogger())

	if err := os.WriteFile(filepath.Join(srcDir, "CLAUDE.md"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dstDir, "CLAUDE.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	rule := models.Rule{SourcePattern: "CLAUDE.md", DestPath: "CLAUDE.md"}
	outcome := exec.execute(context.Background(), mustStat(t, src, "CLAUDE.md"), rule)

	if outcome.Status != models.OutcomeFailed {
		t.Fatalf("Status = %s, want failed", outcome.Status)
	}
	if outcome.Reason != "backup failed" {
		t.Errorf("Reason = %s, want backup failed", outcome.Reason)
	}

	// The existing destination stays untouched when its backup cannot be
	// moved aside
	data, err := os.ReadFile(filepath.Join(dstDir, "CLAUDE.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Errorf("destination content = %q, want original preserved", data)
	}
}

func TestExecutorUnsafeDestination(t *testing.T) {
	srcDir, _, exec, src := newExecFixture(t, models.ConflictSkip, false)

	if err := os.WriteFile(filepath.Join(srcDir, "x"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Construct a rule that slipped past parsing somehow; the executor's
	// re-check must still refuse it.
	rule := models.Rule{SourcePattern: "x", DestPath: "../escape"}
	outcome := exec.execute(context.Background(), mustStat(t, src, "x"), rule)

	if outcome.Status != models.OutcomeFailed {
		t.Fatalf("Status = %s, want failed", outcome.Status)
	}
	if outcome.Reason != "unsafe destination" {
		t.Errorf("Reason = %s, want unsafe destination", outcome.Reason)
	}
}
