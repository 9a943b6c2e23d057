package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func TestNewLocal(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()
		l, err := NewLocal(dir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		defer l.Close()

		if !filepath.IsAbs(l.Root()) {
			t.Errorf("Root() = %s, want absolute path", l.Root())
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := NewLocal(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("NewLocal() should fail for a missing path")
		}
	})

	t.Run("NotADirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		writeFile(t, path, "x", 0644)
		if _, err := NewLocal(path); err == nil {
			t.Error("NewLocal() should fail for a regular file")
		}
	})
}

func TestLocalList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "A=1", 0600)
	writeFile(t, filepath.Join(dir, "sub", "file.txt"), "x", 0644)

	l, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}

	files, err := l.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("List() length = %d, want 3 (.env, sub, sub/file.txt)", len(files))
	}

	byRel := map[string]FileInfo{}
	for _, f := range files {
		byRel[f.RelativePath] = f
	}
	if _, ok := byRel[".env"]; !ok {
		t.Error("List() should include dotfiles")
	}
	if e, ok := byRel["sub"]; !ok || !e.IsDir {
		t.Error("List() should include directories with IsDir set")
	}
	if _, ok := byRel["sub/file.txt"]; !ok {
		t.Error("List() should use slash-separated relative paths")
	}
}

func TestLocalCopyFile(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	srcPath := filepath.Join(srcDir, "My Agent.json")
	writeFile(t, srcPath, `{"name":"agent"}`, 0640)
	if err := os.Chtimes(srcPath, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	src, err := NewLocal(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := NewLocal(dstDir)
	if err != nil {
		t.Fatal(err)
	}

	info, err := src.Stat(context.Background(), "My Agent.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := dst.Copy(context.Background(), *info, "agents/My Agent.json"); err == nil {
		t.Fatal("Copy() into a missing parent should fail; parents are the executor's job")
	}

	if err := dst.MkdirAll(context.Background(), "agents"); err != nil {
		t.Fatal(err)
	}
	if err := dst.Copy(context.Background(), *info, "agents/My Agent.json"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	copied := filepath.Join(dstDir, "agents", "My Agent.json")
	data, err := os.ReadFile(copied)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"name":"agent"}` {
		t.Errorf("content = %q, want byte-identical copy", data)
	}

	st, err := os.Stat(copied)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0640 {
		t.Errorf("mode = %v, want 0640", st.Mode().Perm())
	}
	if !st.ModTime().Equal(modTime) {
		t.Errorf("mtime = %v, want %v", st.ModTime(), modTime)
	}
}

func TestLocalCopyDir(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	writeFile(t, filepath.Join(srcDir, ".claude", "settings.json"), "{}", 0644)
	writeFile(t, filepath.Join(srcDir, ".claude", "agents", "My Agent.json"), "{}", 0644)
	if err := os.Symlink("settings.json", filepath.Join(srcDir, ".claude", "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	src, err := NewLocal(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := NewLocal(dstDir)
	if err != nil {
		t.Fatal(err)
	}

	info, err := src.Stat(context.Background(), ".claude")
	if err != nil {
		t.Fatal(err)
	}
	if err := dst.Copy(context.Background(), *info, ".claude"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dstDir, ".claude", "agents", "My Agent.json")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}

	target, err := os.Readlink(filepath.Join(dstDir, ".claude", "link"))
	if err != nil {
		t.Fatalf("symlink not preserved: %v", err)
	}
	if target != "settings.json" {
		t.Errorf("symlink target = %s, want settings.json", target)
	}
}

func TestLocalRename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CLAUDE.md"), "old", 0644)

	l, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Rename(context.Background(), "CLAUDE.md", "CLAUDE.md.bak-20240301-120000"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	exists, err := l.Exists(context.Background(), "CLAUDE.md")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("original should be gone after rename")
	}

	exists, err = l.Exists(context.Background(), "CLAUDE.md.bak-20240301-120000")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("backup should exist after rename")
	}
}
