package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Local is a filesystem-based storage backend rooted at one directory
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute tree root
func (l *Local) Root() string {
	return l.rootPath
}

// List returns every entry under the root recursively
func (l *Local) List(ctx context.Context) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == l.rootPath {
			return nil
		}

		rel, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: filepath.ToSlash(rel),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			IsDir:        info.IsDir(),
			Mode:         info.Mode(),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Stat returns file metadata for one relative path. Uses Lstat so symlinks
// are reported as themselves, not their targets.
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, path)

	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:         fullPath,
		RelativePath: filepath.ToSlash(path),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		IsDir:        info.IsDir(),
		Mode:         info.Mode(),
	}, nil
}

// Exists checks if a relative path exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(filepath.Join(l.rootPath, path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Join(l.rootPath, path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Rename moves a relative path within the tree
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	oldFull := filepath.Join(l.rootPath, oldPath)
	newFull := filepath.Join(l.rootPath, newPath)
	if err := os.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// RemoveAll deletes a relative path and any children
func (l *Local) RemoveAll(ctx context.Context, path string) error {
	if err := os.RemoveAll(filepath.Join(l.rootPath, path)); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

// Copy transfers the source item into the tree at the given relative path
func (l *Local) Copy(ctx context.Context, source FileInfo, path string) error {
	return copyTree(ctx, source.Path, filepath.Join(l.rootPath, path))
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
