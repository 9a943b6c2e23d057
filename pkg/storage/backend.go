package storage

import (
	"context"
	"io/fs"
	"time"
)

// FileInfo represents metadata about a file or directory in a tree
type FileInfo struct {
	// Path is the absolute path on the filesystem
	Path string

	// RelativePath is the slash-separated path relative to the tree root
	RelativePath string

	Size    int64
	ModTime time.Time
	IsDir   bool
	Mode    fs.FileMode
}

// Backend defines the interface for operations on one directory tree.
// The local filesystem is the only implementation today; the interface keeps
// the engine testable and leaves room for remote targets.
type Backend interface {
	// Root returns the absolute tree root
	Root() string

	// List returns every entry under the root recursively, in walk order.
	// The root itself is not included.
	List(ctx context.Context) ([]FileInfo, error)

	// Stat returns metadata for one relative path
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a relative path exists
	Exists(ctx context.Context, path string) (bool, error)

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Rename moves a relative path within the tree
	Rename(ctx context.Context, oldPath, newPath string) error

	// RemoveAll deletes a relative path and any children
	RemoveAll(ctx context.Context, path string) error

	// Copy transfers a source item (file, directory subtree, or symlink)
	// into the tree at the given relative path, preserving permissions,
	// timestamps, and symlink targets.
	Copy(ctx context.Context, source FileInfo, path string) error

	// Close releases any resources held by the backend
	Close() error
}
