package platform

import (
	"path/filepath"
	"strings"
)

// NormalizePath normalizes a path argument for the current platform
func NormalizePath(path string) string {
	return filepath.Clean(path)
}

// ValidatePath checks if a path is usable as a source or target argument
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}
	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
