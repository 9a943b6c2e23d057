package models

import (
	"strings"
)

// Rule maps a glob pattern in the source tree to a destination path in the
// target tree. Both fields are relative paths; construction-time validation
// guarantees neither contains traversal, absolute, or home-relative segments.
type Rule struct {
	// SourcePattern is a glob pattern evaluated against the source root
	SourcePattern string

	// DestPath is the destination path relative to the target root.
	// Equal to SourcePattern in relative-structure mode.
	DestPath string
}

// Explicit reports whether the rule remaps the destination instead of
// reconstructing the source's relative structure.
func (r Rule) Explicit() bool {
	return r.DestPath != r.SourcePattern
}

// DirPattern reports whether the source pattern carries directory semantics
// (trailing slash).
func (r Rule) DirPattern() bool {
	return strings.HasSuffix(r.SourcePattern, "/")
}

// DestDir reports whether the destination denotes a directory to copy into
// (trailing slash).
func (r Rule) DestDir() bool {
	return strings.HasSuffix(r.DestPath, "/")
}

// String renders the rule in rule-file syntax.
func (r Rule) String() string {
	if r.Explicit() {
		return r.SourcePattern + ":" + r.DestPath
	}
	return r.SourcePattern
}

// RuleOrigin indicates where a rule set came from
type RuleOrigin string

const (
	// OriginBuiltin indicates the built-in default pattern list
	OriginBuiltin RuleOrigin = "builtin"
	// OriginFile indicates a rule file on disk
	OriginFile RuleOrigin = "file"
)

// RuleSet is an ordered sequence of rules. Constructed once per invocation,
// read-only thereafter. All matching rules apply independently; there is no
// dedup by destination.
type RuleSet struct {
	Rules  []Rule
	Origin RuleOrigin

	// Path is the rule file the set was loaded from (empty for builtin)
	Path string
}

// ConflictMode defines how an existing destination is handled
type ConflictMode string

const (
	// ConflictSkip keeps the existing destination untouched
	ConflictSkip ConflictMode = "skip"
	// ConflictOverwrite replaces the destination contents
	ConflictOverwrite ConflictMode = "overwrite"
	// ConflictBackup renames the destination aside before copying
	ConflictBackup ConflictMode = "backup"
)

// ParseConflictMode validates a conflict mode string
func ParseConflictMode(s string) (ConflictMode, error) {
	switch ConflictMode(s) {
	case ConflictSkip, ConflictOverwrite, ConflictBackup:
		return ConflictMode(s), nil
	}
	return "", &ValidationError{
		Field:   "conflict",
		Message: "must be 'skip', 'overwrite', or 'backup'",
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
