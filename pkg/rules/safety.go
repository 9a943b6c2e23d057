package rules

import (
	"strings"
)

// SafetyReason categorizes why a path was rejected
type SafetyReason string

const (
	// ReasonTraversal indicates a ".." segment anywhere in the path
	ReasonTraversal SafetyReason = "traversal"
	// ReasonAbsolute indicates a leading "/"
	ReasonAbsolute SafetyReason = "absolute"
	// ReasonHomeRelative indicates a leading "~/"
	ReasonHomeRelative SafetyReason = "home-relative"
)

// SafetyError reports an unsafe path token in a rule
type SafetyError struct {
	Path   string
	Reason SafetyReason
}

func (e *SafetyError) Error() string {
	return "unsafe path '" + e.Path + "': " + string(e.Reason)
}

// Validate rejects relative path tokens that could escape the source or
// target root. Applied to both halves of every parsed rule, and re-checked
// on every resolved destination before a write. Pure; no filesystem access.
func Validate(p string) error {
	if strings.HasPrefix(p, "/") {
		return &SafetyError{Path: p, Reason: ReasonAbsolute}
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		return &SafetyError{Path: p, Reason: ReasonHomeRelative}
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return &SafetyError{Path: p, Reason: ReasonTraversal}
		}
	}
	return nil
}
