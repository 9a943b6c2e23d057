package engine

import (
	"strings"
	"time"

	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// Action represents what to do about a destination
type Action string

const (
	// ActionProceed writes the destination (replacing it if present)
	ActionProceed Action = "proceed"
	// ActionSkip keeps the existing destination untouched
	ActionSkip Action = "skip"
	// ActionBackup renames the existing destination aside, then proceeds
	ActionBackup Action = "backup"
)

// Decision is the resolver's verdict for one destination
type Decision struct {
	Action Action

	// BackupPath is the rename target when Action is ActionBackup
	BackupPath string
}

// backupTimeLayout is filesystem-safe and second-resolution; same-second
// collisions are disambiguated by the executor with a numeric counter.
const backupTimeLayout = "20060102-150405"

// Resolver derives copy decisions purely from destination existence and the
// active conflict mode.
type Resolver struct {
	mode models.ConflictMode
	now  func() time.Time
}

// NewResolver creates a resolver for the given conflict mode
func NewResolver(mode models.ConflictMode) *Resolver {
	return &Resolver{mode: mode, now: time.Now}
}

// Mode returns the active conflict mode
func (r *Resolver) Mode() models.ConflictMode {
	return r.mode
}

// Decide returns the action for one destination path
func (r *Resolver) Decide(destPath string, exists bool) Decision {
	if !exists {
		return Decision{Action: ActionProceed}
	}

	switch r.mode {
	case models.ConflictOverwrite:
		return Decision{Action: ActionProceed}
	case models.ConflictBackup:
		return Decision{
			Action:     ActionBackup,
			BackupPath: BackupPath(destPath, r.now()),
		}
	default:
		return Decision{Action: ActionSkip}
	}
}

// BackupPath builds the timestamped rename target for an existing destination
func BackupPath(destPath string, t time.Time) string {
	return strings.TrimSuffix(destPath, "/") + ".bak-" + t.Format(backupTimeLayout)
}
