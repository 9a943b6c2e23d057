package output

import (
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// Formatter defines the interface for run output.
// Implementations include human-readable, JSON, and progress-bar formatters.
type Formatter interface {
	// Start announces the run before any target is processed
	Start(run *models.RunReport) error

	// TargetStart announces one target and the number of planned items
	TargetStart(target string, items int) error

	// Outcome reports one copy outcome for the current target
	Outcome(o models.CopyOutcome) error

	// TargetSkipped reports a target that failed precondition checks
	TargetSkipped(target, reason string) error

	// Complete finalizes output and displays the aggregate summary
	Complete(run *models.RunReport) error

	// Name returns the formatter name
	Name() string
}
