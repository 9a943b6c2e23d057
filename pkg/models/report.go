package models

import (
	"time"
)

// TargetReport aggregates outcomes for one target directory
type TargetReport struct {
	// Target is the target directory as given on the command line
	Target string `json:"target"`

	// Valid is false when the target failed precondition checks and was
	// skipped entirely
	Valid bool `json:"valid"`

	// Reason explains why an invalid target was skipped
	Reason string `json:"reason,omitempty"`

	Outcomes []CopyOutcome `json:"outcomes,omitempty"`

	// Counts
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	Duration time.Duration `json:"duration_ns"`
}

// Add records an outcome and updates the counters. Dry-run outcomes count
// as copied so a dry run previews the real run's totals.
func (t *TargetReport) Add(o CopyOutcome) {
	t.Outcomes = append(t.Outcomes, o)
	switch o.Status {
	case OutcomeCopied, OutcomeWouldCopy:
		t.Copied++
	case OutcomeSkipped:
		t.Skipped++
	case OutcomeFailed:
		t.Failed++
	}
}

// RunStatus represents the overall result of one invocation
type RunStatus string

const (
	// RunCompleted indicates all targets were processed without item failures
	RunCompleted RunStatus = "completed"
	// RunPartial indicates the run completed but some items failed
	RunPartial RunStatus = "partial"
	// RunFailed indicates a structural precondition failed
	RunFailed RunStatus = "failed"
	// RunCancelled indicates the run was interrupted
	RunCancelled RunStatus = "cancelled"
)

// ExitCode maps the run status to a process exit code. Per-item failures do
// not fail the process; only structural errors and interruption do.
func (s RunStatus) ExitCode() int {
	switch s {
	case RunCompleted, RunPartial:
		return 0
	default:
		return 1
	}
}

// RunReport represents the results of one engine invocation
type RunReport struct {
	ID string `json:"id"`

	SourceRoot   string       `json:"source_root"`
	RuleOrigin   RuleOrigin   `json:"rule_origin"`
	RulePath     string       `json:"rule_path,omitempty"`
	ConflictMode ConflictMode `json:"conflict_mode"`
	DryRun       bool         `json:"dry_run"`

	Targets []TargetReport `json:"targets"`

	Status RunStatus `json:"status"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration_ns"`
}

// Totals sums the per-target counters
func (r *RunReport) Totals() (copied, skipped, failed int) {
	for _, t := range r.Targets {
		copied += t.Copied
		skipped += t.Skipped
		failed += t.Failed
	}
	return copied, skipped, failed
}
