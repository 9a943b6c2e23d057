package models

// OutcomeStatus categorizes the result of one copy attempt
type OutcomeStatus string

const (
	// OutcomeCopied indicates the item was transferred
	OutcomeCopied OutcomeStatus = "copied"
	// OutcomeWouldCopy indicates a dry-run transfer that was not performed
	OutcomeWouldCopy OutcomeStatus = "would-copy"
	// OutcomeSkipped indicates the destination was kept untouched
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed indicates the copy or backup rename failed
	OutcomeFailed OutcomeStatus = "failed"
)

// CopyOutcome records the result of copying one matched item to one target.
// Failures never abort the run; they are captured here and aggregated.
type CopyOutcome struct {
	// SourcePath is the matched path relative to the source root
	SourcePath string `json:"source_path"`

	// DestPath is the resolved destination relative to the target root
	DestPath string `json:"dest_path"`

	// BackupPath is set when an existing destination was renamed aside
	BackupPath string `json:"backup_path,omitempty"`

	// IsDir indicates a directory match (subtree copied as a unit)
	IsDir bool `json:"is_dir,omitempty"`

	Status OutcomeStatus `json:"status"`

	// Reason explains skips and failures
	Reason string `json:"reason,omitempty"`

	// Error holds the failure message, if any
	Error string `json:"error,omitempty"`
}
