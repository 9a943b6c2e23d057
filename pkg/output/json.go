package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// JSONFormatter emits the full run report as one JSON document at the end
// of the run, for automation and scripting. Per-item progress is not
// streamed so the output stays parseable.
type JSONFormatter struct {
	writer io.Writer
}

// jsonReport wraps the run report with friendlier duration fields
type jsonReport struct {
	*models.RunReport
	DurationHuman string `json:"duration"`
	TotalCopied   int    `json:"total_copied"`
	TotalSkipped  int    `json:"total_skipped"`
	TotalFailed   int    `json:"total_failed"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Start does nothing; the report is emitted on Complete
func (f *JSONFormatter) Start(run *models.RunReport) error {
	return nil
}

// TargetStart does nothing
func (f *JSONFormatter) TargetStart(target string, items int) error {
	return nil
}

// Outcome does nothing; outcomes appear in the final report
func (f *JSONFormatter) Outcome(o models.CopyOutcome) error {
	return nil
}

// TargetSkipped does nothing; skipped targets appear in the final report
func (f *JSONFormatter) TargetSkipped(target, reason string) error {
	return nil
}

// Complete writes the report as indented JSON
func (f *JSONFormatter) Complete(run *models.RunReport) error {
	copied, skipped, failed := run.Totals()
	doc := jsonReport{
		RunReport:     run,
		DurationHuman: run.Duration.Round(time.Millisecond).String(),
		TotalCopied:   copied,
		TotalSkipped:  skipped,
		TotalFailed:   failed,
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
