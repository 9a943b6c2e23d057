package output

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// ProgressFormatter shows a per-target progress bar over planned items and
// falls back to the human summary when the run completes.
type ProgressFormatter struct {
	writer io.Writer
	human  *HumanFormatter
	bar    *pb.ProgressBar
}

// NewProgressFormatter creates a progress-bar formatter
func NewProgressFormatter(w io.Writer, noColor bool) *ProgressFormatter {
	return &ProgressFormatter{
		writer: w,
		human:  NewHumanFormatter(w, noColor, false),
	}
}

// Start announces the run
func (f *ProgressFormatter) Start(run *models.RunReport) error {
	return f.human.Start(run)
}

// TargetStart finishes any previous bar and starts one for the new target
func (f *ProgressFormatter) TargetStart(target string, items int) error {
	f.finishBar()
	fmt.Fprintf(f.writer, "\n%s\n", target)
	if items > 0 {
		f.bar = pb.New(items)
		f.bar.SetWriter(f.writer)
		f.bar.Start()
	}
	return nil
}

// Outcome advances the bar; failures are echoed through the human formatter
// so they stay visible above the bar's final state.
func (f *ProgressFormatter) Outcome(o models.CopyOutcome) error {
	if f.bar != nil {
		f.bar.Increment()
	}
	if o.Status == models.OutcomeFailed {
		return f.human.Outcome(o)
	}
	return nil
}

// TargetSkipped reports an invalid target
func (f *ProgressFormatter) TargetSkipped(target, reason string) error {
	f.finishBar()
	return f.human.TargetSkipped(target, reason)
}

// Complete finishes the last bar and prints the summary
func (f *ProgressFormatter) Complete(run *models.RunReport) error {
	f.finishBar()
	return f.human.Complete(run)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

func (f *ProgressFormatter) finishBar() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}
