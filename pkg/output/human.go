package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sdelcourt/copyconfigs/pkg/models"
)

// HumanFormatter formats output in human-readable form
type HumanFormatter struct {
	writer  io.Writer
	verbose bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	faint  *color.Color
}

// NewHumanFormatter creates a human-readable formatter. With noColor set,
// all output is plain text. Verbose mode prints a line per outcome instead
// of only failures.
func NewHumanFormatter(w io.Writer, noColor, verbose bool) *HumanFormatter {
	f := &HumanFormatter{
		writer:  w,
		verbose: verbose,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		faint:   color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{f.green, f.yellow, f.red, f.faint} {
			c.DisableColor()
		}
	}
	return f
}

// Start announces the run
func (f *HumanFormatter) Start(run *models.RunReport) error {
	source := "rules: builtin defaults"
	if run.RuleOrigin == models.OriginFile {
		source = "rules: " + run.RulePath
	}
	mode := string(run.ConflictMode)
	if run.DryRun {
		mode += ", dry-run"
	}
	fmt.Fprintf(f.writer, "Source: %s (%s; conflict=%s)\n", run.SourceRoot, source, mode)
	return nil
}

// TargetStart announces one target
func (f *HumanFormatter) TargetStart(target string, items int) error {
	fmt.Fprintf(f.writer, "\n%s (%d items)\n", target, items)
	return nil
}

// Outcome reports one copy outcome
func (f *HumanFormatter) Outcome(o models.CopyOutcome) error {
	switch o.Status {
	case models.OutcomeCopied:
		if f.verbose {
			fmt.Fprintf(f.writer, "  %s %s -> %s\n", f.green.Sprint("copy"), o.SourcePath, o.DestPath)
		}
	case models.OutcomeWouldCopy:
		fmt.Fprintf(f.writer, "  %s %s -> %s\n", f.faint.Sprint("would copy"), o.SourcePath, o.DestPath)
	case models.OutcomeSkipped:
		if f.verbose {
			fmt.Fprintf(f.writer, "  %s %s (%s)\n", f.yellow.Sprint("keep"), o.DestPath, o.Reason)
		}
	case models.OutcomeFailed:
		fmt.Fprintf(f.writer, "  %s %s -> %s: %s\n", f.red.Sprint("fail"), o.SourcePath, o.DestPath, o.Error)
	}
	if o.BackupPath != "" && o.Status != models.OutcomeFailed && f.verbose {
		fmt.Fprintf(f.writer, "  %s %s -> %s\n", f.yellow.Sprint("back"), o.DestPath, o.BackupPath)
	}
	return nil
}

// TargetSkipped reports an invalid target
func (f *HumanFormatter) TargetSkipped(target, reason string) error {
	fmt.Fprintf(f.writer, "\n%s %s: %s\n", f.yellow.Sprint("skip target"), target, reason)
	return nil
}

// Complete displays the aggregate summary
func (f *HumanFormatter) Complete(run *models.RunReport) error {
	copied, skipped, failed := run.Totals()

	fmt.Fprintf(f.writer, "\n")
	for _, tr := range run.Targets {
		if !tr.Valid {
			fmt.Fprintf(f.writer, "%s: skipped (%s)\n", tr.Target, tr.Reason)
			continue
		}
		fmt.Fprintf(f.writer, "%s: %d copied, %d skipped, %d failed\n",
			tr.Target, tr.Copied, tr.Skipped, tr.Failed)
	}

	verb := "copied"
	if run.DryRun {
		verb = "would copy"
	}
	fmt.Fprintf(f.writer, "\nTotal: %d %s, %d skipped, %d failed in %s\n",
		copied, verb, skipped, failed, run.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "Status: %s\n", run.Status)

	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
