// Package engine drives rule resolution and copy execution: for each target
// it expands every rule against the source tree, applies the conflict policy
// per match, and aggregates outcomes into a run report. Execution is
// sequential and best-effort; a failing item, rule, or target never aborts
// the rest of the run.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sdelcourt/copyconfigs/pkg/logging"
	"github.com/sdelcourt/copyconfigs/pkg/match"
	"github.com/sdelcourt/copyconfigs/pkg/models"
	"github.com/sdelcourt/copyconfigs/pkg/output"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
)

// Engine orchestrates one invocation over a fixed rule set and source root
type Engine struct {
	source    storage.Backend
	ruleSet   models.RuleSet
	resolver  *Resolver
	dryRun    bool
	formatter output.Formatter
	logger    logging.Logger
}

// New creates an engine. The rule set and source are read-only for the
// lifetime of the engine.
func New(
	source storage.Backend,
	ruleSet models.RuleSet,
	mode models.ConflictMode,
	dryRun bool,
	formatter output.Formatter,
	logger logging.Logger,
) *Engine {
	return &Engine{
		source:    source,
		ruleSet:   ruleSet,
		resolver:  NewResolver(mode),
		dryRun:    dryRun,
		formatter: formatter,
		logger:    logger,
	}
}

// plannedItem pairs one concrete match with the rule that selected it
type plannedItem struct {
	rule  models.Rule
	entry storage.FileInfo
}

// Run processes every target in order and returns the aggregated report.
// The returned error is reserved for structural failures (no targets), which
// also mark the report failed; per-target and per-item problems are recorded
// in the report instead.
func (e *Engine) Run(ctx context.Context, targets []string) (*models.RunReport, error) {
	report := &models.RunReport{
		ID:           uuid.New().String(),
		SourceRoot:   e.source.Root(),
		RuleOrigin:   e.ruleSet.Origin,
		RulePath:     e.ruleSet.Path,
		ConflictMode: e.resolver.Mode(),
		DryRun:       e.dryRun,
		StartTime:    time.Now(),
	}

	if len(targets) == 0 {
		report.Status = models.RunFailed
		report.EndTime = time.Now()
		return report, fmt.Errorf("no target directories provided")
	}

	e.formatter.Start(report)

	cancelled := false
	for _, target := range targets {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		report.Targets = append(report.Targets, e.runTarget(ctx, target))
		if ctx.Err() != nil {
			cancelled = true
			break
		}
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	_, _, failed := report.Totals()
	switch {
	case cancelled:
		report.Status = models.RunCancelled
	case failed > 0:
		report.Status = models.RunPartial
	default:
		report.Status = models.RunCompleted
	}

	e.formatter.Complete(report)

	return report, nil
}

// runTarget processes one target independently of all others
func (e *Engine) runTarget(ctx context.Context, target string) models.TargetReport {
	start := time.Now()
	tr := models.TargetReport{Target: target}

	if err := validateTarget(target); err != nil {
		tr.Reason = err.Error()
		e.logger.Warn(ctx, "skipping target", logging.Fields{"target": target, "reason": tr.Reason})
		e.formatter.TargetSkipped(target, tr.Reason)
		tr.Duration = time.Since(start)
		return tr
	}

	backend, err := storage.NewLocal(target)
	if err != nil {
		tr.Reason = err.Error()
		e.logger.Warn(ctx, "skipping target", logging.Fields{"target": target, "reason": tr.Reason})
		e.formatter.TargetSkipped(target, tr.Reason)
		tr.Duration = time.Since(start)
		return tr
	}
	defer backend.Close()

	tr.Valid = true

	// The source snapshot is rebuilt per target so every target sees a
	// current tree.
	items := e.plan(ctx, match.New(e.source))

	e.formatter.TargetStart(target, len(items))

	exec := newExecutor(backend, e.resolver, e.dryRun, e.logger.WithFields(logging.Fields{"target": target}))
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		outcome := e.executeItem(ctx, exec, item)
		tr.Add(outcome)
		e.formatter.Outcome(outcome)
	}

	tr.Duration = time.Since(start)
	return tr
}

func (e *Engine) executeItem(ctx context.Context, exec *executor, item plannedItem) models.CopyOutcome {
	outcome := exec.execute(ctx, item.entry, item.rule)

	fields := logging.Fields{
		"rule":   item.rule.String(),
		"source": outcome.SourcePath,
		"dest":   outcome.DestPath,
	}
	switch outcome.Status {
	case models.OutcomeFailed:
		e.logger.Error(ctx, "copy failed", fmt.Errorf("%s", outcome.Error), fields)
	case models.OutcomeWouldCopy:
		e.logger.Info(ctx, "would copy", fields)
	case models.OutcomeCopied:
		e.logger.Info(ctx, "copied", fields)
	}

	return outcome
}

// plan expands every rule into concrete items, in rule order then walk
// order. Rules with invalid patterns are skipped with a diagnostic; rules
// with zero matches are logged and dropped. All matching rules apply
// independently, so one source path may appear under several rules.
func (e *Engine) plan(ctx context.Context, matcher *match.Matcher) []plannedItem {
	var items []plannedItem
	for _, rule := range e.ruleSet.Rules {
		matches, err := matcher.Match(ctx, rule.SourcePattern)
		if err != nil {
			e.logger.Warn(ctx, "skipping rule", logging.Fields{
				"rule": rule.String(), "reason": err.Error(),
			})
			continue
		}
		if len(matches) == 0 {
			e.logger.Info(ctx, "no match", logging.Fields{"pattern": rule.SourcePattern})
			continue
		}
		for _, entry := range matches {
			items = append(items, plannedItem{rule: rule, entry: entry})
		}
	}
	return items
}

// validateTarget checks that a target is an existing, writable directory
func validateTarget(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}
	if !info.IsDir() {
		return fmt.Errorf("target is not a directory: %s", target)
	}

	// Writability probe: creating a file is the only check that holds on
	// every platform and filesystem.
	probe, err := os.CreateTemp(target, ".copyconfigs-probe-*")
	if err != nil {
		return fmt.Errorf("target is not writable: %s", target)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}
