package engine

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/sdelcourt/copyconfigs/pkg/logging"
	"github.com/sdelcourt/copyconfigs/pkg/models"
	"github.com/sdelcourt/copyconfigs/pkg/rules"
	"github.com/sdelcourt/copyconfigs/pkg/storage"
)

// executor performs the filesystem transfer for one matched item into one
// target tree. All failures are captured as outcomes; nothing escalates past
// the item boundary.
type executor struct {
	target   storage.Backend
	resolver *Resolver
	dryRun   bool
	logger   logging.Logger
}

func newExecutor(target storage.Backend, resolver *Resolver, dryRun bool, logger logging.Logger) *executor {
	return &executor{target: target, resolver: resolver, dryRun: dryRun, logger: logger}
}

// destinationFor resolves the destination relative path for one match.
//
// Relative-structure mode reconstructs the source layout under the target.
// Explicit mapping places the item at the rule's destination; a trailing
// slash on the destination means "copy into this directory".
func destinationFor(entry storage.FileInfo, rule models.Rule) string {
	if !rule.Explicit() {
		return entry.RelativePath
	}
	if rule.DestDir() {
		return path.Join(strings.TrimSuffix(rule.DestPath, "/"), path.Base(entry.RelativePath))
	}
	return path.Clean(rule.DestPath)
}

func (x *executor) execute(ctx context.Context, entry storage.FileInfo, rule models.Rule) models.CopyOutcome {
	destPath := destinationFor(entry, rule)

	outcome := models.CopyOutcome{
		SourcePath: entry.RelativePath,
		DestPath:   destPath,
		IsDir:      entry.IsDir,
	}

	// Re-check the resolved destination before any write. Parsing already
	// validated the rule; this guards explicit destinations end to end.
	if err := rules.Validate(destPath); err != nil {
		outcome.Status = models.OutcomeFailed
		outcome.Reason = "unsafe destination"
		outcome.Error = err.Error()
		return outcome
	}

	exists, err := x.target.Exists(ctx, destPath)
	if err != nil {
		outcome.Status = models.OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	decision := x.resolver.Decide(destPath, exists)

	if decision.Action == ActionSkip {
		outcome.Status = models.OutcomeSkipped
		outcome.Reason = "keep (exists)"
		x.logger.Info(ctx, "keep (exists)", logging.Fields{"dest": destPath})
		return outcome
	}

	if x.dryRun {
		outcome.Status = models.OutcomeWouldCopy
		if decision.Action == ActionBackup {
			outcome.BackupPath = decision.BackupPath
		}
		return outcome
	}

	if decision.Action == ActionBackup {
		backupPath, err := x.backup(ctx, destPath, decision.BackupPath)
		if err != nil {
			outcome.Status = models.OutcomeFailed
			outcome.Reason = "backup failed"
			outcome.Error = err.Error()
			return outcome
		}
		outcome.BackupPath = backupPath
	} else if exists {
		// Overwrite mode: replace destination contents. Matters for
		// directories, where a plain copy would merge instead.
		if err := x.target.RemoveAll(ctx, destPath); err != nil {
			outcome.Status = models.OutcomeFailed
			outcome.Reason = "replace failed"
			outcome.Error = err.Error()
			return outcome
		}
	}

	// Parent creation failure is non-fatal: the copy attempt below will
	// fail and be reported instead.
	if parent := path.Dir(destPath); parent != "." {
		if err := x.target.MkdirAll(ctx, parent); err != nil {
			x.logger.Debug(ctx, "failed to create parent directory", logging.Fields{
				"dest": destPath, "error": err.Error(),
			})
		}
	}

	if err := x.target.Copy(ctx, entry, destPath); err != nil {
		outcome.Status = models.OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = models.OutcomeCopied
	return outcome
}

// backup renames the existing destination aside, disambiguating same-second
// collisions so an earlier backup is never overwritten.
func (x *executor) backup(ctx context.Context, destPath, backupPath string) (string, error) {
	candidate := backupPath
	for i := 2; ; i++ {
		exists, err := x.target.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		candidate = backupPath + "-" + strconv.Itoa(i)
	}

	if err := x.target.Rename(ctx, destPath, candidate); err != nil {
		return "", err
	}
	return candidate, nil
}
