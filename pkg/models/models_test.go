package models

import (
	"testing"
)

func TestRule(t *testing.T) {
	t.Run("Shorthand", func(t *testing.T) {
		r := Rule{SourcePattern: ".env*", DestPath: ".env*"}

		if r.Explicit() {
			t.Error("Explicit() should be false when dest equals pattern")
		}
		if r.DirPattern() {
			t.Error("DirPattern() should be false without trailing slash")
		}
		if r.String() != ".env*" {
			t.Errorf("String() = %s, want .env*", r.String())
		}
	})

	t.Run("ExplicitMapping", func(t *testing.T) {
		r := Rule{SourcePattern: "secrets/prod.env", DestPath: "config/prod.env"}

		if !r.Explicit() {
			t.Error("Explicit() should be true for remapped destination")
		}
		if r.String() != "secrets/prod.env:config/prod.env" {
			t.Errorf("String() = %s", r.String())
		}
	})

	t.Run("DirectoryPattern", func(t *testing.T) {
		r := Rule{SourcePattern: ".claude/", DestPath: ".claude/"}

		if !r.DirPattern() {
			t.Error("DirPattern() should be true for trailing slash")
		}
		if !r.DestDir() {
			t.Error("DestDir() should be true for trailing slash")
		}
	})
}

func TestParseConflictMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ConflictMode
		wantErr bool
	}{
		{"skip", ConflictSkip, false},
		{"overwrite", ConflictOverwrite, false},
		{"backup", ConflictBackup, false},
		{"merge", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConflictMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConflictMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseConflictMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTargetReportAdd(t *testing.T) {
	tr := &TargetReport{Target: "/tmp/t", Valid: true}

	tr.Add(CopyOutcome{SourcePath: "a", Status: OutcomeCopied})
	tr.Add(CopyOutcome{SourcePath: "b", Status: OutcomeWouldCopy})
	tr.Add(CopyOutcome{SourcePath: "c", Status: OutcomeSkipped})
	tr.Add(CopyOutcome{SourcePath: "d", Status: OutcomeFailed, Error: "boom"})

	if tr.Copied != 2 {
		t.Errorf("Copied = %d, want 2 (dry-run counts as copied)", tr.Copied)
	}
	if tr.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", tr.Skipped)
	}
	if tr.Failed != 1 {
		t.Errorf("Failed = %d, want 1", tr.Failed)
	}
	if len(tr.Outcomes) != 4 {
		t.Errorf("Outcomes length = %d, want 4", len(tr.Outcomes))
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   int
	}{
		{RunCompleted, 0},
		{RunPartial, 0},
		{RunFailed, 1},
		{RunCancelled, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunReportTotals(t *testing.T) {
	r := &RunReport{
		Targets: []TargetReport{
			{Copied: 2, Skipped: 1},
			{Copied: 1, Failed: 3},
		},
	}

	copied, skipped, failed := r.Totals()
	if copied != 3 || skipped != 1 || failed != 3 {
		t.Errorf("Totals() = %d/%d/%d, want 3/1/3", copied, skipped, failed)
	}
}
