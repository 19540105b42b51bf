package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dialcoach-dev/dialcoach/internal/log"
)

// seedLog writes one event per timestamp into dir's event log.
func seedLog(t *testing.T, dir string, times ...time.Time) {
	t.Helper()
	logger, err := log.NewLogger(dir)
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	for _, ts := range times {
		if err := logger.Append(log.LogEvent{Time: ts, Event: log.EventSessionStarted}); err != nil {
			t.Fatalf("seeding log: %v", err)
		}
	}
}

func countLines(t *testing.T, dir string) int {
	t.Helper()
	lines, err := readLines(filepath.Join(dir, logRelPath))
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("reading log: %v", err)
	}
	return len(lines)
}

func TestPruneByAge_RemovesOldEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	seedLog(t, dir, now.AddDate(0, 0, -60), now.AddDate(0, 0, -5))

	pruned, err := PruneByAge(dir, 30, false)
	if err != nil {
		t.Fatalf("PruneByAge failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if got := countLines(t, dir); got != 1 {
		t.Errorf("remaining lines = %d, want 1", got)
	}
}

func TestPruneByAge_DryRun(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	seedLog(t, dir, now.AddDate(0, 0, -60), now.AddDate(0, 0, -5))

	pruned, err := PruneByAge(dir, 30, true)
	if err != nil {
		t.Fatalf("PruneByAge dry-run failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if got := countLines(t, dir); got != 2 {
		t.Errorf("dry run modified the log: %d lines remain, want 2", got)
	}
}

func TestPruneByAge_MissingLog(t *testing.T) {
	pruned, err := PruneByAge(t.TempDir(), 30, false)
	if err != nil {
		t.Fatalf("PruneByAge on missing log failed: %v", err)
	}
	if pruned != 0 {
		t.Errorf("pruned = %d, want 0", pruned)
	}
}

func TestPruneKeepRecent(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	seedLog(t, dir, now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour))

	pruned, err := PruneKeepRecent(dir, 2, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if got := countLines(t, dir); got != 2 {
		t.Errorf("remaining lines = %d, want 2", got)
	}
}

func TestPruneKeepRecent_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	seedLog(t, dir, time.Now())

	pruned, err := PruneKeepRecent(dir, 5, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if pruned != 0 {
		t.Errorf("pruned = %d, want 0", pruned)
	}
}
