package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventSessionStarted, SessionID: "s1", PersonaID: "p1", ScenarioID: "s3"},
		{Event: EventUtteranceCommitted, SessionID: "s1", Text: "hello there"},
		{Event: EventSessionEnded, SessionID: "s1", Score: 84, DurationMs: 90000},
	}
	for _, e := range events {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("ReadAll returned %d events, want %d", len(got), len(events))
	}
	if got[0].Event != EventSessionStarted || got[2].Score != 84 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	for _, e := range got {
		if e.Time.IsZero() {
			t.Error("Append should stamp zero times")
		}
	}
}

func TestReadAllMissingFile(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadAll on missing file = %d events, want 0", len(got))
	}
}

func TestAppendDoesNotTruncate(t *testing.T) {
	dir := t.TempDir()
	l, _ := NewLogger(dir)
	l.Append(LogEvent{Event: EventSessionStarted})

	l2, _ := NewLogger(dir)
	l2.Append(LogEvent{Event: EventSessionEnded})

	got, err := l2.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d events, want 2", len(got))
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	if err := l.Append(LogEvent{Event: EventTurnFailed}); err != nil {
		t.Errorf("nil Logger Append should succeed, got %v", err)
	}
}

func TestExplicitTimePreserved(t *testing.T) {
	dir := t.TempDir()
	l, _ := NewLogger(dir)
	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.Append(LogEvent{Event: EventReplyGenerated, Time: stamp})

	got, _ := l.ReadAll()
	if !got[0].Time.Equal(stamp) {
		t.Errorf("Time = %v, want %v", got[0].Time, stamp)
	}

	if _, err := os.Stat(filepath.Join(dir, ".dialcoach", "log.jsonl")); err != nil {
		t.Errorf("log file missing: %v", err)
	}
}
