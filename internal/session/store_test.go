package session

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/coach"
)

func newTestStore(seed int64) *Store {
	rng := rand.New(rand.NewSource(seed))
	return NewStore(coach.NewAdvisor(rng), assess.NewAssessor(rng), rng)
}

func TestStartBindsRandomPersonaAndScenario(t *testing.T) {
	s := newTestStore(1)
	snap := s.Start(nil, nil)

	if snap.Persona == nil || snap.Scenario == nil {
		t.Fatal("Start(nil, nil) should bind random persona and scenario")
	}
	if snap.StartedAt.IsZero() {
		t.Error("Start should set the session timer")
	}
	if snap.ID == "" {
		t.Error("Start should assign a session ID")
	}
	if len(snap.Messages) != 0 {
		t.Error("new session should have an empty transcript")
	}
}

func TestStartBindsGivenSelections(t *testing.T) {
	s := newTestStore(1)
	p, _ := catalog.PersonaByID("p2")
	sc, _ := catalog.ScenarioByID("s3")

	snap := s.Start(&p, &sc)
	if snap.Persona.ID != "p2" || snap.Scenario.ID != "s3" {
		t.Errorf("bound (%s, %s), want (p2, s3)", snap.Persona.ID, snap.Scenario.ID)
	}
}

func TestAppendRequiresActiveSession(t *testing.T) {
	s := newTestStore(1)
	if _, err := s.Append(RoleUser, "hello"); err != ErrNoSession {
		t.Errorf("Append before Start: err = %v, want ErrNoSession", err)
	}
}

func TestAppendOrderingAndTimestamps(t *testing.T) {
	s := newTestStore(1)
	s.Start(nil, nil)

	texts := []string{"one", "two", "three"}
	for _, txt := range texts {
		if _, err := s.Append(RoleUser, txt); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	snap := s.Snapshot()
	if len(snap.Messages) != 3 {
		t.Fatalf("len(Messages) = %d, want 3", len(snap.Messages))
	}
	for i, m := range snap.Messages {
		if m.Content != texts[i] {
			t.Errorf("Messages[%d] = %q, want %q", i, m.Content, texts[i])
		}
		if i > 0 && m.Timestamp.Before(snap.Messages[i-1].Timestamp) {
			t.Errorf("Messages[%d] timestamp precedes Messages[%d]", i, i-1)
		}
	}
}

func TestUserAppendReplacesHints(t *testing.T) {
	s := newTestStore(1)
	s.Start(nil, nil)

	s.Append(RoleUser, "hello")
	first := s.Snapshot().Hints
	if len(first) == 0 {
		t.Fatal("first user message should generate hints")
	}

	s.Append(RoleAssistant, "Hi, how can I help?")
	if got := s.Snapshot().Hints; len(got) != len(first) || got[0].ID != first[0].ID {
		t.Error("assistant message should not change hints")
	}

	s.Append(RoleUser, "could you help me with my bill?")
	second := s.Snapshot().Hints
	if len(second) > 0 && len(first) > 0 && second[0].ID == first[0].ID {
		t.Error("second user message should replace the hint set")
	}
}

func TestEndRunsAssessorOnce(t *testing.T) {
	s := newTestStore(1)
	s.now = func() time.Time { return time.Unix(1000, 0) }
	s.Start(nil, nil)
	s.Append(RoleUser, "I understand, could you help?")
	s.now = func() time.Time { return time.Unix(1090, 0) }

	first := s.End()
	if first == nil {
		t.Fatal("End on a started session should produce an assessment")
	}
	if first.Duration != 90 {
		t.Errorf("Duration = %d, want 90", first.Duration)
	}

	second := s.End()
	if second == nil || !reflect.DeepEqual(*second, *first) {
		t.Error("second End call should return the same assessment, not recompute")
	}
}

func TestEndWithoutStartIsNoOp(t *testing.T) {
	s := newTestStore(1)
	if got := s.End(); got != nil {
		t.Errorf("End before Start = %+v, want nil", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := newTestStore(1)
	s.Start(nil, nil)
	s.Append(RoleUser, "hello there friend")
	s.End()
	s.Reset()

	snap := s.Snapshot()
	if snap.Active() {
		t.Error("session should be inactive after Reset")
	}
	if snap.Persona != nil || snap.Scenario != nil || snap.Messages != nil ||
		snap.Hints != nil || snap.Assessment != nil {
		t.Error("Reset should clear all session fields")
	}
	if snap.State != StateIdle {
		t.Errorf("State = %s, want idle", snap.State)
	}
}

func TestToggleCoaching(t *testing.T) {
	s := newTestStore(1)
	if !s.Snapshot().ShowCoaching {
		t.Error("coaching should default to visible")
	}
	if s.ToggleCoaching() {
		t.Error("first toggle should hide coaching")
	}
	s.Reset()
	if s.Snapshot().ShowCoaching {
		t.Error("coaching preference should survive Reset")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(1)
	s.Start(nil, nil)
	s.Append(RoleUser, "hello there")

	snap := s.Snapshot()
	snap.Messages[0].Content = "mutated"
	snap.Persona.Name = "mutated"

	fresh := s.Snapshot()
	if fresh.Messages[0].Content == "mutated" || fresh.Persona.Name == "mutated" {
		t.Error("Snapshot must not share memory with the store")
	}
}
