package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/coach"
)

// ErrNoSession is returned when a mutation requires a started session.
var ErrNoSession = errors.New("no active session")

// Store owns the single live session aggregate. All mutation goes through
// its methods; readers get snapshots. Thread-safe via mutex.
type Store struct {
	mu sync.Mutex

	advisor  *coach.Advisor
	assessor *assess.Assessor
	rng      *rand.Rand
	now      func() time.Time

	id           string
	persona      *catalog.Persona
	scenario     *catalog.Scenario
	messages     []Message
	state        State
	hints        []coach.Hint
	showCoaching bool
	assessment   *assess.Assessment
	startedAt    time.Time
}

// NewStore creates an empty Store. The advisor runs after every user
// message; the assessor runs once at session end. The random source drives
// persona/scenario quick-start selection.
func NewStore(advisor *coach.Advisor, assessor *assess.Assessor, rng *rand.Rand) *Store {
	return &Store{
		advisor:      advisor,
		assessor:     assessor,
		rng:          rng,
		now:          time.Now,
		state:        StateIdle,
		showCoaching: true,
	}
}

// Start binds the given persona and scenario (or random picks when nil),
// clears the transcript, hints and any previous assessment, and starts the
// session timer.
func (s *Store) Start(persona *catalog.Persona, scenario *catalog.Scenario) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if persona == nil {
		p := catalog.RandomPersona(s.rng)
		persona = &p
	}
	if scenario == nil {
		sc := catalog.RandomScenario(s.rng)
		scenario = &sc
	}

	s.id = uuid.New().String()
	s.persona = persona
	s.scenario = scenario
	s.messages = nil
	s.state = StateIdle
	s.hints = nil
	s.assessment = nil
	s.startedAt = s.now()

	return s.snapshotLocked()
}

// Append adds a message to the transcript. A user message additionally
// replaces the coaching hint set. Returns the created message.
func (s *Store) Append(role Role, content string) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startedAt.IsZero() {
		return Message{}, ErrNoSession
	}

	msg := Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)

	if role == RoleUser {
		s.hints = s.advisor.Hints(len(s.messages), *s.scenario, content)
	}

	return msg, nil
}

// SetState records the conversation state. Called only by the turn
// controller, which owns the state machine.
func (s *Store) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// End freezes the session and produces its assessment. Calling End on a
// session that was never started is a no-op returning nil. Calling it twice
// returns the same assessment without re-running the assessor.
func (s *Store) End() *assess.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startedAt.IsZero() {
		return nil
	}
	if s.assessment != nil {
		return s.assessment
	}

	var userMessages []string
	for _, m := range s.messages {
		if m.Role == RoleUser {
			userMessages = append(userMessages, m.Content)
		}
	}

	a := s.assessor.Assess(s.id, userMessages, s.now().Sub(s.startedAt))
	s.assessment = &a
	s.state = StateIdle
	return s.assessment
}

// Reset clears everything back to the pre-start state. The coaching
// visibility preference survives.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = ""
	s.persona = nil
	s.scenario = nil
	s.messages = nil
	s.state = StateIdle
	s.hints = nil
	s.assessment = nil
	s.startedAt = time.Time{}
}

// SetCoaching sets hint visibility, typically from configuration at startup.
func (s *Store) SetCoaching(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showCoaching = enabled
}

// ToggleCoaching flips hint visibility and returns the new value.
func (s *Store) ToggleCoaching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showCoaching = !s.showCoaching
	return s.showCoaching
}

// Snapshot returns a copy of the session aggregate for presentation reads.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Session {
	snap := Session{
		ID:           s.id,
		State:        s.state,
		ShowCoaching: s.showCoaching,
		StartedAt:    s.startedAt,
	}
	if s.persona != nil {
		p := *s.persona
		snap.Persona = &p
	}
	if s.scenario != nil {
		sc := *s.scenario
		snap.Scenario = &sc
	}
	if len(s.messages) > 0 {
		snap.Messages = make([]Message, len(s.messages))
		copy(snap.Messages, s.messages)
	}
	if len(s.hints) > 0 {
		snap.Hints = make([]coach.Hint, len(s.hints))
		copy(snap.Hints, s.hints)
	}
	if s.assessment != nil {
		a := *s.assessment
		snap.Assessment = &a
	}
	return snap
}
