// Package session holds the in-memory state for the single live training
// session: persona, scenario, transcript, coaching hints and the final
// assessment. There is no persistence; a session lives and dies with the
// process.
package session

import (
	"time"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/coach"
)

// Role identifies who authored a transcript message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// State is the conversation state of the live session. Exactly one state is
// active at a time; the turn controller is the only writer.
type State string

// Conversation states.
const (
	StateIdle       State = "idle"
	StateListening  State = "listening"
	StateProcessing State = "processing"
	StateSpeaking   State = "speaking"
)

// Message is a single committed transcript entry. Immutable once created.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Session is a read-only snapshot of the live session aggregate.
type Session struct {
	ID           string
	Persona      *catalog.Persona
	Scenario     *catalog.Scenario
	Messages     []Message
	State        State
	Hints        []coach.Hint
	ShowCoaching bool
	Assessment   *assess.Assessment
	StartedAt    time.Time
}

// Active reports whether a session has been started and not yet reset.
func (s Session) Active() bool {
	return !s.StartedAt.IsZero()
}
