package engine

import (
	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/session"
)

// EventType identifies an outbound controller event.
type EventType string

// Outbound event types consumed by the presentation layer.
const (
	// EventState fires on every conversation state transition.
	EventState EventType = "state"

	// EventInterim fires when the live interim transcript changes. An
	// empty Interim clears the display.
	EventInterim EventType = "interim"

	// EventMessage fires after a message is committed to the transcript.
	EventMessage EventType = "message"

	// EventTurnFailed fires when a turn was abandoned due to an adapter
	// or generation failure. The session itself is still healthy.
	EventTurnFailed EventType = "turn_failed"

	// EventUnsupported fires once when the capture engine reports it is
	// unavailable; input controls should be disabled.
	EventUnsupported EventType = "unsupported"

	// EventSessionEnded fires when the session has been finalized and
	// assessed.
	EventSessionEnded EventType = "session_ended"
)

// Event is a single notification from the controller to the presentation
// layer.
type Event struct {
	Type       EventType
	State      session.State
	Interim    string
	Message    session.Message
	Reason     string
	Assessment *assess.Assessment
}

// Snapshot is the controller's read-only view for the presentation layer.
type Snapshot struct {
	State     session.State
	Interim   string
	Supported bool
}
