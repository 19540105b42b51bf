// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/engine"
)

// ============================================================================
// State Transition Messages
// ============================================================================

// StartCallMsg requests a new session with the chosen cast.
// Nil persona or scenario means a random pick.
type StartCallMsg struct {
	Persona  *catalog.Persona
	Scenario *catalog.Scenario
}

// CallEndedMsg carries the finalized assessment after a session ends.
type CallEndedMsg struct {
	Assessment *assess.Assessment
}

// NewCallMsg returns from the assessment screen to setup.
type NewCallMsg struct{}

// ============================================================================
// Engine Stream Messages
// ============================================================================

// EngineEventMsg wraps one turn-controller notification.
type EngineEventMsg struct {
	Event engine.Event
}

// TickMsg keeps the engine event poll (and the call clock) alive.
type TickMsg struct{}

// ============================================================================
// Control Messages
// ============================================================================

// CtrlCResetMsg clears the double-press exit confirmation after its timeout.
type CtrlCResetMsg struct{}
