package tui

import "github.com/dialcoach-dev/dialcoach/internal/config"

// ViewState identifies which screen the application is showing.
type ViewState int

// Application screens.
const (
	StateSetup ViewState = iota
	StateCall
	StateAssessment
)

// Model holds state shared across all TUI screens.
type Model struct {
	Cfg    *config.Config
	Width  int
	Height int
	State  ViewState

	// CtrlCPending is set after the first Ctrl+C; a second press within
	// the confirmation window exits.
	CtrlCPending bool

	Err error
}

// NewModel creates the shared model with sensible terminal defaults.
func NewModel(cfg *config.Config) *Model {
	return &Model{
		Cfg:    cfg,
		Width:  80,
		Height: 24,
		State:  StateSetup,
	}
}
