// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dialcoach-dev/dialcoach/internal/config"
	"github.com/dialcoach-dev/dialcoach/internal/engine"
	"github.com/dialcoach-dev/dialcoach/internal/session"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
	"github.com/dialcoach-dev/dialcoach/internal/tui/commands"
	"github.com/dialcoach-dev/dialcoach/internal/tui/views"
	"github.com/dialcoach-dev/dialcoach/internal/voice"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	store      *session.Store
	controller *engine.Controller
	mic        *voice.ManualCapture

	// View models
	setupView      views.SetupModel
	callView       views.CallModel
	assessmentView views.AssessmentModel
}

// New creates a new App over a wired engine stack.
func New(cfg *config.Config, store *session.Store, controller *engine.Controller, mic *voice.ManualCapture) *App {
	model := tui.NewModel(cfg)

	return &App{
		model:      model,
		store:      store,
		controller: controller,
		mic:        mic,
		setupView:  views.NewSetupModel(model.Width, model.Height),
	}
}

// Init starts the engine event poll alongside the first view.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.setupView.Init(),
		commands.ListenEngineCmd(a.controller.Events()),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateSetup:
			a.setupView, cmd = a.setupView.Update(msg)
		case tui.StateCall:
			a.callView, cmd = a.callView.Update(msg)
		case tui.StateAssessment:
			a.assessmentView, cmd = a.assessmentView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				a.controller.Close()
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.EngineEventMsg:
		return a.handleEngineEvent(msg.Event)

	case tui.TickMsg:
		// Keep the poll alive; refresh the clock while on a call.
		if a.model.State == tui.StateCall {
			a.refreshCall()
		}
		return a, commands.ListenEngineCmd(a.controller.Events())

	case tui.StartCallMsg:
		return a.startCall(msg)

	case views.SendUtteranceMsg:
		return a, commands.SpeakUtteranceCmd(a.controller, a.mic, msg.Content)

	case views.ToggleCoachingMsg:
		a.store.ToggleCoaching()
		a.refreshCall()
		return a, nil

	case views.EndCallMsg:
		return a, commands.EndCallCmd(a.controller)

	case tui.CallEndedMsg:
		a.model.State = tui.StateAssessment
		a.assessmentView = views.NewAssessmentModel(msg.Assessment, a.model.Width, a.model.Height)
		return a, a.assessmentView.Init()

	case tui.NewCallMsg:
		a.store.Reset()
		a.model.State = tui.StateSetup
		a.setupView = views.NewSetupModel(a.model.Width, a.model.Height)
		return a, a.setupView.Init()
	}

	// Route everything else to the active view.
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateSetup:
		a.setupView, cmd = a.setupView.Update(msg)
	case tui.StateCall:
		a.callView, cmd = a.callView.Update(msg)
	case tui.StateAssessment:
		a.assessmentView, cmd = a.assessmentView.Update(msg)
	}
	return a, cmd
}

// View renders the current application state.
func (a *App) View() string {
	var content string
	switch a.model.State {
	case tui.StateSetup:
		content = a.setupView.View()
	case tui.StateCall:
		content = a.callView.View()
	case tui.StateAssessment:
		content = a.assessmentView.View()
	default:
		content = "Unknown state"
	}

	if a.model.CtrlCPending {
		content += "\n" + tui.WarningStyle.Render("Press ctrl+c again to exit")
	}

	if a.model.State == tui.StateCall {
		// The call screen manages its own layout edge to edge.
		return content
	}
	return lipgloss.Place(a.model.Width, a.model.Height, lipgloss.Center, lipgloss.Center, content)
}

// ============================================================================
// State Transitions
// ============================================================================

// startCall begins a session with the chosen (or random) cast and has the
// persona speak its opening line.
func (a *App) startCall(msg tui.StartCallMsg) (tea.Model, tea.Cmd) {
	a.store.Start(msg.Persona, msg.Scenario)
	a.model.State = tui.StateCall
	a.callView = views.NewCallModel(a.model.Width, a.model.Height)
	a.refreshCall()

	a.controller.Greet()
	return a, a.callView.Init()
}

// handleEngineEvent folds one controller notification into the call view.
func (a *App) handleEngineEvent(e engine.Event) (tea.Model, tea.Cmd) {
	if a.model.State == tui.StateCall {
		if e.Type == engine.EventTurnFailed {
			a.callView.SetWarning("turn failed: " + e.Reason)
		}
		a.refreshCall()
	}
	return a, commands.ListenEngineCmd(a.controller.Events())
}

// refreshCall pushes fresh store and controller snapshots into the call view.
func (a *App) refreshCall() {
	a.callView.Refresh(a.store.Snapshot(), a.controller.Snapshot())
}
