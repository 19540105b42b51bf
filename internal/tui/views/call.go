package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dialcoach-dev/dialcoach/internal/coach"
	"github.com/dialcoach-dev/dialcoach/internal/engine"
	"github.com/dialcoach-dev/dialcoach/internal/session"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SendUtteranceMsg is sent when the trainee submits a line to speak.
type SendUtteranceMsg struct {
	Content string
}

// EndCallMsg signals that the trainee wants to end the session.
type EndCallMsg struct{}

// ToggleCoachingMsg flips the coaching panel visibility.
type ToggleCoachingMsg struct{}

// ============================================================================
// CallModel
// ============================================================================

// CallModel is the view model for the live call screen: transcript, state
// indicator, interim line, coaching hints, and the utterance input.
type CallModel struct {
	input    textinput.Model
	viewport viewport.Model

	snap        session.Session
	state       session.State
	interim     string
	warning     string
	unsupported bool

	width  int
	height int
}

// NewCallModel creates a call screen sized to the terminal.
func NewCallModel(width, height int) CallModel {
	ti := textinput.New()
	ti.Placeholder = "Speak to the customer... (Enter to send)"
	ti.CharLimit = 500
	ti.Width = width - 12
	ti.Focus()

	vp := viewport.New(clampWidth(width-8), clampHeight(height-14))

	return CallModel{
		input:    ti,
		viewport: vp,
		state:    session.StateIdle,
		width:    width,
		height:   height,
	}
}

func clampWidth(w int) int {
	if w < 20 {
		return 20
	}
	return w
}

func clampHeight(h int) int {
	if h < 5 {
		return 5
	}
	return h
}

// Init returns the initial command for the call view.
func (m CallModel) Init() tea.Cmd {
	return textinput.Blink
}

// Refresh replaces the rendered session and controller snapshots.
func (m *CallModel) Refresh(snap session.Session, eng engine.Snapshot) {
	m.snap = snap
	m.state = eng.State
	m.interim = eng.Interim
	m.unsupported = !eng.Supported
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// SetWarning displays a transient failure line under the transcript.
func (m *CallModel) SetWarning(text string) {
	m.warning = text
}

// Update handles messages for the call view.
func (m CallModel) Update(msg tea.Msg) (CallModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 12
		m.viewport.Width = clampWidth(msg.Width - 8)
		m.viewport.Height = clampHeight(msg.Height - 14)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return EndCallMsg{} }

		case "ctrl+t":
			return m, func() tea.Msg { return ToggleCoachingMsg{} }

		case tui.KeyEnter:
			content := strings.TrimSpace(m.input.Value())
			if content == "" {
				return m, nil
			}
			m.input.Reset()
			m.warning = ""
			return m, func() tea.Msg { return SendUtteranceMsg{Content: content} }
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the live call screen.
func (m CallModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.interim != "" {
		b.WriteString(tui.DimStyle.Render("… " + m.interim))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString(tui.WarningStyle.Render(m.warning))
		b.WriteString("\n")
	}
	if m.unsupported {
		b.WriteString(tui.ErrorStyle.Render("speech input unavailable; type your side of the call"))
		b.WriteString("\n")
	}

	if m.snap.ShowCoaching && len(m.snap.Hints) > 0 {
		b.WriteString(m.renderHints())
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("enter send  ctrl+t coaching  esc end call  ctrl+c exit"))

	return b.String()
}

func (m CallModel) renderHeader() string {
	if m.snap.Scenario == nil || m.snap.Persona == nil {
		return tui.TitleStyle.Render("Dialcoach")
	}

	title := fmt.Sprintf("Call #%s — %s: %s",
		m.snap.Scenario.CallID, m.snap.Scenario.Service, m.snap.Scenario.Subject)

	elapsed := ""
	if m.snap.Active() {
		elapsed = time.Since(m.snap.StartedAt).Truncate(time.Second).String()
	}

	status := fmt.Sprintf("%s  %s %s  %s",
		tui.StateIndicator(m.state),
		m.snap.Persona.Avatar, m.snap.Persona.Name,
		tui.DimStyle.Render(elapsed))

	return tui.TitleStyle.Render(title) + "\n" + status
}

func (m CallModel) renderTranscript() string {
	if len(m.snap.Messages) == 0 {
		return tui.DimStyle.Render("The line is open.")
	}

	var b strings.Builder
	for _, msg := range m.snap.Messages {
		label := tui.AgentStyle.Render("you")
		if msg.Role == session.RoleAssistant && m.snap.Persona != nil {
			label = tui.PersonaStyle.Render(m.snap.Persona.Name)
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", label, msg.Content))
	}
	return b.String()
}

func (m CallModel) renderHints() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Coaching"))
	b.WriteString("\n")
	for _, h := range m.snap.Hints {
		style := tui.DimStyle
		switch h.Priority {
		case coach.High:
			style = tui.ErrorStyle
		case coach.Medium:
			style = tui.WarningStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s]", h.Priority)))
		b.WriteString(" " + h.Text + "\n")
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(b.String())
}
