// Package views provides TUI view components for the dialcoach application.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
)

// Column indexes for the setup screen.
const (
	columnPersona = iota
	columnScenario
)

// SetupModel is the view model for the new-call screen: pick a persona and
// a scenario, or start a random call.
type SetupModel struct {
	personas  []catalog.Persona
	scenarios []catalog.Scenario

	column         int
	personaCursor  int
	scenarioCursor int

	width  int
	height int
}

// NewSetupModel creates the setup screen over the full catalogs.
func NewSetupModel(width, height int) SetupModel {
	return SetupModel{
		personas:  catalog.Personas(),
		scenarios: catalog.Scenarios(),
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the setup view.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the setup view.
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyTab:
			m.column = (m.column + 1) % 2

		case tui.KeyUp, "k":
			if m.column == columnPersona && m.personaCursor > 0 {
				m.personaCursor--
			}
			if m.column == columnScenario && m.scenarioCursor > 0 {
				m.scenarioCursor--
			}

		case tui.KeyDown, "j":
			if m.column == columnPersona && m.personaCursor < len(m.personas)-1 {
				m.personaCursor++
			}
			if m.column == columnScenario && m.scenarioCursor < len(m.scenarios)-1 {
				m.scenarioCursor++
			}

		case tui.KeyEnter:
			persona := m.personas[m.personaCursor]
			scenario := m.scenarios[m.scenarioCursor]
			return m, func() tea.Msg {
				return tui.StartCallMsg{Persona: &persona, Scenario: &scenario}
			}

		case "r":
			return m, func() tea.Msg {
				return tui.StartCallMsg{}
			}
		}
	}

	return m, nil
}

// View renders the setup screen.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Dialcoach — New Call"))
	b.WriteString("\n\n")

	left := m.renderPersonaColumn()
	right := m.renderScenarioColumn()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("tab switch column  ↑/↓ move  enter start call  r random call  ctrl+c exit"))

	boxWidth := 76
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func (m SetupModel) renderPersonaColumn() string {
	var b strings.Builder

	header := "Persona"
	if m.column == columnPersona {
		header = tui.SelectedStyle.Render(header)
	} else {
		header = tui.DimStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for i, p := range m.personas {
		line := fmt.Sprintf("%s %s", p.Avatar, p.Name)
		if i == m.personaCursor {
			line = tui.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("    " + m.personas[i].Tone))
		b.WriteString("\n")
	}

	return b.String()
}

func (m SetupModel) renderScenarioColumn() string {
	var b strings.Builder

	header := "Scenario"
	if m.column == columnScenario {
		header = tui.SelectedStyle.Render(header)
	} else {
		header = tui.DimStyle.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n")

	for i, s := range m.scenarios {
		line := fmt.Sprintf("#%s %s", s.CallID, s.Subject)
		if i == m.scenarioCursor {
			line = tui.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("    " + s.Service))
		b.WriteString("\n")
	}

	return b.String()
}
