package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
)

// AssessmentModel is the view model for the post-call report screen.
type AssessmentModel struct {
	assessment *assess.Assessment

	width  int
	height int
}

// NewAssessmentModel creates the report screen for a finished session.
func NewAssessmentModel(a *assess.Assessment, width, height int) AssessmentModel {
	return AssessmentModel{assessment: a, width: width, height: height}
}

// Init returns the initial command for the assessment view.
func (m AssessmentModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the assessment view.
func (m AssessmentModel) Update(msg tea.Msg) (AssessmentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter, tui.KeyEsc:
			return m, func() tea.Msg { return tui.NewCallMsg{} }
		}
	}
	return m, nil
}

// View renders the call report.
func (m AssessmentModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Call Report"))
	b.WriteString("\n\n")

	if m.assessment == nil {
		b.WriteString(tui.DimStyle.Render("No session was completed."))
	} else {
		a := m.assessment
		b.WriteString(fmt.Sprintf("Overall score: %s   Duration: %ds\n\n",
			scoreStyle(a.OverallScore).Render(fmt.Sprintf("%d/100", a.OverallScore)),
			a.Duration))

		c := a.Categories
		b.WriteString(renderScore("Empathy", c.Empathy))
		b.WriteString(renderScore("Clarity", c.Clarity))
		b.WriteString(renderScore("Professionalism", c.Professionalism))
		b.WriteString(renderScore("Problem solving", c.ProblemSolving))

		if len(a.Strengths) > 0 {
			b.WriteString("\n" + tui.SuccessStyle.Render("Strengths") + "\n")
			for _, s := range a.Strengths {
				b.WriteString("  + " + s + "\n")
			}
		}
		if len(a.Improvements) > 0 {
			b.WriteString("\n" + tui.WarningStyle.Render("Areas to improve") + "\n")
			for _, s := range a.Improvements {
				b.WriteString("  - " + s + "\n")
			}
		}
		if len(a.KeyMoments) > 0 {
			b.WriteString("\n" + tui.TitleStyle.Render("Key moments") + "\n")
			for _, s := range a.KeyMoments {
				b.WriteString("  * " + s + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("enter new call  ctrl+c exit"))

	boxWidth := 70
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func renderScore(label string, score int) string {
	return fmt.Sprintf("  %-16s %s\n", label, scoreStyle(score).Render(fmt.Sprintf("%3d", score)))
}

// scoreStyle colors a score green, amber, or red by band.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return tui.SuccessStyle
	case score >= 70:
		return tui.WarningStyle
	default:
		return tui.ErrorStyle
	}
}
