package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dialcoach-dev/dialcoach/internal/session"
)

// Color constants for the call-center aesthetic.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// AgentStyle labels the trainee's transcript lines.
	AgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor)).
			Bold(true)

	// PersonaStyle labels the customer persona's transcript lines.
	PersonaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)
)

// State indicator strings (pre-rendered).
var (
	// StateIdleIndicator shows a quiet line.
	StateIdleIndicator = DimStyle.Render("○ ready")

	// StateListeningIndicator shows an open microphone.
	StateListeningIndicator = SuccessStyle.Render("● listening")

	// StateProcessingIndicator shows the persona thinking.
	StateProcessingIndicator = WarningStyle.Render("… thinking")

	// StateSpeakingIndicator shows the persona talking.
	StateSpeakingIndicator = SelectedStyle.Render("▸ speaking")
)

// StateIndicator maps a conversation state to its rendered indicator.
func StateIndicator(s session.State) string {
	switch s {
	case session.StateListening:
		return StateListeningIndicator
	case session.StateProcessing:
		return StateProcessingIndicator
	case session.StateSpeaking:
		return StateSpeakingIndicator
	default:
		return StateIdleIndicator
	}
}
