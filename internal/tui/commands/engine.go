// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dialcoach-dev/dialcoach/internal/engine"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
	"github.com/dialcoach-dev/dialcoach/internal/voice"
)

// ListenEngineCmd polls the turn controller's event stream.
// Returns EngineEventMsg for each event, or TickMsg on timeout so the
// caller keeps polling and the call clock keeps moving.
func ListenEngineCmd(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-events:
			return tui.EngineEventMsg{Event: e}
		case <-time.After(100 * time.Millisecond):
			return tui.TickMsg{}
		}
	}
}

// SpeakUtteranceCmd pushes typed text through the capture pipeline as a
// recognition result, so a typed turn obeys the same commit rules as a
// spoken one. Text without terminal punctuation is committed by closing
// the listening window.
func SpeakUtteranceCmd(controller *engine.Controller, mic *voice.ManualCapture, text string) tea.Cmd {
	return func() tea.Msg {
		controller.StartCapture()

		// The controller opens the adapter on its own goroutine; wait
		// briefly for the window. It never opens while the persona is
		// speaking, in which case the utterance is dropped.
		deadline := time.Now().Add(time.Second)
		for !mic.Listening() && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		if !mic.Push(voice.Fragment{Text: text, Final: true}) {
			return nil
		}

		if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "?") && !strings.HasSuffix(text, "!") {
			controller.StopCapture()
		}
		return nil
	}
}

// EndCallCmd finalizes the session and delivers its assessment.
func EndCallCmd(controller *engine.Controller) tea.Cmd {
	return func() tea.Msg {
		return tui.CallEndedMsg{Assessment: controller.EndSession()}
	}
}
