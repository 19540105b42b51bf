// Package voice defines the speech capture and playback adapter contracts
// the turn controller drives, plus the in-repo engines behind them. The
// underlying engines are free-running; mutual exclusion between capture and
// playback is policy enforced by the controller, not by this package.
package voice

import "errors"

// ErrUnsupported is returned by Start when no capture engine is available.
// The controller degrades to disabled input rather than failing the session.
var ErrUnsupported = errors.New("speech capture not supported")

// ErrNoSpeech marks a transient recognition failure: the engine gave up
// waiting for audio. The controller may restart capture after it.
var ErrNoSpeech = errors.New("no speech detected")

// Fragment is a piece of recognized speech text. Interim fragments may be
// revised by later ones; a final fragment is the engine's settled result.
type Fragment struct {
	Text  string
	Final bool
}

// CaptureEvents carries the capture adapter's callbacks. All callbacks may
// be invoked from the adapter's own goroutine.
type CaptureEvents struct {
	OnFragment func(Fragment)
	OnEnded    func()
	OnError    func(error)
}

// Capture is a continuous speech recognition engine.
type Capture interface {
	// Start begins recognition and reports results through events.
	// Returns ErrUnsupported when no engine is available.
	Start(events CaptureEvents) error

	// Stop ends recognition. No callbacks fire after Stop returns.
	Stop()
}

// PlaybackEvents carries the playback adapter's callbacks.
type PlaybackEvents struct {
	OnStart func()
	OnEnd   func()
	OnError func(error)
}

// Playback is a text-to-speech engine.
type Playback interface {
	// Speak queues text for synthesis, cancelling any utterance in
	// progress, and reports progress through events.
	Speak(text string, events PlaybackEvents)

	// Stop cancels the current utterance without firing OnEnd.
	Stop()
}
