package voice

import (
	"strings"
	"sync"
	"time"
)

// defaultWordsPerMinute approximates a conversational speaking rate.
const defaultWordsPerMinute = 150

// minUtterance keeps even one-word replies audible for a beat.
const minUtterance = 400 * time.Millisecond

// PacedPlayback simulates synthesis by holding the speaking state for as
// long as a voice would need to read the text at the configured word rate.
// OnStart fires synchronously from Speak; OnEnd fires from a timer
// goroutine when the utterance "finishes".
type PacedPlayback struct {
	wpm int

	mu    sync.Mutex
	gen   int
	timer *time.Timer
}

// NewPacedPlayback creates a playback engine at wpm words per minute.
// Non-positive wpm falls back to the default rate.
func NewPacedPlayback(wpm int) *PacedPlayback {
	if wpm <= 0 {
		wpm = defaultWordsPerMinute
	}
	return &PacedPlayback{wpm: wpm}
}

// Duration returns how long the engine will hold text as speaking.
func (p *PacedPlayback) Duration(text string) time.Duration {
	words := len(strings.Fields(text))
	d := time.Duration(words) * time.Minute / time.Duration(p.wpm)
	if d < minUtterance {
		d = minUtterance
	}
	return d
}

// Speak cancels any utterance in progress and begins the new one.
func (p *PacedPlayback) Speak(text string, events PlaybackEvents) {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen

	if events.OnStart != nil {
		events.OnStart()
	}

	p.timer = time.AfterFunc(p.Duration(text), func() {
		p.mu.Lock()
		current := gen == p.gen
		p.mu.Unlock()
		if current && events.OnEnd != nil {
			events.OnEnd()
		}
	})
	p.mu.Unlock()
}

// Stop cancels the current utterance. OnEnd does not fire for a stopped
// utterance.
func (p *PacedPlayback) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// InstantPlayback completes every utterance immediately. Used by the
// simulate command and tests, where pacing would only slow things down.
type InstantPlayback struct{}

// Speak fires OnStart and OnEnd back to back.
func (InstantPlayback) Speak(text string, events PlaybackEvents) {
	if events.OnStart != nil {
		events.OnStart()
	}
	if events.OnEnd != nil {
		events.OnEnd()
	}
}

// Stop is a no-op.
func (InstantPlayback) Stop() {}
