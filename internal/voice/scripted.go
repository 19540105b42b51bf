package voice

import (
	"sync"
	"time"
)

// ScriptStep is one scripted recognition result: Text arrives After the
// previous step (or after Start for the first step).
type ScriptStep struct {
	Text  string        `yaml:"text"`
	After time.Duration `yaml:"after"`
	Final bool          `yaml:"final"`
}

// ScriptedCapture replays a fixed sequence of fragments on its own
// goroutine. It backs the simulate command and the engine tests, standing in
// for a live recognizer with fully deterministic content.
//
// The script is consumed across Start calls: each Start resumes where the
// previous listening window left off, so one script can carry a whole
// multi-utterance session. A Start after the script is exhausted fails with
// ErrNoSpeech.
type ScriptedCapture struct {
	steps []ScriptStep

	mu      sync.Mutex
	pos     int
	stopped chan struct{}
}

// NewScriptedCapture creates a capture engine replaying steps.
func NewScriptedCapture(steps []ScriptStep) *ScriptedCapture {
	return &ScriptedCapture{steps: steps}
}

// Start resumes the script in a background goroutine, firing OnEnded when
// the script runs out mid-window.
func (c *ScriptedCapture) Start(events CaptureEvents) error {
	c.mu.Lock()
	if c.pos >= len(c.steps) {
		c.mu.Unlock()
		return ErrNoSpeech
	}
	stopped := make(chan struct{})
	c.stopped = stopped
	c.mu.Unlock()

	go func() {
		for {
			c.mu.Lock()
			if c.pos >= len(c.steps) {
				c.mu.Unlock()
				break
			}
			step := c.steps[c.pos]
			c.mu.Unlock()

			select {
			case <-stopped:
				return
			case <-time.After(step.After):
			}

			c.mu.Lock()
			c.pos++
			c.mu.Unlock()

			if events.OnFragment != nil {
				events.OnFragment(Fragment{Text: step.Text, Final: step.Final})
			}
		}
		select {
		case <-stopped:
		default:
			if events.OnEnded != nil {
				events.OnEnded()
			}
		}
	}()
	return nil
}

// Stop pauses the replay; the next Start resumes from the following step.
func (c *ScriptedCapture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped != nil {
		select {
		case <-c.stopped:
		default:
			close(c.stopped)
		}
	}
}

// Done reports whether every step has been delivered.
func (c *ScriptedCapture) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos >= len(c.steps)
}
