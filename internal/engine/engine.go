// Package engine implements the turn controller: the state machine that
// arbitrates speech capture against playback, converts noisy partial
// transcripts into committed utterances, and drives the response pipeline.
//
// All transitions run on a single loop goroutine fed by one inbound queue.
// Adapter callbacks and timer fires post events into the queue instead of
// touching state directly, so no two transitions ever overlap. Timer fires
// carry a generation number; re-arming a timer bumps the generation and
// stale fires are ignored.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/log"
	"github.com/dialcoach-dev/dialcoach/internal/respond"
	"github.com/dialcoach-dev/dialcoach/internal/session"
	"github.com/dialcoach-dev/dialcoach/internal/voice"
)

// fallbackReply is spoken in place of a generated response when the
// responder or playback setup fails. The turn still completes.
const fallbackReply = "I'm having trouble responding right now. Could you please repeat that?"

// minFragmentChars is the shortest fragment worth more than interim display.
const minFragmentChars = 3

// minCommitWords is the word count a settled fragment needs to commit.
const minCommitWords = 3

// Config holds the controller's timer durations.
type Config struct {
	// SettleDelay is the silence window after the last fragment before an
	// unpunctuated utterance commits.
	SettleDelay time.Duration

	// ThinkingDelay is the pause between committing the user's utterance
	// and generating the reply.
	ThinkingDelay time.Duration

	// SafetyTimeout forces speaking back to idle if the playback engine
	// never reports completion.
	SafetyTimeout time.Duration
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		SettleDelay:   1500 * time.Millisecond,
		ThinkingDelay: 800 * time.Millisecond,
		SafetyTimeout: 30 * time.Second,
	}
}

// Responder generates the persona's reply to a committed utterance.
// respond.Generator satisfies this.
type Responder interface {
	Reply(transcriptLen int, persona catalog.Persona, scenario catalog.Scenario, userText string) (respond.Category, string, error)
}

// Controller is the turn-taking state machine. It is the only writer of the
// session's conversation state.
type Controller struct {
	cfg       Config
	store     *session.Store
	responder Responder
	capture   voice.Capture
	playback  voice.Playback
	journal   *log.Logger

	inbox  chan any
	events chan Event
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	snap Snapshot
}

// New creates a Controller. journal may be nil to disable event logging.
// Call Start before posting any requests.
func New(cfg Config, store *session.Store, responder Responder, capture voice.Capture, playback voice.Playback, journal *log.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		store:     store,
		responder: responder,
		capture:   capture,
		playback:  playback,
		journal:   journal,
		inbox:     make(chan any, 64),
		events:    make(chan Event, 128),
		done:      make(chan struct{}),
		snap:      Snapshot{State: session.StateIdle, Supported: true},
	}
}

// Start launches the controller loop.
func (c *Controller) Start() {
	go c.run()
}

// Close terminates the loop, silencing both adapters. Safe to call more
// than once.
func (c *Controller) Close() {
	c.once.Do(func() { close(c.done) })
}

// Events returns the outbound notification stream. Events are dropped, not
// queued unboundedly, if the consumer falls behind.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Snapshot returns the controller's current read-only view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// StartCapture requests the listening state. Rejected while the persona is
// speaking; recovers a stuck processing state.
func (c *Controller) StartCapture() { c.post(cmdStartCapture{}) }

// StopCapture ends the listening window. A pending utterance of at least
// three words commits instead of being discarded.
func (c *Controller) StopCapture() { c.post(cmdStopCapture{}) }

// Greet speaks the persona's opening line. No-op unless a session is active
// with an empty transcript.
func (c *Controller) Greet() { c.post(cmdGreet{}) }

// EndSession cancels all timers, silences both adapters, forces idle and
// finalizes the session. Safe from every state; returns the assessment, or
// nil if no session was started. A second call returns the same assessment
// without re-assessing.
func (c *Controller) EndSession() *assess.Assessment {
	reply := make(chan *assess.Assessment, 1)
	select {
	case c.inbox <- cmdEnd{reply: reply}:
	case <-c.done:
		return nil
	}
	select {
	case a := <-reply:
		return a
	case <-c.done:
		return nil
	}
}

// post delivers a message to the loop unless the controller is closed.
func (c *Controller) post(msg any) {
	select {
	case c.inbox <- msg:
	case <-c.done:
	}
}

// Inbound queue message types.
type (
	cmdStartCapture struct{}
	cmdStopCapture  struct{}
	cmdGreet        struct{}
	cmdEnd          struct{ reply chan *assess.Assessment }

	evFragment     struct{ frag voice.Fragment }
	evCaptureEnded struct{}
	evCaptureErr   struct{ err error }
	evPlayStarted  struct{}
	evPlayEnded    struct{}
	evPlayErr      struct{ err error }

	tickSettle   struct{ gen int }
	tickThinking struct{ gen int }
	tickSafety   struct{ gen int }
)

// loop holds the mutable turn state. Only the run goroutine touches it.
type loop struct {
	c *Controller

	state         session.State
	pending       string
	lastCommitted string
	wantListen    bool
	playStarted   bool

	settleGen int
	thinkGen  int
	safetyGen int
}

func (c *Controller) run() {
	l := &loop{c: c, state: session.StateIdle}
	for {
		select {
		case msg := <-c.inbox:
			l.handle(msg)
		case <-c.done:
			c.capture.Stop()
			c.playback.Stop()
			return
		}
	}
}

func (l *loop) handle(msg any) {
	switch m := msg.(type) {
	case cmdStartCapture:
		l.handleStartCapture()
	case cmdStopCapture:
		l.handleStopCapture()
	case cmdGreet:
		l.handleGreet()
	case cmdEnd:
		l.handleEnd(m)
	case evFragment:
		l.handleFragment(m.frag)
	case evCaptureEnded:
		l.handleCaptureEnded()
	case evCaptureErr:
		l.handleCaptureErr(m.err)
	case evPlayStarted:
		l.playStarted = true
		l.journal(log.LogEvent{Event: log.EventPlaybackStarted})
	case evPlayEnded:
		l.handlePlayEnded()
	case evPlayErr:
		l.handlePlayErr(m.err)
	case tickSettle:
		l.handleSettle(m.gen)
	case tickThinking:
		l.handleThinking(m.gen)
	case tickSafety:
		l.handleSafety(m.gen)
	}
}

// ----------------------------------------------------------------------------
// Capture side
// ----------------------------------------------------------------------------

func (l *loop) handleStartCapture() {
	switch l.state {
	case session.StateSpeaking:
		// The persona's turn must finish before the trainee may speak.
		return
	case session.StateListening:
		return
	}

	// Idle, or recovering a stuck processing state: cancel whatever the
	// abandoned turn still had in flight. lastCommitted survives so a
	// capture restart echoing the previous final result stays dropped.
	l.thinkGen++
	l.safetyGen++
	l.pending = ""
	l.wantListen = true
	l.setInterim("")

	if err := l.c.capture.Start(l.captureEvents()); err != nil {
		l.wantListen = false
		if errors.Is(err, voice.ErrUnsupported) {
			l.c.setSupported(false)
			l.emit(Event{Type: EventUnsupported})
			l.journal(log.LogEvent{Event: log.EventCaptureUnsupported})
			return
		}
		l.emit(Event{Type: EventTurnFailed, Reason: err.Error()})
		l.journal(log.LogEvent{Event: log.EventTurnFailed, Error: err.Error()})
		return
	}

	l.setState(session.StateListening)
	l.journal(log.LogEvent{Event: log.EventCaptureStarted})
}

func (l *loop) handleStopCapture() {
	l.wantListen = false
	if l.state != session.StateListening {
		return
	}

	l.settleGen++
	l.c.capture.Stop()
	l.journal(log.LogEvent{Event: log.EventCaptureStopped})

	// A user-initiated stop must not lose an in-flight utterance.
	if wordCount(l.pending) >= minCommitWords && l.pending != l.lastCommitted {
		l.commit(l.pending)
		return
	}

	l.pending = ""
	l.setInterim("")
	l.setState(session.StateIdle)
}

func (l *loop) handleFragment(f voice.Fragment) {
	// Capture results arriving while processing or speaking are the
	// engine hearing the persona (or a late flush); suppress them here
	// since the underlying engines do not.
	if l.state != session.StateListening {
		return
	}

	text := strings.TrimSpace(f.Text)
	if len(text) < minFragmentChars {
		l.setInterim(text)
		return
	}

	// Capture restarts tend to echo the previous final result.
	if text == l.lastCommitted {
		return
	}

	l.setInterim(text)
	l.pending = text

	if hasTerminalPunctuation(text) {
		l.commit(text)
		return
	}

	l.settleGen++
	gen := l.settleGen
	time.AfterFunc(l.c.cfg.SettleDelay, func() { l.c.post(tickSettle{gen: gen}) })
}

func (l *loop) handleSettle(gen int) {
	if gen != l.settleGen || l.state != session.StateListening {
		return
	}
	if wordCount(l.pending) >= minCommitWords {
		l.commit(l.pending)
	}
}

func (l *loop) handleCaptureEnded() {
	if l.state != session.StateListening {
		return
	}
	// Push-to-talk window still open: restart recognition.
	if l.wantListen {
		if err := l.c.capture.Start(l.captureEvents()); err == nil {
			return
		}
	}
	l.setInterim("")
	l.setState(session.StateIdle)
}

func (l *loop) handleCaptureErr(err error) {
	if errors.Is(err, voice.ErrNoSpeech) {
		// Transient: keep the window open if the trainee still wants it.
		if l.wantListen && l.state == session.StateListening {
			if rerr := l.c.capture.Start(l.captureEvents()); rerr == nil {
				return
			}
		}
		if l.state == session.StateListening {
			l.setInterim("")
			l.setState(session.StateIdle)
		}
		return
	}

	l.wantListen = false
	if l.state == session.StateListening {
		l.setInterim("")
		l.setState(session.StateIdle)
	}
	l.emit(Event{Type: EventTurnFailed, Reason: err.Error()})
	l.journal(log.LogEvent{Event: log.EventTurnFailed, Error: err.Error()})
}

// ----------------------------------------------------------------------------
// Commit and response pipeline
// ----------------------------------------------------------------------------

// commit promotes text to a transcript message and starts the response
// pipeline.
func (l *loop) commit(text string) {
	l.lastCommitted = text
	l.pending = ""
	l.settleGen++
	l.wantListen = false
	l.setInterim("")
	l.c.capture.Stop()

	msg, err := l.c.store.Append(session.RoleUser, text)
	if err != nil {
		// No active session to commit into; drop the turn.
		l.setState(session.StateIdle)
		return
	}

	l.setState(session.StateProcessing)
	l.emit(Event{Type: EventMessage, Message: msg})
	l.journal(log.LogEvent{Event: log.EventUtteranceCommitted, Text: text})

	l.thinkGen++
	gen := l.thinkGen
	time.AfterFunc(l.c.cfg.ThinkingDelay, func() { l.c.post(tickThinking{gen: gen}) })
}

func (l *loop) handleThinking(gen int) {
	if gen != l.thinkGen || l.state != session.StateProcessing {
		return
	}

	snap := l.c.store.Snapshot()
	var persona catalog.Persona
	var scenario catalog.Scenario
	if snap.Persona != nil {
		persona = *snap.Persona
	}
	if snap.Scenario != nil {
		scenario = *snap.Scenario
	}

	category, reply, err := l.c.responder.Reply(len(snap.Messages), persona, scenario, l.lastCommitted)
	if err != nil {
		// Generation failure: speak the fixed apology instead so the
		// turn still completes and the transcript stays coherent.
		l.emit(Event{Type: EventTurnFailed, Reason: err.Error()})
		l.journal(log.LogEvent{Event: log.EventTurnFailed, Error: err.Error()})
		if msg, aerr := l.c.store.Append(session.RoleAssistant, fallbackReply); aerr == nil {
			l.emit(Event{Type: EventMessage, Message: msg})
			l.speak(fallbackReply)
			return
		}
		l.setState(session.StateIdle)
		return
	}

	msg, aerr := l.c.store.Append(session.RoleAssistant, reply)
	if aerr != nil {
		l.setState(session.StateIdle)
		return
	}
	l.emit(Event{Type: EventMessage, Message: msg})
	l.journal(log.LogEvent{Event: log.EventReplyGenerated, Category: string(category), Text: reply})

	l.speak(reply)
}

// speak transitions to speaking and arms the safety timeout.
func (l *loop) speak(text string) {
	l.playStarted = false
	l.setState(session.StateSpeaking)

	l.safetyGen++
	gen := l.safetyGen
	time.AfterFunc(l.c.cfg.SafetyTimeout, func() { l.c.post(tickSafety{gen: gen}) })

	l.c.playback.Speak(text, voice.PlaybackEvents{
		OnStart: func() { l.c.post(evPlayStarted{}) },
		OnEnd:   func() { l.c.post(evPlayEnded{}) },
		OnError: func(err error) { l.c.post(evPlayErr{err: err}) },
	})
}

func (l *loop) handlePlayEnded() {
	if l.state != session.StateSpeaking {
		return
	}
	l.safetyGen++
	l.lastCommitted = ""
	l.pending = ""
	l.setState(session.StateIdle)
	l.journal(log.LogEvent{Event: log.EventPlaybackFinished})
}

func (l *loop) handlePlayErr(err error) {
	if l.state != session.StateSpeaking {
		return
	}
	l.safetyGen++

	// A failure before playback even started means the reply was never
	// heard; apologize in text so the transcript stays coherent.
	if !l.playStarted {
		if msg, aerr := l.c.store.Append(session.RoleAssistant, fallbackReply); aerr == nil {
			l.emit(Event{Type: EventMessage, Message: msg})
		}
	}

	l.pending = ""
	l.setState(session.StateIdle)
	l.emit(Event{Type: EventTurnFailed, Reason: err.Error()})
	l.journal(log.LogEvent{Event: log.EventTurnFailed, Error: err.Error()})
}

func (l *loop) handleSafety(gen int) {
	if gen != l.safetyGen || l.state != session.StateSpeaking {
		return
	}
	l.c.playback.Stop()
	l.pending = ""
	l.setState(session.StateIdle)
	l.emit(Event{Type: EventTurnFailed, Reason: "playback completion signal never arrived"})
	l.journal(log.LogEvent{Event: log.EventTurnFailed, Reason: "safety timeout"})
}

// ----------------------------------------------------------------------------
// Session boundary
// ----------------------------------------------------------------------------

func (l *loop) handleGreet() {
	snap := l.c.store.Snapshot()
	if !snap.Active() || len(snap.Messages) > 0 || l.state != session.StateIdle {
		return
	}

	greeting := fmt.Sprintf(
		"Hello! Thank you for calling %s. My name is %s, how can I help you today?",
		snap.Scenario.Service, snap.Persona.Name,
	)
	msg, err := l.c.store.Append(session.RoleAssistant, greeting)
	if err != nil {
		return
	}
	l.emit(Event{Type: EventMessage, Message: msg})
	l.journal(log.LogEvent{
		Event:      log.EventSessionStarted,
		SessionID:  snap.ID,
		PersonaID:  snap.Persona.ID,
		ScenarioID: snap.Scenario.ID,
	})

	l.speak(greeting)
}

func (l *loop) handleEnd(m cmdEnd) {
	l.settleGen++
	l.thinkGen++
	l.safetyGen++
	l.wantListen = false
	l.pending = ""
	l.lastCommitted = ""

	l.c.capture.Stop()
	l.c.playback.Stop()
	l.setInterim("")
	l.setState(session.StateIdle)

	already := l.c.store.Snapshot().Assessment != nil
	a := l.c.store.End()
	if a != nil && !already {
		l.emit(Event{Type: EventSessionEnded, Assessment: a})
		l.journal(log.LogEvent{
			Event:      log.EventSessionEnded,
			SessionID:  a.SessionID,
			Score:      a.OverallScore,
			DurationMs: int64(a.Duration) * 1000,
		})
	}
	m.reply <- a
}

// ----------------------------------------------------------------------------
// Plumbing
// ----------------------------------------------------------------------------

func (l *loop) captureEvents() voice.CaptureEvents {
	return voice.CaptureEvents{
		OnFragment: func(f voice.Fragment) { l.c.post(evFragment{frag: f}) },
		OnEnded:    func() { l.c.post(evCaptureEnded{}) },
		OnError:    func(err error) { l.c.post(evCaptureErr{err: err}) },
	}
}

func (l *loop) setState(s session.State) {
	if l.state == s {
		return
	}
	l.state = s
	l.c.store.SetState(s)

	l.c.mu.Lock()
	l.c.snap.State = s
	l.c.mu.Unlock()

	l.emit(Event{Type: EventState, State: s})
}

func (l *loop) setInterim(text string) {
	l.c.mu.Lock()
	changed := l.c.snap.Interim != text
	l.c.snap.Interim = text
	l.c.mu.Unlock()

	if changed {
		l.emit(Event{Type: EventInterim, Interim: text})
	}
}

func (c *Controller) setSupported(v bool) {
	c.mu.Lock()
	c.snap.Supported = v
	c.mu.Unlock()
}

// emit sends without blocking; the engine never stalls on a slow consumer.
func (l *loop) emit(e Event) {
	select {
	case l.c.events <- e:
	default:
	}
}

func (l *loop) journal(e log.LogEvent) {
	_ = l.c.journal.Append(e)
}

func hasTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!")
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
