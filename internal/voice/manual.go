package voice

import "sync"

// ManualCapture is the capture engine behind the TUI: there is no microphone
// in a terminal, so the conversation screen pushes typed text through it as
// recognition fragments. Fragments pushed while the adapter is stopped are
// discarded, mirroring a real engine that only reports between Start and
// Stop.
type ManualCapture struct {
	mu     sync.Mutex
	open   bool
	events CaptureEvents
}

// NewManualCapture creates a stopped ManualCapture.
func NewManualCapture() *ManualCapture {
	return &ManualCapture{}
}

// Start opens the adapter for pushed fragments.
func (c *ManualCapture) Start(events CaptureEvents) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.events = events
	return nil
}

// Stop closes the adapter. Subsequent pushes are dropped.
func (c *ManualCapture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.events = CaptureEvents{}
}

// Push forwards a fragment to the controller if the adapter is open.
// Returns whether the fragment was delivered.
func (c *ManualCapture) Push(f Fragment) bool {
	c.mu.Lock()
	events, open := c.events, c.open
	c.mu.Unlock()

	if !open || events.OnFragment == nil {
		return false
	}
	events.OnFragment(f)
	return true
}

// Listening reports whether the adapter is currently open.
func (c *ManualCapture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// UnsupportedCapture is the degraded adapter used when speech input is
// unavailable. Start always fails with ErrUnsupported.
type UnsupportedCapture struct{}

// Start always returns ErrUnsupported.
func (UnsupportedCapture) Start(CaptureEvents) error { return ErrUnsupported }

// Stop is a no-op.
func (UnsupportedCapture) Stop() {}
