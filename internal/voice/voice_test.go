package voice

import (
	"sync"
	"testing"
	"time"
)

func TestManualCaptureDropsWhenStopped(t *testing.T) {
	c := NewManualCapture()
	if c.Push(Fragment{Text: "hello"}) {
		t.Error("push before Start should be dropped")
	}

	var got []string
	var mu sync.Mutex
	c.Start(CaptureEvents{OnFragment: func(f Fragment) {
		mu.Lock()
		got = append(got, f.Text)
		mu.Unlock()
	}})

	if !c.Push(Fragment{Text: "hello"}) {
		t.Error("push after Start should be delivered")
	}
	c.Stop()
	if c.Push(Fragment{Text: "dropped"}) {
		t.Error("push after Stop should be dropped")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("delivered fragments = %v, want [hello]", got)
	}
}

func TestUnsupportedCapture(t *testing.T) {
	var c UnsupportedCapture
	if err := c.Start(CaptureEvents{}); err != ErrUnsupported {
		t.Errorf("Start err = %v, want ErrUnsupported", err)
	}
}

func TestScriptedCaptureReplaysThenEnds(t *testing.T) {
	c := NewScriptedCapture([]ScriptStep{
		{Text: "I need", After: time.Millisecond},
		{Text: "I need help please", After: time.Millisecond},
	})

	fragments := make(chan string, 4)
	ended := make(chan struct{})
	c.Start(CaptureEvents{
		OnFragment: func(f Fragment) { fragments <- f.Text },
		OnEnded:    func() { close(ended) },
	})

	want := []string{"I need", "I need help please"}
	for _, w := range want {
		select {
		case got := <-fragments:
			if got != w {
				t.Errorf("fragment = %q, want %q", got, w)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fragment")
		}
	}

	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for capture end")
	}
}

func TestScriptedCaptureStopCancelsReplay(t *testing.T) {
	c := NewScriptedCapture([]ScriptStep{
		{Text: "never delivered", After: 50 * time.Millisecond},
	})

	delivered := make(chan struct{}, 1)
	c.Start(CaptureEvents{
		OnFragment: func(Fragment) { delivered <- struct{}{} },
	})
	c.Stop()

	select {
	case <-delivered:
		t.Error("fragment delivered after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScriptedCaptureResumesAcrossStarts(t *testing.T) {
	c := NewScriptedCapture([]ScriptStep{
		{Text: "first utterance here.", After: time.Millisecond},
		{Text: "second utterance here.", After: time.Millisecond},
	})

	fragments := make(chan string, 4)
	events := CaptureEvents{OnFragment: func(f Fragment) { fragments <- f.Text }}

	c.Start(events)
	select {
	case got := <-fragments:
		if got != "first utterance here." {
			t.Fatalf("fragment = %q, want first step", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first step")
	}
	c.Stop()

	c.Start(events)
	select {
	case got := <-fragments:
		if got != "second utterance here." {
			t.Errorf("fragment = %q, want resume at second step", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for resumed step")
	}
	c.Stop()

	if !c.Done() {
		t.Error("Done = false after delivering every step")
	}
	if err := c.Start(events); err != ErrNoSpeech {
		t.Errorf("Start on exhausted script err = %v, want ErrNoSpeech", err)
	}
}

func TestPacedPlaybackDuration(t *testing.T) {
	p := NewPacedPlayback(120) // 0.5s per word
	if d := p.Duration("one two three four"); d != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", d)
	}
	if d := p.Duration("hi"); d != minUtterance {
		t.Errorf("short utterance Duration = %v, want %v", d, minUtterance)
	}
}

func TestPacedPlaybackLifecycle(t *testing.T) {
	p := NewPacedPlayback(60000) // effectively instant per word

	started := make(chan struct{})
	ended := make(chan struct{})
	p.Speak("hello there", PlaybackEvents{
		OnStart: func() { close(started) },
		OnEnd:   func() { close(ended) },
	})

	select {
	case <-started:
	default:
		t.Fatal("OnStart should fire synchronously from Speak")
	}
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnEnd")
	}
}

func TestPacedPlaybackStopSuppressesEnd(t *testing.T) {
	p := NewPacedPlayback(60) // 1s per word

	ended := make(chan struct{}, 1)
	p.Speak("one two three", PlaybackEvents{
		OnEnd: func() { ended <- struct{}{} },
	})
	p.Stop()

	select {
	case <-ended:
		t.Error("OnEnd fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestInstantPlayback(t *testing.T) {
	var p InstantPlayback
	var order []string
	p.Speak("hi", PlaybackEvents{
		OnStart: func() { order = append(order, "start") },
		OnEnd:   func() { order = append(order, "end") },
	})
	if len(order) != 2 || order[0] != "start" || order[1] != "end" {
		t.Errorf("callback order = %v, want [start end]", order)
	}
}
