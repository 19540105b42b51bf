// wire.go assembles the engine stack shared by the TUI and the simulate
// command: session store, turn controller, and voice adapters.
package cli

import (
	"math/rand"
	"time"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/coach"
	"github.com/dialcoach-dev/dialcoach/internal/config"
	"github.com/dialcoach-dev/dialcoach/internal/engine"
	"github.com/dialcoach-dev/dialcoach/internal/log"
	"github.com/dialcoach-dev/dialcoach/internal/respond"
	"github.com/dialcoach-dev/dialcoach/internal/session"
	"github.com/dialcoach-dev/dialcoach/internal/voice"
)

// runtime bundles the live pieces a front end drives.
type runtime struct {
	store      *session.Store
	controller *engine.Controller
	mic        *voice.ManualCapture
}

// engineConfig converts the YAML timing section into controller timings.
func engineConfig(cfg *config.Config) engine.Config {
	ec := engine.DefaultConfig()
	if cfg.Timing.SettleMs > 0 {
		ec.SettleDelay = time.Duration(cfg.Timing.SettleMs) * time.Millisecond
	}
	if cfg.Timing.ThinkingMs > 0 {
		ec.ThinkingDelay = time.Duration(cfg.Timing.ThinkingMs) * time.Millisecond
	}
	if cfg.Timing.SafetyTimeoutS > 0 {
		ec.SafetyTimeout = time.Duration(cfg.Timing.SafetyTimeoutS) * time.Second
	}
	return ec
}

// newRNG seeds from config, falling back to the clock when seed is zero.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newStore builds a session store with the configured coaching preference.
func newStore(cfg *config.Config, rng *rand.Rand) *session.Store {
	store := session.NewStore(coach.NewAdvisor(rng), assess.NewAssessor(rng), rng)
	store.SetCoaching(cfg.Coaching.Enabled)
	return store
}

// buildRuntime wires the interactive stack: typed text stands in for the
// microphone and playback is paced at the configured speaking rate.
func buildRuntime(workDir string, cfg *config.Config) (*runtime, error) {
	rng := newRNG(cfg.Seed)
	store := newStore(cfg, rng)

	// Best-effort journal; the engine runs fine without one.
	journal, _ := log.NewLogger(workDir)

	mic := voice.NewManualCapture()
	play := voice.NewPacedPlayback(cfg.Voice.WordsPerMinute)

	controller := engine.New(engineConfig(cfg), store, respond.NewGenerator(rng), mic, play, journal)
	controller.Start()

	return &runtime{store: store, controller: controller, mic: mic}, nil
}
