// Package coach produces the live coaching hints shown to the trainee after
// each of their turns. Hints are advisory only; they never feed back into
// response generation.
package coach

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/respond"
)

// Kind categorizes a coaching hint.
type Kind string

// Hint kinds.
const (
	KindQuestion      Kind = "question"
	KindEmpathy       Kind = "empathy"
	KindClarification Kind = "clarification"
	KindSummary       Kind = "summary"
)

// Priority orders hints for display.
type Priority int

// Priorities, highest first.
const (
	High Priority = iota
	Medium
	Low
)

// String returns the lowercase priority label.
func (p Priority) String() string {
	switch p {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return "unknown"
	}
}

// Hint is a single coaching suggestion. Hints are ephemeral: each user turn
// fully replaces the previous set.
type Hint struct {
	ID       string
	Kind     Kind
	Text     string
	Priority Priority
}

// maxHints caps how many hints survive a turn.
const maxHints = 3

// Advisor generates coaching hints. The random source is injected so the
// low-priority summary rule is reproducible under test.
type Advisor struct {
	rng *rand.Rand
}

// NewAdvisor creates an Advisor backed by the given random source.
func NewAdvisor(rng *rand.Rand) *Advisor {
	return &Advisor{rng: rng}
}

// Hints evaluates the coaching rules against the trainee's latest message.
// transcriptLen counts all messages including the one just appended. Rules
// are independent; results are ordered high priority first and truncated to
// three.
func (a *Advisor) Hints(transcriptLen int, scenario catalog.Scenario, latestUserText string) []Hint {
	var hints []Hint

	if transcriptLen <= 2 {
		hints = append(hints, Hint{
			ID:       uuid.New().String(),
			Kind:     KindQuestion,
			Text:     "Start by acknowledging the customer's concern",
			Priority: High,
		})
	}

	if respond.MatchesKeyword("frustration", latestUserText) {
		hints = append(hints, Hint{
			ID:       uuid.New().String(),
			Kind:     KindEmpathy,
			Text:     "Express empathy: 'I understand how frustrating this must be'",
			Priority: High,
		})
	}

	if !strings.Contains(latestUserText, "?") && transcriptLen > 2 {
		hints = append(hints, Hint{
			ID:       uuid.New().String(),
			Kind:     KindClarification,
			Text:     "Ask clarifying questions to better understand the issue",
			Priority: Medium,
		})
	}

	if transcriptLen > 3 && a.rng.Float64() > 0.5 {
		hints = append(hints, Hint{
			ID:       uuid.New().String(),
			Kind:     KindSummary,
			Text:     fmt.Sprintf("Reference case details: %s", scenario.Subject),
			Priority: Low,
		})
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return hints[i].Priority < hints[j].Priority
	})

	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints
}
