package respond

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
)

func newGen(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		transcriptLen int
		text          string
		want          Category
	}{
		{"empty transcript is always a greeting", 0, "my bill is wrong", Greeting},
		{"single prior message is still a greeting", 1, "anything at all", Greeting},
		{"greeting keyword early in the call", 2, "hello there friend", Greeting},
		{"greeting keyword late in the call falls through", 3, "hello there friend", Acknowledgment},
		{"frustration beats question", 3, "why am I so frustrated with this", Empathy},
		{"question keyword", 3, "what is going on with my account", Information},
		{"problem keyword", 3, "the login page is broken again", Solution},
		{"thanks keyword", 3, "thanks for sorting this out quickly", Closing},
		{"goodbye keyword", 3, "ok goodbye then", Farewell},
		{"no keyword defaults to acknowledgment", 3, "mm let me think about it", Acknowledgment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newGen(1).Classify(tt.transcriptLen, tt.text)
			if got != tt.want {
				t.Errorf("Classify(%d, %q) = %s, want %s", tt.transcriptLen, tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyLateCallRandomClosing(t *testing.T) {
	// With transcript length >4 and no keyword match, the draw decides
	// between closing and acknowledgment. Both must be reachable.
	seenClosing, seenAck := false, false
	g := newGen(42)
	for i := 0; i < 200; i++ {
		switch g.Classify(5, "mm let me check that") {
		case Closing:
			seenClosing = true
		case Acknowledgment:
			seenAck = true
		}
	}
	if !seenClosing || !seenAck {
		t.Errorf("late-call classification should reach both closing and acknowledgment (closing=%v, ack=%v)", seenClosing, seenAck)
	}
}

func TestReplyDeterministicWithSeed(t *testing.T) {
	persona, _ := catalog.PersonaByID("p1")
	scenario, _ := catalog.ScenarioByID("s1") // Billing

	catA, textA, err := newGen(99).Reply(0, persona, scenario, "hello")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	catB, textB, _ := newGen(99).Reply(0, persona, scenario, "hello")

	if catA != Greeting {
		t.Errorf("category = %s, want greeting", catA)
	}
	if catA != catB || textA != textB {
		t.Errorf("same seed should give identical replies: (%s, %q) vs (%s, %q)", catA, textA, catB, textB)
	}
	if !strings.Contains(textA, "Billing") {
		t.Errorf("greeting %q should contain the scenario service %q", textA, "Billing")
	}
}

func TestReplySubstitutesAllPlaceholders(t *testing.T) {
	persona, _ := catalog.PersonaByID("p2")
	scenario, _ := catalog.ScenarioByID("s2")

	g := newGen(3)
	for i := 0; i < 50; i++ {
		_, text, err := g.Reply(i%6, persona, scenario, "what happened to my login?")
		if err != nil {
			t.Fatalf("Reply failed: %v", err)
		}
		if strings.Contains(text, "{") || strings.Contains(text, "}") {
			t.Fatalf("unsubstituted placeholder in %q", text)
		}
	}
}

func TestReplyMissingValuesSubstituteEmpty(t *testing.T) {
	// Zero-valued persona/scenario must not panic and must render the
	// placeholders as empty strings.
	_, text, err := newGen(5).Reply(0, catalog.Persona{}, catalog.Scenario{}, "hello")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if strings.Contains(text, "{name}") || strings.Contains(text, "{service}") {
		t.Errorf("placeholders not cleared in %q", text)
	}
}

func TestMatchesKeywordCaseInsensitive(t *testing.T) {
	if !MatchesKeyword("frustration", "I am SO Frustrated right now") {
		t.Error("keyword match should be case-insensitive")
	}
	if MatchesKeyword("frustration", "everything is fine") {
		t.Error("unexpected keyword match")
	}
	if MatchesKeyword("no-such-group", "hello") {
		t.Error("unknown group should match nothing")
	}
}

func TestClarificationPoolExists(t *testing.T) {
	// The clarification pool is never selected by the rule table but is part
	// of the template catalog (coaching hints reference its phrasing).
	if len(templates[Clarification]) == 0 {
		t.Error("clarification pool should not be empty")
	}
}
