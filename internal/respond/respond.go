// Package respond implements the canned response generator for the AI
// persona. Selection is rule-based: the just-committed user text and the
// transcript length pick a response category, and a template is drawn
// uniformly from that category's pool.
package respond

import (
	"math/rand"
	"strings"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
)

// Category identifies a pool of response templates.
type Category string

// Response categories, in no particular order.
const (
	Greeting       Category = "greeting"
	Acknowledgment Category = "acknowledgment"
	Information    Category = "information"
	Empathy        Category = "empathy"
	Solution       Category = "solution"
	Clarification  Category = "clarification"
	Closing        Category = "closing"
	Farewell       Category = "farewell"
)

// templates maps each category to its pool of reply templates. Placeholders
// {name}, {service} and {subject} are substituted at selection time.
var templates = map[Category][]string{
	Greeting: {
		"Hello! Thank you for calling {service}. My name is {name}, how can I help you today?",
		"Good day! This is {name} from {service}. I'm here to assist you with your inquiry.",
		"Hi there! {name} speaking from {service}. What brings you in today?",
	},
	Acknowledgment: {
		"I understand. Let me help you with that.",
		"Thank you for explaining. I can definitely assist with this.",
		"I hear you, and I'm here to help resolve this for you.",
		"Got it. Let me look into this for you right away.",
	},
	Information: {
		"Based on what you've shared, I can see that {subject}.",
		"Looking at your account, I notice this is regarding {subject}.",
		"I have your case file here. This is about {subject}, correct?",
	},
	Empathy: {
		"I completely understand how frustrating this must be.",
		"I can imagine how inconvenient this situation is for you.",
		"I appreciate your patience, and I want to make this right.",
		"That sounds really challenging. Let's work together to solve this.",
	},
	Solution: {
		"Here's what I can do for you: I'll process this request immediately.",
		"Let me take care of this right now. I'm initiating the necessary steps.",
		"I have a solution for you. We can resolve this by taking the following action.",
	},
	Clarification: {
		"Just to make sure I understand correctly, could you tell me more about that?",
		"Can you help me understand a bit more about when this started?",
		"To better assist you, could you provide some additional details?",
	},
	Closing: {
		"Is there anything else I can help you with today?",
		"Have I fully addressed your concerns?",
		"Was there anything else you needed assistance with?",
	},
	Farewell: {
		"Thank you for contacting us today. Have a wonderful day!",
		"I'm glad I could help. Don't hesitate to reach out if you need anything else!",
		"Take care, and thank you for your patience!",
	},
}

// keywords maps trigger groups to their keyword lists. Matching is
// case-insensitive substring containment.
var keywords = map[string][]string{
	"greeting":    {"hello", "hi", "hey", "good morning", "good afternoon"},
	"frustration": {"frustrated", "angry", "upset", "annoyed", "disappointed"},
	"question":    {"what", "why", "how", "when", "where", "can you", "could you"},
	"problem":     {"not working", "broken", "error", "issue", "problem", "wrong"},
	"thanks":      {"thank", "thanks", "appreciate", "grateful"},
	"goodbye":     {"bye", "goodbye", "that's all", "nothing else"},
}

// MatchesKeyword reports whether text contains any keyword from the named
// trigger group. Unknown group names match nothing.
func MatchesKeyword(group, text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords[group] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Generator selects canned replies. The random source is injected so
// selection is reproducible under test.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator backed by the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Classify picks the response category for userText given the number of
// messages already in the transcript. Rules are evaluated top to bottom and
// the first match wins.
func (g *Generator) Classify(transcriptLen int, userText string) Category {
	switch {
	case transcriptLen <= 1:
		return Greeting
	case MatchesKeyword("greeting", userText) && transcriptLen <= 2:
		return Greeting
	case MatchesKeyword("frustration", userText):
		return Empathy
	case MatchesKeyword("question", userText):
		return Information
	case MatchesKeyword("problem", userText):
		return Solution
	case MatchesKeyword("thanks", userText):
		return Closing
	case MatchesKeyword("goodbye", userText):
		return Farewell
	case transcriptLen > 4 && g.rng.Float64() > 0.6:
		return Closing
	default:
		return Acknowledgment
	}
}

// Reply classifies userText and renders a reply from the chosen category's
// pool, substituting persona and scenario placeholders. Missing values
// render as empty strings.
func (g *Generator) Reply(transcriptLen int, persona catalog.Persona, scenario catalog.Scenario, userText string) (Category, string, error) {
	cat := g.Classify(transcriptLen, userText)

	pool := templates[cat]
	text := pool[g.rng.Intn(len(pool))]

	text = strings.NewReplacer(
		"{name}", persona.Name,
		"{service}", scenario.Service,
		"{subject}", scenario.Subject,
	).Replace(text)

	return cat, text, nil
}
