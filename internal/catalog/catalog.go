// Package catalog holds the static persona and scenario catalogs that a
// training session draws from. Both lists are immutable; sessions reference
// entries by value.
package catalog

import (
	"fmt"
	"math/rand"
)

// Traits is the five-dimensional personality vector carried by a persona.
// Each value is in [0,100].
type Traits struct {
	Openness          int
	Conscientiousness int
	Extraversion      int
	Agreeableness     int
	Neuroticism       int
}

// Persona is the scripted AI counterpart the trainee talks to.
type Persona struct {
	ID     string
	Name   string
	Role   string
	Tone   string
	Avatar string
	Traits Traits
}

// Scenario is the customer-service case the session is framed around.
type Scenario struct {
	ID      string
	CallID  string // 6-digit case number
	Service string
	Subject string
	Notes   string
}

var personas = []Persona{
	{
		ID:     "p1",
		Name:   "Sarah Chen",
		Role:   "Customer Support Specialist",
		Tone:   "Friendly and patient",
		Avatar: "👩‍💼",
		Traits: Traits{Openness: 75, Conscientiousness: 85, Extraversion: 70, Agreeableness: 90, Neuroticism: 25},
	},
	{
		ID:     "p2",
		Name:   "Marcus Johnson",
		Role:   "Technical Support Engineer",
		Tone:   "Professional and detail-oriented",
		Avatar: "👨‍💻",
		Traits: Traits{Openness: 80, Conscientiousness: 90, Extraversion: 50, Agreeableness: 70, Neuroticism: 30},
	},
	{
		ID:     "p3",
		Name:   "Elena Rodriguez",
		Role:   "Billing Specialist",
		Tone:   "Calm and reassuring",
		Avatar: "👩‍💼",
		Traits: Traits{Openness: 65, Conscientiousness: 95, Extraversion: 60, Agreeableness: 85, Neuroticism: 20},
	},
	{
		ID:     "p4",
		Name:   "David Kim",
		Role:   "Account Manager",
		Tone:   "Enthusiastic and solution-focused",
		Avatar: "👨‍💼",
		Traits: Traits{Openness: 85, Conscientiousness: 80, Extraversion: 90, Agreeableness: 80, Neuroticism: 35},
	},
}

var scenarios = []Scenario{
	{
		ID:      "s1",
		CallID:  "428391",
		Service: "Billing",
		Subject: "Refund request",
		Notes:   "Customer charged twice for the same service. Requesting immediate refund.",
	},
	{
		ID:      "s2",
		CallID:  "756234",
		Service: "Technical Support",
		Subject: "Login issues",
		Notes:   "User unable to access account after password reset. Multiple failed attempts.",
	},
	{
		ID:      "s3",
		CallID:  "912847",
		Service: "Account Management",
		Subject: "Plan upgrade inquiry",
		Notes:   "Customer interested in premium features. Needs comparison and pricing details.",
	},
	{
		ID:      "s4",
		CallID:  "345678",
		Service: "Customer Support",
		Subject: "Product not working",
		Notes:   "Customer reports feature malfunction. Frustrated after multiple attempts to resolve.",
	},
	{
		ID:      "s5",
		CallID:  "198273",
		Service: "Billing",
		Subject: "Payment method update",
		Notes:   "Customer needs to update expired credit card. Concerned about service interruption.",
	},
	{
		ID:      "s6",
		CallID:  "564829",
		Service: "Technical Support",
		Subject: "Data synchronization problem",
		Notes:   "Customer's data not syncing across devices. Reports data loss concerns.",
	},
}

// Personas returns a copy of the persona catalog.
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// Scenarios returns a copy of the scenario catalog.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// PersonaByID looks up a persona by its catalog ID.
func PersonaByID(id string) (Persona, error) {
	for _, p := range personas {
		if p.ID == id {
			return p, nil
		}
	}
	return Persona{}, fmt.Errorf("unknown persona %q", id)
}

// ScenarioByID looks up a scenario by its catalog ID.
func ScenarioByID(id string) (Scenario, error) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", id)
}

// RandomPersona picks a persona uniformly at random.
func RandomPersona(rng *rand.Rand) Persona {
	return personas[rng.Intn(len(personas))]
}

// RandomScenario picks a scenario uniformly at random.
func RandomScenario(rng *rand.Rand) Scenario {
	return scenarios[rng.Intn(len(scenarios))]
}
