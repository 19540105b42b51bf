package catalog

import (
	"math/rand"
	"testing"
)

func TestPersonaByID(t *testing.T) {
	p, err := PersonaByID("p3")
	if err != nil {
		t.Fatalf("PersonaByID failed: %v", err)
	}
	if p.Name != "Elena Rodriguez" {
		t.Errorf("Name = %q, want %q", p.Name, "Elena Rodriguez")
	}
	if p.Traits.Conscientiousness != 95 {
		t.Errorf("Conscientiousness = %d, want 95", p.Traits.Conscientiousness)
	}
}

func TestPersonaByIDUnknown(t *testing.T) {
	if _, err := PersonaByID("nope"); err == nil {
		t.Error("expected error for unknown persona ID")
	}
}

func TestScenarioByID(t *testing.T) {
	s, err := ScenarioByID("s1")
	if err != nil {
		t.Fatalf("ScenarioByID failed: %v", err)
	}
	if s.Service != "Billing" {
		t.Errorf("Service = %q, want %q", s.Service, "Billing")
	}
	if s.CallID != "428391" {
		t.Errorf("CallID = %q, want %q", s.CallID, "428391")
	}
}

func TestCatalogSizes(t *testing.T) {
	if got := len(Personas()); got != 4 {
		t.Errorf("len(Personas()) = %d, want 4", got)
	}
	if got := len(Scenarios()); got != 6 {
		t.Errorf("len(Scenarios()) = %d, want 6", got)
	}
}

func TestTraitBounds(t *testing.T) {
	for _, p := range Personas() {
		for name, v := range map[string]int{
			"openness":          p.Traits.Openness,
			"conscientiousness": p.Traits.Conscientiousness,
			"extraversion":      p.Traits.Extraversion,
			"agreeableness":     p.Traits.Agreeableness,
			"neuroticism":       p.Traits.Neuroticism,
		} {
			if v < 0 || v > 100 {
				t.Errorf("persona %s trait %s = %d, want within [0,100]", p.ID, name, v)
			}
		}
	}
}

func TestRandomSelectionDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		if RandomPersona(a).ID != RandomPersona(b).ID {
			t.Fatal("same seed should pick the same persona sequence")
		}
		if RandomScenario(a).ID != RandomScenario(b).ID {
			t.Fatal("same seed should pick the same scenario sequence")
		}
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	ps := Personas()
	ps[0].Name = "mutated"
	if Personas()[0].Name == "mutated" {
		t.Error("Personas() must return a copy, not the backing slice")
	}
}
