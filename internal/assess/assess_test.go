package assess

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestScoreBoundsAndOverallMean(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := NewAssessor(rng)

	transcripts := [][]string{
		nil,
		{"hello"},
		{"I understand, sorry about that", "could you confirm the charge?", "thanks"},
		{"this damn thing is broken"},
		{"one", "two", "three", "four", "five"},
	}

	for trial := 0; trial < 50; trial++ {
		msgs := transcripts[trial%len(transcripts)]
		got := a.Assess("s", msgs, time.Duration(trial)*time.Second)

		scores := []int{
			got.Categories.Empathy,
			got.Categories.Clarity,
			got.Categories.Professionalism,
			got.Categories.ProblemSolving,
			got.OverallScore,
		}
		for _, s := range scores {
			if s < 0 || s > 100 {
				t.Fatalf("trial %d: score %d out of [0,100]", trial, s)
			}
		}

		sum := got.Categories.Empathy + got.Categories.Clarity +
			got.Categories.Professionalism + got.Categories.ProblemSolving
		want := int(math.Round(float64(sum) / 4))
		if got.OverallScore != want {
			t.Fatalf("trial %d: overall = %d, want round(mean) = %d", trial, got.OverallScore, want)
		}
	}
}

func TestEmpathySignalRaisesBand(t *testing.T) {
	a := NewAssessor(rand.New(rand.NewSource(2)))
	got := a.Assess("s", []string{"I completely understand and apologize"}, time.Minute)
	if got.Categories.Empathy < 80 {
		t.Errorf("empathy = %d, want >= 80 when empathy language is present", got.Categories.Empathy)
	}
}

func TestProfanityDropsProfessionalismBand(t *testing.T) {
	a := NewAssessor(rand.New(rand.NewSource(2)))
	got := a.Assess("s", []string{"this stupid form again"}, time.Minute)
	if got.Categories.Professionalism > 85 {
		t.Errorf("professionalism = %d, want <= 85 when profanity is present", got.Categories.Professionalism)
	}
}

func TestEmptyTranscriptIsProfessional(t *testing.T) {
	// No messages means nothing unprofessional was said.
	a := NewAssessor(rand.New(rand.NewSource(2)))
	got := a.Assess("s", nil, 0)
	if got.Categories.Professionalism < 80 {
		t.Errorf("professionalism = %d, want >= 80 for empty transcript", got.Categories.Professionalism)
	}
}

func TestStrengthsAndImprovementsThresholds(t *testing.T) {
	a := NewAssessor(rand.New(rand.NewSource(9)))
	for trial := 0; trial < 50; trial++ {
		got := a.Assess("s", []string{"hi"}, time.Minute)

		for _, pair := range []struct {
			score     int
			threshold int
			label     string
		}{
			{got.Categories.Empathy, 85, "Excellent empathy and emotional intelligence"},
			{got.Categories.Clarity, 80, "Clear and effective communication"},
			{got.Categories.Professionalism, 85, "Professional demeanor throughout"},
			{got.Categories.ProblemSolving, 80, "Strong problem-solving approach"},
		} {
			has := containsString(got.Strengths, pair.label)
			if (pair.score > pair.threshold) != has {
				t.Fatalf("score %d vs threshold %d: strength %q present=%v", pair.score, pair.threshold, pair.label, has)
			}
		}

		for _, pair := range []struct {
			score int
			label string
		}{
			{got.Categories.Empathy, "Show more empathy towards customer concerns"},
			{got.Categories.Clarity, "Ask more clarifying questions"},
			{got.Categories.Professionalism, "Maintain professional language throughout"},
			{got.Categories.ProblemSolving, "Focus on actionable solutions"},
		} {
			has := containsString(got.Improvements, pair.label)
			if (pair.score < 70) != has {
				t.Fatalf("score %d: improvement %q present=%v", pair.score, pair.label, has)
			}
		}
	}
}

func TestKeyMomentsAreFixed(t *testing.T) {
	a := NewAssessor(rand.New(rand.NewSource(1)))
	got := a.Assess("s", []string{"whatever was said"}, time.Minute)
	want := []string{
		"Initial greeting and rapport building",
		"Problem identification and clarification",
		"Solution presentation and follow-up",
	}
	if len(got.KeyMoments) != len(want) {
		t.Fatalf("len(KeyMoments) = %d, want %d", len(got.KeyMoments), len(want))
	}
	for i := range want {
		if got.KeyMoments[i] != want[i] {
			t.Errorf("KeyMoments[%d] = %q, want %q", i, got.KeyMoments[i], want[i])
		}
	}
}

func TestDurationSeconds(t *testing.T) {
	a := NewAssessor(rand.New(rand.NewSource(1)))
	got := a.Assess("s", nil, 90*time.Second)
	if got.Duration != 90 {
		t.Errorf("Duration = %d, want 90", got.Duration)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
