// Package assess scores a completed training session from its transcript.
// Scoring is heuristic: boolean signals over the trainee's messages pick a
// band per category, and the exact score is drawn uniformly within the band.
package assess

import (
	"math"
	"math/rand"
	"regexp"
	"time"
)

// CategoryScores holds the four graded dimensions, each in [0,100].
type CategoryScores struct {
	Empathy         int
	Clarity         int
	Professionalism int
	ProblemSolving  int
}

// Assessment is the final report for a session. It is produced exactly once,
// at session end, and never recomputed.
type Assessment struct {
	SessionID    string
	OverallScore int
	Categories   CategoryScores
	Strengths    []string
	Improvements []string
	KeyMoments   []string
	Duration     int // seconds
}

var (
	empathyPattern   = regexp.MustCompile(`(?i)understand|sorry|apologize|frustrat`)
	clarifyPattern   = regexp.MustCompile(`(?i)\?|could you|can you|would you`)
	profanityPattern = regexp.MustCompile(`(?i)damn|hell|stupid`)
)

// Assessor grades sessions. The random source is injected so band draws are
// reproducible under test.
type Assessor struct {
	rng *rand.Rand
}

// NewAssessor creates an Assessor backed by the given random source.
func NewAssessor(rng *rand.Rand) *Assessor {
	return &Assessor{rng: rng}
}

// band draws a score from [80,95] when the signal holds, [60,85] otherwise.
func (a *Assessor) band(signal bool) int {
	if signal {
		return int(math.Round(80 + a.rng.Float64()*15))
	}
	return int(math.Round(60 + a.rng.Float64()*25))
}

// Assess grades the trainee's side of the transcript. userMessages is the
// transcript filtered to user messages, in order.
func (a *Assessor) Assess(sessionID string, userMessages []string, duration time.Duration) Assessment {
	hasEmpathy := false
	hasClarification := false
	isProfessional := true
	for _, m := range userMessages {
		if empathyPattern.MatchString(m) {
			hasEmpathy = true
		}
		if clarifyPattern.MatchString(m) {
			hasClarification = true
		}
		if profanityPattern.MatchString(m) {
			isProfessional = false
		}
	}
	solvesProblems := len(userMessages) > 3

	cats := CategoryScores{
		Empathy:         a.band(hasEmpathy),
		Clarity:         a.band(hasClarification),
		Professionalism: a.band(isProfessional),
		ProblemSolving:  a.band(solvesProblems),
	}

	sum := cats.Empathy + cats.Clarity + cats.Professionalism + cats.ProblemSolving
	overall := int(math.Round(float64(sum) / 4))

	var strengths []string
	if cats.Empathy > 85 {
		strengths = append(strengths, "Excellent empathy and emotional intelligence")
	}
	if cats.Clarity > 80 {
		strengths = append(strengths, "Clear and effective communication")
	}
	if cats.Professionalism > 85 {
		strengths = append(strengths, "Professional demeanor throughout")
	}
	if cats.ProblemSolving > 80 {
		strengths = append(strengths, "Strong problem-solving approach")
	}

	var improvements []string
	if cats.Empathy < 70 {
		improvements = append(improvements, "Show more empathy towards customer concerns")
	}
	if cats.Clarity < 70 {
		improvements = append(improvements, "Ask more clarifying questions")
	}
	if cats.Professionalism < 70 {
		improvements = append(improvements, "Maintain professional language throughout")
	}
	if cats.ProblemSolving < 70 {
		improvements = append(improvements, "Focus on actionable solutions")
	}

	return Assessment{
		SessionID:    sessionID,
		OverallScore: overall,
		Categories:   cats,
		Strengths:    strengths,
		Improvements: improvements,
		// Milestones are fixed boilerplate, not derived from transcript
		// content. Known limitation of the scoring model.
		KeyMoments: []string{
			"Initial greeting and rapport building",
			"Problem identification and clarification",
			"Solution presentation and follow-up",
		},
		Duration: int(duration.Seconds()),
	}
}
