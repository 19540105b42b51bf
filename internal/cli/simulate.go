// simulate.go implements "dialcoach simulate": a full headless session
// driven by a scripted capture engine, printing the transcript, the final
// coaching hints, and the assessment.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dialcoach-dev/dialcoach/internal/assess"
	"github.com/dialcoach-dev/dialcoach/internal/catalog"
	"github.com/dialcoach-dev/dialcoach/internal/config"
	"github.com/dialcoach-dev/dialcoach/internal/engine"
	"github.com/dialcoach-dev/dialcoach/internal/log"
	"github.com/dialcoach-dev/dialcoach/internal/respond"
	"github.com/dialcoach-dev/dialcoach/internal/session"
	"github.com/dialcoach-dev/dialcoach/internal/voice"
)

var (
	simulatePersona  string
	simulateScenario string
	simulateScript   string
	simulateSeed     int64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted session end to end without a terminal UI",
	Long: `Play a scripted set of trainee utterances through the full turn
engine and print the resulting transcript, coaching hints, and assessment.
Useful for trying personas and scenarios, and for exercising the engine in CI.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulatePersona, "persona", "", "Persona ID (random when empty)")
	simulateCmd.Flags().StringVar(&simulateScenario, "scenario", "", "Scenario ID (random when empty)")
	simulateCmd.Flags().StringVar(&simulateScript, "script", "", "YAML file of scripted utterances")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "Random seed (overrides config)")
}

// defaultScript is a short billing call; every utterance ends with terminal
// punctuation so it commits without waiting out the settle window.
var defaultScript = []voice.ScriptStep{
	{Text: "Hi, I think I was charged twice for my subscription.", After: 10 * time.Millisecond, Final: true},
	{Text: "I understand this is frustrating, could you check the last two charges?", After: 10 * time.Millisecond, Final: true},
	{Text: "Thank you so much for sorting that out today.", After: 10 * time.Millisecond, Final: true},
}

func runSimulate(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.ReadConfig(workDir)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if simulateSeed != 0 {
		cfg.Seed = simulateSeed
	}

	steps := defaultScript
	if simulateScript != "" {
		steps, err = loadScript(simulateScript)
		if err != nil {
			return err
		}
	}

	persona, scenario, err := pickCast(simulatePersona, simulateScenario)
	if err != nil {
		return err
	}

	rng := newRNG(cfg.Seed)
	store := newStore(cfg, rng)
	journal, _ := log.NewLogger(workDir)

	script := voice.NewScriptedCapture(steps)
	controller := engine.New(engineConfig(cfg), store, respond.NewGenerator(rng), script, voice.InstantPlayback{}, journal)
	controller.Start()
	defer controller.Close()

	store.Start(persona, scenario)
	controller.Greet()
	waitState(controller, session.StateIdle, time.Minute)

	for !script.Done() {
		controller.StartCapture()
		// The listening window can be shorter than a poll interval when
		// the script commits immediately, so wait for any non-idle state.
		if !waitLeaveIdle(controller, 5*time.Second) {
			break
		}
		if !waitState(controller, session.StateIdle, time.Minute) {
			break
		}
	}

	assessment := controller.EndSession()
	printReport(store.Snapshot(), assessment)
	return nil
}

// loadScript reads a YAML list of utterance steps.
func loadScript(path string) ([]voice.ScriptStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	var steps []voice.ScriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("script %s contains no steps", path)
	}
	return steps, nil
}

// pickCast resolves the persona and scenario flags; empty IDs mean random.
func pickCast(personaID, scenarioID string) (*catalog.Persona, *catalog.Scenario, error) {
	var persona *catalog.Persona
	var scenario *catalog.Scenario
	if personaID != "" {
		p, err := catalog.PersonaByID(personaID)
		if err != nil {
			return nil, nil, err
		}
		persona = &p
	}
	if scenarioID != "" {
		s, err := catalog.ScenarioByID(scenarioID)
		if err != nil {
			return nil, nil, err
		}
		scenario = &s
	}
	return persona, scenario, nil
}

// waitLeaveIdle polls until the controller leaves the idle state.
func waitLeaveIdle(c *engine.Controller, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.Snapshot().State != session.StateIdle {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// waitState polls until the controller reaches the wanted state.
func waitState(c *engine.Controller, want session.State, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.Snapshot().State == want {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func printReport(snap session.Session, assessment *assess.Assessment) {
	fmt.Printf("Call #%s — %s: %s\n", snap.Scenario.CallID, snap.Scenario.Service, snap.Scenario.Subject)
	fmt.Printf("Persona: %s (%s)\n\n", snap.Persona.Name, snap.Persona.Role)

	fmt.Println("Transcript")
	fmt.Println(strings.Repeat("-", 40))
	for _, m := range snap.Messages {
		label := "agent"
		if m.Role == session.RoleAssistant {
			label = snap.Persona.Name
		}
		fmt.Printf("%-12s %s\n", label+":", m.Content)
	}

	if len(snap.Hints) > 0 {
		fmt.Println("\nCoaching hints")
		fmt.Println(strings.Repeat("-", 40))
		for _, h := range snap.Hints {
			fmt.Printf("[%s] %s\n", h.Priority, h.Text)
		}
	}

	if assessment == nil {
		return
	}
	fmt.Println("\nAssessment")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Overall: %d/100 (%ds on the call)\n", assessment.OverallScore, assessment.Duration)
	c := assessment.Categories
	fmt.Printf("Empathy %d  Clarity %d  Professionalism %d  Problem solving %d\n",
		c.Empathy, c.Clarity, c.Professionalism, c.ProblemSolving)
	for _, s := range assessment.Strengths {
		fmt.Printf("  + %s\n", s)
	}
	for _, s := range assessment.Improvements {
		fmt.Printf("  - %s\n", s)
	}
	for _, s := range assessment.KeyMoments {
		fmt.Printf("  * %s\n", s)
	}
}
