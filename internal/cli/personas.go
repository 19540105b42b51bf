// personas.go implements "dialcoach personas", listing the persona catalog.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the customer personas a session can draw",
	RunE:  runPersonas,
}

func runPersonas(cmd *cobra.Command, args []string) error {
	for _, p := range catalog.Personas() {
		fmt.Printf("%s  %s (%s)\n", p.ID, p.Name, p.Role)
		fmt.Printf("    tone: %s\n", p.Tone)
		t := p.Traits
		fmt.Printf("    traits: openness %d, conscientiousness %d, extraversion %d, agreeableness %d, neuroticism %d\n",
			t.Openness, t.Conscientiousness, t.Extraversion, t.Agreeableness, t.Neuroticism)
	}
	return nil
}
