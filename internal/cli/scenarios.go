// scenarios.go implements "dialcoach scenarios", listing the scenario catalog.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialcoach-dev/dialcoach/internal/catalog"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the call scenarios a session can draw",
	RunE:  runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	for _, s := range catalog.Scenarios() {
		fmt.Printf("%s  [case #%s] %s — %s\n", s.ID, s.CallID, s.Service, s.Subject)
		fmt.Printf("    %s\n", s.Notes)
	}
	return nil
}
