// clean.go implements "dialcoach clean", pruning the event log.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialcoach-dev/dialcoach/internal/cleanup"
)

var (
	cleanMaxAgeDays int
	cleanKeep       int
	cleanDryRun     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune old entries from .dialcoach/log.jsonl",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanMaxAgeDays, "max-age", 30, "Remove entries older than this many days")
	cleanCmd.Flags().IntVar(&cleanKeep, "keep", 0, "Additionally truncate to the most recent N entries (0 disables)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Report what would be pruned without modifying the log")
}

func runClean(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	pruned, err := cleanup.PruneByAge(workDir, cleanMaxAgeDays, cleanDryRun)
	if err != nil {
		return err
	}

	if cleanKeep > 0 {
		n, err := cleanup.PruneKeepRecent(workDir, cleanKeep, cleanDryRun)
		if err != nil {
			return err
		}
		pruned += n
	}

	if cleanDryRun {
		fmt.Printf("Would prune %d log entries\n", pruned)
		return nil
	}
	fmt.Printf("Pruned %d log entries\n", pruned)
	return nil
}
