// init.go implements "dialcoach init", writing the default config file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialcoach-dev/dialcoach/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .dialcoach/config.yaml",
	Long: `Write the default configuration to .dialcoach/config.yaml in the
current directory. Existing configuration is left untouched.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if _, err := config.ReadConfig(workDir); err == nil {
		fmt.Println("dialcoach is already initialized here")
		return nil
	}

	if err := config.WriteConfig(workDir, config.DefaultConfig()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Println("Initialized .dialcoach/config.yaml")
	return nil
}
