// Package cli defines Cobra command definitions for the dialcoach CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dialcoach-dev/dialcoach/internal/config"
	"github.com/dialcoach-dev/dialcoach/internal/tui"
	"github.com/dialcoach-dev/dialcoach/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "dialcoach",
	Short: "Voice customer-service training simulator",
	Long: `Dialcoach simulates inbound customer-service calls for trainee agents.
A scripted customer persona speaks, listens, and replies in turn; live
coaching hints appear during the call and a scored assessment follows it.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		// Try to read config, use defaults if not initialized
		cfg, err := config.ReadConfig(workDir)
		if err != nil {
			cfg = config.DefaultConfig()
		}

		rt, err := buildRuntime(workDir, cfg)
		if err != nil {
			return err
		}
		defer rt.controller.Close()

		return tui.Run(app.New(cfg, rt.store, rt.controller, rt.mic))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
}
