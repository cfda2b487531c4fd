// Package cli provides the Cobra-based commands for qaflow: the
// UserPromptSubmit hook entry point, the test runner, and utility commands
// (doctor, history, version).
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qaflow",
	Short: "QA test orchestration for the wingspanai monorepo",
	Long: `qaflow intercepts test directives from conversational prompts and runs the
right test suite: it detects the target workspace from git change state,
validates prerequisites, executes tests with streaming output and bounded
retries, and summarizes results with report locations.`,
	Example: `  # As a UserPromptSubmit hook (reads the JSON envelope on stdin)
  qaflow hook

  # Run tests directly ("-" means unset)
  qaflow run /path/to/repo wingspanai-web smoke
  qaflow run /path/to/repo - regression

  # Validate prerequisites without running tests
  qaflow doctor /path/to/repo`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", ".qaflow/config.json", "Path to local config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
