package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wingspanai/qaflow/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Process a UserPromptSubmit hook envelope from stdin",
	Long: `Reads the host agent's UserPromptSubmit JSON envelope from standard input
and routes the prompt: a trailing -t[scope] directive activates the QA test
runner path, -i activates the repo index path, and anything else passes
through untouched (exit 0, no output).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd)
	},
}

func runHook(cmd *cobra.Command) error {
	out, err := processHook(cmd)
	if err != nil {
		// Internal faults become a diagnostic envelope on stderr, never
		// a raw error on the success channel.
		if werr := hook.WriteOutput(cmd.ErrOrStderr(), hook.ErrorOutput(err)); werr != nil {
			fmt.Fprintln(os.Stderr, werr)
		}
		return NewExitError(ExitFailure)
	}
	if out != nil {
		if err := hook.WriteOutput(cmd.OutOrStdout(), out); err != nil {
			return NewExitError(ExitFailure)
		}
	}
	return nil
}

func processHook(cmd *cobra.Command) (*hook.Output, error) {
	in, err := hook.ReadInput(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if in.CWD == "" {
		if cwd, err := os.Getwd(); err == nil {
			in.CWD = cwd
		}
	}

	out, _ := hook.NewDispatcher().Dispatch(in)
	return out, nil
}
