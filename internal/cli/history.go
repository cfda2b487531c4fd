package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wingspanai/qaflow/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent test runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showHistory(cmd)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
}

func showHistory(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return NewExitError(ExitFailure)
	}

	hf, err := history.Load(cfg.StateDir)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return NewExitError(ExitFailure)
	}
	if len(hf.Entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	entries := hf.Entries
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		status := e.Status
		switch e.Status {
		case history.StatusCompleted:
			status = green(e.Status)
		case history.StatusFailed:
			status = red(e.Status)
		case history.StatusRunning:
			status = yellow(e.Status)
		}
		ws := e.Workspace
		if ws == "" {
			ws = "auto"
		}
		scope := e.Scope
		if scope == "" {
			scope = "default"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %-18s  %-12s  %s  %s\n",
			e.StartedAt.Format("2006-01-02 15:04:05"), status, ws, scope, e.ID, e.Duration)
	}
	return nil
}
