package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wingspanai/qaflow/internal/git"
	"github.com/wingspanai/qaflow/internal/history"
	"github.com/wingspanai/qaflow/internal/prereq"
	"github.com/wingspanai/qaflow/internal/progress"
	"github.com/wingspanai/qaflow/internal/runner"
	"github.com/wingspanai/qaflow/internal/workspace"
)

var doctorWorkspace string

var doctorCmd = &cobra.Command{
	Use:   "doctor [project_root]",
	Short: "Run the prerequisite checks without executing tests",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := ""
		if len(args) == 1 {
			root = args[0]
		}
		return runDoctor(cmd, root)
	},
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorWorkspace, "workspace", "w", "", "Workspace to validate against (default: auto-detect)")
}

func runDoctor(cmd *cobra.Command, root string) error {
	if root == "" {
		root = git.FindProjectRoot(".")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return NewExitError(ExitFailure)
	}

	ws := workspace.Parse(doctorWorkspace)
	if ws == workspace.Unknown {
		detector := &workspace.Detector{
			Changes: func() ([]string, error) { return git.ChangedFiles(root) },
			WorkDir: root,
		}
		ws = detector.Detect()
	}

	log := newLogger(cmd)
	pipeline := &prereq.Pipeline{
		Root:          root,
		Workspace:     ws,
		SessionID:     history.SessionID(time.Now()),
		Exec:          &runner.SystemExecutor{},
		Log:           log,
		Steps:         progress.NewStepIndicator(cfg.ShowProgress),
		NpmCmd:        cfg.NpmCmd,
		NpxCmd:        cfg.NpxCmd,
		BootstrapArgs: cfg.BootstrapArgs,
	}
	outcome := pipeline.Run()
	if !outcome.Passed {
		log.Error().Msgf("Prerequisites check failed: %s", outcome.FailureReason())
		return NewExitError(ExitFailure)
	}
	log.Info().Msg("All prerequisite checks passed")
	return nil
}
