package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wingspanai/qaflow/internal/config"
	"github.com/wingspanai/qaflow/internal/history"
	"github.com/wingspanai/qaflow/internal/plan"
	"github.com/wingspanai/qaflow/internal/prereq"
	"github.com/wingspanai/qaflow/internal/progress"
	"github.com/wingspanai/qaflow/internal/report"
	"github.com/wingspanai/qaflow/internal/runner"
	"github.com/wingspanai/qaflow/internal/workspace"
)

var runCmd = &cobra.Command{
	Use:   "run <project_root> [workspace] [scope]",
	Short: "Validate prerequisites and execute the selected test suite",
	Long: `Runs the QA test pipeline against a project root. Workspace and scope are
optional; the literal "-" or "None" means unset. Exit code is 0 on overall
pass and 1 otherwise.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || len(args) > 3 {
			// The runner contract prints argument errors on stdout.
			fmt.Fprintln(cmd.OutOrStdout(), "Usage: qaflow run <project_root> [workspace] [scope]")
			return NewExitError(ExitFailure)
		}
		return runTests(cmd, args)
	},
}

func runTests(cmd *cobra.Command, args []string) error {
	root := args[0]
	ws := workspace.Unknown
	scope := ""
	if len(args) > 1 {
		ws = workspace.Parse(args[1])
	}
	if len(args) > 2 {
		scope = parseScopeArg(args[2])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return NewExitError(ExitFailure)
	}

	log := newLogger(cmd)
	sessionID := history.SessionID(time.Now())
	started := time.Now()

	scopeLabel := scope
	if scopeLabel == "" {
		scopeLabel = "default"
	}
	log.Info().Msgf("Starting QA Test Runner (Session: %s)", sessionID)
	log.Info().Msgf("Project root: %s", root)
	log.Info().Msgf("Workspace: %s", ws)
	log.Info().Msgf("Scope: %s", scopeLabel)

	writer := history.NewWriter(cfg.StateDir, cfg.HistoryMax)
	runID, err := writer.WriteStart(sessionID, string(ws), scope)
	if err != nil {
		// History is best-effort; the run proceeds without it.
		log.Warn().Err(err).Msg("Could not record run history")
	}

	exec := &runner.SystemExecutor{Timeout: time.Duration(cfg.Timeout) * time.Second}

	pipeline := &prereq.Pipeline{
		Root:          root,
		Workspace:     ws,
		Scope:         scope,
		SessionID:     sessionID,
		Exec:          exec,
		Log:           log,
		Steps:         progress.NewStepIndicator(cfg.ShowProgress),
		NpmCmd:        cfg.NpmCmd,
		NpxCmd:        cfg.NpxCmd,
		BootstrapArgs: cfg.BootstrapArgs,
	}
	outcome := pipeline.Run()
	if !outcome.Passed {
		summary := report.Summarize(root, ws, scope, sessionID, 1)
		summary.Error = "Prerequisites check failed: " + outcome.FailureReason()
		summary.Print(cmd.OutOrStdout())
		finishHistory(writer, runID, 1, started)
		return NewExitError(ExitFailure)
	}

	selector := &plan.Selector{NpmCmd: cfg.NpmCmd, NpxCmd: cfg.NpxCmd}
	p := selector.Resolve(scope, ws)

	engine := &runner.Engine{
		Exec:       exec,
		Log:        log,
		Out:        cmd.OutOrStdout(),
		MaxRetries: cfg.MaxRetries,
	}
	result := engine.Execute(p, root, outcome.ExtraEnv)

	summary := report.Summarize(root, ws, scope, sessionID, result.ExitCode)
	log.Info().Msgf("Test execution completed: %s", summary.Status)
	summary.Print(cmd.OutOrStdout())
	finishHistory(writer, runID, result.ExitCode, started)

	if summary.Status != report.StatusPassed {
		return NewExitError(ExitFailure)
	}
	return nil
}

// parseScopeArg maps the positional placeholder to "unset".
func parseScopeArg(arg string) string {
	if arg == "-" || arg == "None" {
		return ""
	}
	return arg
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	localPath, _ := cmd.Flags().GetString("config")
	return config.Load(localPath)
}

// newLogger builds the operational logger: console format on stderr with
// time-of-day stamps, so it never mixes with streamed test output on stdout.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()
}

func finishHistory(writer *history.Writer, runID string, exitCode int, started time.Time) {
	if runID == "" {
		return
	}
	writer.UpdateComplete(runID, exitCode, time.Since(started))
}
