package runner

import (
	"io"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/wingspanai/qaflow/internal/plan"
)

// retryArgs is the explicit single-retry augmentation appended when the
// orchestrator owns the retry.
var retryArgs = []string{"--", "--retries=1"}

// Engine drives one orchestrated test run: execute the plan, apply the
// retry policy, hand back the final result.
type Engine struct {
	Exec Executor
	Log  zerolog.Logger
	// Out receives the child's streamed output lines.
	Out io.Writer
	// MaxRetries bounds orchestrator-level retries; the policy itself
	// never allows more than one, so valid values are 0 and 1.
	MaxRetries int
}

// Execute runs the plan once, retrying a single time on failure when the
// plan's policy assigns the retry to the orchestrator. Plans whose commands
// embed framework-level retries are run exactly once. The retry result
// replaces the original for reporting, so worst case is bounded at two
// attempts.
func (e *Engine) Execute(p plan.ExecutionPlan, dir string, extraEnv []string) *ExecutionResult {
	spec := CommandSpec{Args: p.Args, Dir: dir, Env: extraEnv}
	e.Log.Info().Msgf("Executing: %s", shellescape.QuoteCommand(p.Args))

	result := e.Exec.Stream(spec, e.Out)
	if result.ExitCode == 0 || p.Retry != plan.RetrySingle || e.MaxRetries < 1 {
		return result
	}

	e.Log.Warn().Int("exit_code", result.ExitCode).Msg("Tests failed, retrying once with --retries=1")
	retrySpec := CommandSpec{
		Args: append(append([]string{}, p.Args...), retryArgs...),
		Dir:  dir,
		Env:  extraEnv,
	}
	retried := e.Exec.Stream(retrySpec, e.Out)
	retried.Retried = true
	return retried
}
