// Package prereq validates everything a test run needs before any test
// process is spawned. Checks run in a fixed order and fail fast on the first
// mandatory failure; advisory checks log warnings and let the run proceed
// because the frameworks have their own fallback defaults.
package prereq

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/wingspanai/qaflow/internal/progress"
	"github.com/wingspanai/qaflow/internal/runner"
	"github.com/wingspanai/qaflow/internal/workspace"
)

// Severity classifies a check's failure mode.
type Severity int

const (
	// Mandatory failures abort the run before execution.
	Mandatory Severity = iota
	// Advisory failures warn and proceed.
	Advisory
)

// Result is one check's outcome with a human-readable diagnostic.
type Result struct {
	Name     string
	Severity Severity
	Passed   bool
	Detail   string
}

// Outcome aggregates the pipeline: Passed is the AND of mandatory checks,
// ExtraEnv holds variables to materialize into the child environment at
// spawn time (never into the orchestrator's own).
type Outcome struct {
	Passed   bool
	Results  []Result
	ExtraEnv []string
}

// FailureReason returns the diagnostic of the first mandatory failure, or
// empty when the pipeline passed.
func (o *Outcome) FailureReason() string {
	for _, r := range o.Results {
		if !r.Passed && r.Severity == Mandatory {
			return fmt.Sprintf("%s: %s", r.Name, r.Detail)
		}
	}
	return ""
}

// Pipeline runs the prerequisite checks for one target project root.
type Pipeline struct {
	Root      string
	Workspace workspace.Workspace
	Scope     string
	SessionID string
	Exec      runner.Executor
	Log       zerolog.Logger
	Steps     *progress.StepIndicator

	// NpmCmd/NpxCmd come from configuration; they default to npm/npx.
	NpmCmd        string
	NpxCmd        string
	BootstrapArgs []string

	// Getenv is the ambient environment lookup, injectable for tests.
	Getenv func(string) string
}

type check struct {
	name     string
	severity Severity
	run      func(p *Pipeline, out *Outcome) Result
}

// pipeline order matters: dependency bootstrap first (everything else needs
// node_modules), config before keys, environment tagging before the browser
// probe which may shell out.
var checks = []check{
	{"dependencies", Mandatory, (*Pipeline).checkDependencies},
	{"env file", Mandatory, (*Pipeline).checkEnvFile},
	{"required keys", Mandatory, (*Pipeline).checkRequiredKeys},
	{"optional keys", Advisory, (*Pipeline).checkOptionalKeys},
	{"mobile app paths", Advisory, (*Pipeline).checkMobilePaths},
	{"report iteration", Advisory, (*Pipeline).checkReportIteration},
	{"browser install", Advisory, (*Pipeline).checkBrowsers},
}

// Run executes the pipeline. Mandatory failures short-circuit: no later
// check runs and no process is ever spawned by the caller.
func (p *Pipeline) Run() *Outcome {
	if p.Getenv == nil {
		p.Getenv = os.Getenv
	}
	if p.NpmCmd == "" {
		p.NpmCmd = "npm"
	}
	if p.NpxCmd == "" {
		p.NpxCmd = "npx"
	}
	if len(p.BootstrapArgs) == 0 {
		p.BootstrapArgs = []string{"run", "bootstrap"}
	}

	p.Log.Info().Msg("Checking prerequisites...")
	out := &Outcome{Passed: true}
	for _, c := range checks {
		r := c.run(p, out)
		r.Name = c.name
		r.Severity = c.severity
		out.Results = append(out.Results, r)

		switch {
		case r.Passed:
			if r.Detail != "" {
				p.Log.Info().Msg(r.Detail)
			}
		case c.severity == Advisory:
			p.Log.Warn().Msg(r.Detail)
		default:
			p.Log.Error().Msg(r.Detail)
			out.Passed = false
			return out
		}
	}
	return out
}

// checkDependencies verifies the install marker directory and runs the
// bootstrap task when it is missing.
func (p *Pipeline) checkDependencies(_ *Outcome) Result {
	marker := filepath.Join(p.Root, "node_modules")
	if _, err := os.Stat(marker); err == nil {
		return Result{Passed: true}
	}

	p.Log.Info().Msg("node_modules not found, running bootstrap...")
	if p.Steps != nil {
		p.Steps.Start("Installing dependencies")
	}
	args := append([]string{p.NpmCmd}, p.BootstrapArgs...)
	code, output, err := p.Exec.Run(runner.CommandSpec{Args: args, Dir: p.Root})
	if p.Steps != nil {
		p.Steps.Done(err == nil && code == 0)
	}
	if err != nil {
		return Result{Passed: false, Detail: fmt.Sprintf("bootstrap failed to start: %v", err)}
	}
	if code != 0 {
		return Result{Passed: false, Detail: fmt.Sprintf("bootstrap exited %d: %s", code, lastLine(output))}
	}
	return Result{Passed: true, Detail: "Dependency bootstrap completed"}
}

// checkMobilePaths warns when mobile runs have no app paths configured.
// Missing paths never fail the run; the runner falls back to the default
// apps directory.
func (p *Pipeline) checkMobilePaths(_ *Outcome) Result {
	if p.Workspace != workspace.Mobile {
		return Result{Passed: true}
	}
	android := p.Getenv("ANDROID_APP_PATH")
	ios := p.Getenv("IOS_APP_PATH")
	if android != "" || ios != "" {
		return Result{Passed: true}
	}
	if _, err := os.Stat(filepath.Join(p.Root, "apps")); err == nil {
		return Result{Passed: true, Detail: "No app path variables set, using default apps folder"}
	}
	return Result{Passed: false, Detail: "No mobile app paths found, falling back to default apps folder"}
}

// checkReportIteration synthesizes the per-run report correlation tag when
// the environment does not already carry one. The value is threaded through
// ExtraEnv and only materialized into the child process environment.
func (p *Pipeline) checkReportIteration(out *Outcome) Result {
	if p.Getenv("REPORT_ITERATION") != "" {
		return Result{Passed: true}
	}
	out.ExtraEnv = append(out.ExtraEnv, "REPORT_ITERATION="+p.SessionID)
	return Result{Passed: true, Detail: "Set REPORT_ITERATION to " + p.SessionID}
}

func lastLine(s string) string {
	lines := nonEmptyLines(s)
	if len(lines) == 0 {
		return "(no output)"
	}
	return lines[len(lines)-1]
}
