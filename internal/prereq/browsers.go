package prereq

import (
	"fmt"
	"strings"

	"github.com/wingspanai/qaflow/internal/runner"
	"github.com/wingspanai/qaflow/internal/workspace"
)

// BrowserStatus is the tri-state outcome of the Playwright browser probe.
// Unknown is logged explicitly rather than silently treated as present.
type BrowserStatus int

const (
	BrowsersPresent BrowserStatus = iota
	BrowsersMissing
	BrowsersUnknown
)

// needsBrowsers reports whether the run exercises Playwright: the web
// workspace always does, and so do the root-level scope tasks that run when
// no workspace was detected.
func (p *Pipeline) needsBrowsers() bool {
	return p.Workspace == workspace.Web || p.Workspace == workspace.Unknown
}

// checkBrowsers probes the Playwright browser install with a dry run and
// self-heals by installing when browsers are reported missing. Verification
// failure is a warning, not fatal: the framework may still succeed.
func (p *Pipeline) checkBrowsers(_ *Outcome) Result {
	if !p.needsBrowsers() {
		return Result{Passed: true}
	}

	switch p.probeBrowsers() {
	case BrowsersPresent:
		return Result{Passed: true, Detail: "Playwright browsers already installed"}
	case BrowsersUnknown:
		return Result{Passed: false, Detail: "Could not verify Playwright browser installation"}
	}

	p.Log.Info().Msg("Installing Playwright browsers...")
	if p.Steps != nil {
		p.Steps.Start("Installing Playwright browsers")
	}
	code, output, err := p.Exec.Run(runner.CommandSpec{
		Args: []string{p.NpxCmd, "playwright", "install"},
		Dir:  p.Root,
	})
	if p.Steps != nil {
		p.Steps.Done(err == nil && code == 0)
	}
	if err != nil || code != 0 {
		return Result{Passed: false, Detail: fmt.Sprintf("Playwright browser install did not complete: %s", lastLine(output))}
	}
	return Result{Passed: true, Detail: "Playwright browsers installed"}
}

// probeBrowsers runs the dry-run install check.
func (p *Pipeline) probeBrowsers() BrowserStatus {
	code, output, err := p.Exec.Run(runner.CommandSpec{
		Args: []string{p.NpxCmd, "playwright", "install", "--dry-run"},
		Dir:  p.Root,
	})
	if err != nil {
		return BrowsersUnknown
	}
	if code != 0 || strings.Contains(output, "needs to be installed") {
		return BrowsersMissing
	}
	return BrowsersPresent
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
