// Package report assembles the terminal summary of one orchestrated run and
// discovers report artifacts the test frameworks wrote. The summarizer only
// reads report directories; it never owns or cleans them.
package report

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wingspanai/qaflow/internal/workspace"
)

// Status of a completed run. Derived solely from the exit code.
type Status string

const (
	StatusPassed Status = "PASSED"
	StatusFailed Status = "FAILED"
)

// RunSummary is the terminal artifact of one invocation.
type RunSummary struct {
	Status      Status              `json:"status"`
	ExitCode    int                 `json:"exit_code"`
	Workspace   workspace.Workspace `json:"workspace"`
	Scope       string              `json:"scope"`
	SessionID   string              `json:"session_id"`
	ReportPaths []string            `json:"report_paths"`
	Timestamp   time.Time           `json:"timestamp"`
	// Error carries the prerequisite failure reason when the run was
	// aborted before execution.
	Error string `json:"error,omitempty"`
}

// StatusFor maps an exit code to a run status. Any non-zero code, including
// negative signal-termination codes, is a failure.
func StatusFor(exitCode int) Status {
	if exitCode == 0 {
		return StatusPassed
	}
	return StatusFailed
}

// htmlEntry is the structured report entry point preferred over a bare
// directory path.
var htmlEntry = filepath.Join("html-report", "index.html")

// Summarize builds the RunSummary for a finished execution, walking the
// known report locations. Finding no reports is not an error.
func Summarize(root string, ws workspace.Workspace, scope, sessionID string, exitCode int) *RunSummary {
	return &RunSummary{
		Status:      StatusFor(exitCode),
		ExitCode:    exitCode,
		Workspace:   ws,
		Scope:       scope,
		SessionID:   sessionID,
		ReportPaths: DiscoverReports(root, sessionID),
		Timestamp:   time.Now(),
	}
}

// DiscoverReports scans the fixed candidate report directories, one per
// workspace plus the root-level directory, in a stable order. The web
// workspace tags its report directories with the session id, so only
// matching subdirectories are collected there; other locations collect
// every subdirectory. Order of discovery is preserved, never sorted.
func DiscoverReports(root, sessionID string) []string {
	var paths []string
	candidates := []struct {
		dir           string
		filterSession bool
	}{
		{filepath.Join(root, string(workspace.Web), "test-reports"), true},
		{filepath.Join(root, string(workspace.SmartScreen), "test-reports"), false},
		{filepath.Join(root, string(workspace.Mobile), "test-reports"), false},
		{filepath.Join(root, "test-reports"), false},
	}
	for _, c := range candidates {
		paths = append(paths, scanReportDir(c.dir, sessionID, c.filterSession)...)
	}
	return paths
}

func scanReportDir(dir, sessionID string, filterSession bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if filterSession && !strings.Contains(entry.Name(), sessionID) {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		html := filepath.Join(sub, htmlEntry)
		if _, err := os.Stat(html); err == nil {
			paths = append(paths, html)
		} else {
			paths = append(paths, sub)
		}
	}
	return paths
}
