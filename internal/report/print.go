package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Print writes the human-readable summary banner.
func (s *RunSummary) Print(w io.Writer) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	status := green(string(s.Status))
	if s.Status == StatusFailed {
		status = red(string(s.Status))
	}

	scope := s.Scope
	if scope == "" {
		scope = "default"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "QA TEST RUNNER SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Status:     %s\n", status)
	fmt.Fprintf(w, "Workspace:  %s\n", s.Workspace)
	fmt.Fprintf(w, "Scope:      %s\n", scope)
	fmt.Fprintf(w, "Session ID: %s\n", s.SessionID)
	if s.Error != "" {
		fmt.Fprintf(w, "Error:      %s\n", s.Error)
	}
	if len(s.ReportPaths) > 0 {
		fmt.Fprintln(w, "Report locations:")
		for _, p := range s.ReportPaths {
			fmt.Fprintf(w, "  • %s\n", p)
		}
	} else {
		fmt.Fprintln(w, dim("No reports found"))
	}
}
