// Package workspace identifies which monorepo workspace a test run should
// target. Detection combines git change state with the current working
// directory, evaluated as an ordered rule list so the tie-break policy is
// explicit and testable.
package workspace

import "strings"

// Workspace is one of the known test targets in the monorepo.
type Workspace string

const (
	// Web is the Playwright-driven web workspace.
	Web Workspace = "wingspanai-web"
	// SmartScreen is the embedded smartscreen workspace.
	SmartScreen Workspace = "smartscreen"
	// Mobile is the WebdriverIO/Appium mobile workspace.
	Mobile Workspace = "wingspanai-mobile"
	// Unknown means no workspace could be inferred. Callers treat this as
	// "auto-detect/default", not as an error.
	Unknown Workspace = ""
)

// priority is the fixed evaluation order. Only the first matching workspace
// is ever returned, even when several have changes.
var priority = []Workspace{Web, SmartScreen, Mobile}

// Known reports whether w is one of the named workspaces.
func (w Workspace) Known() bool {
	return w == Web || w == SmartScreen || w == Mobile
}

// String returns the workspace directory name, or "auto-detect" for Unknown.
func (w Workspace) String() string {
	if w == Unknown {
		return "auto-detect"
	}
	return string(w)
}

// Parse maps a CLI argument to a Workspace. The literal placeholders "-" and
// "None" mean unset, matching the runner's positional argument contract.
func Parse(arg string) Workspace {
	switch arg {
	case "", "-", "None":
		return Unknown
	}
	for _, ws := range priority {
		if arg == string(ws) {
			return ws
		}
	}
	return Unknown
}

// FromPaths returns the first workspace (in priority order) that owns any of
// the given repository-relative paths.
func FromPaths(paths []string) Workspace {
	for _, ws := range priority {
		for _, p := range paths {
			if strings.Contains(p, string(ws)+"/") {
				return ws
			}
		}
	}
	return Unknown
}

// FromDir returns the first workspace whose directory name appears in the
// given path, typically the current working directory.
func FromDir(dir string) Workspace {
	for _, ws := range priority {
		if strings.Contains(dir, string(ws)) {
			return ws
		}
	}
	return Unknown
}
