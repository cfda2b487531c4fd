// Package plan resolves a (scope, workspace) pair into a concrete external
// test command. Resolution is a first-match walk over an ordered rule table,
// so the precedence policy is data, not control flow. Every resolved command
// is a project-level npm/npx task rather than a direct framework binary: the
// monorepo bundles pre-run cleanup into those tasks, and the orchestrator
// never re-implements it.
package plan

import (
	"github.com/wingspanai/qaflow/internal/workspace"
)

// RetryPolicy decides who owns the retry when a run fails.
type RetryPolicy int

const (
	// RetryFramework means the resolved command already embeds the test
	// framework's own retry configuration; the orchestrator runs it once
	// and trusts the framework.
	RetryFramework RetryPolicy = iota
	// RetrySingle means the orchestrator re-invokes the command exactly
	// once after a non-zero exit, with an explicit single-retry flag.
	RetrySingle
)

// ExecutionPlan is the resolved external command for one run. Immutable once
// built; Args is a plain argv list, never an interpolated shell string.
type ExecutionPlan struct {
	Args      []string
	Workspace workspace.Workspace
	Scope     string
	Retry     RetryPolicy
}

// namedScopes are the root-level test categories that take precedence over
// workspace detection.
var namedScopes = map[string]bool{
	"smoke":      true,
	"critical":   true,
	"regression": true,
	"quick":      true,
	"all":        true,
}

// IsNamedScope reports whether scope is one of the fixed root-level scopes.
func IsNamedScope(scope string) bool {
	return namedScopes[scope]
}

// Selector builds execution plans. NpmCmd and NpxCmd default to "npm" and
// "npx" and exist so the config layer can point at alternate toolchains.
type Selector struct {
	NpmCmd string
	NpxCmd string
}

// NewSelector returns a Selector with default tool names.
func NewSelector() *Selector {
	return &Selector{NpmCmd: "npm", NpxCmd: "npx"}
}

type rule struct {
	match func(scope string, ws workspace.Workspace) bool
	build func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan
}

// rules is the precedence table, evaluated top to bottom:
//  1. named scope beats workspace
//  2. known workspace command
//  3. custom scope falls back to a root-level task of the same name
//  4. default smoke run
var rules = []rule{
	{
		match: func(scope string, _ workspace.Workspace) bool { return IsNamedScope(scope) },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			return ExecutionPlan{
				Args:      []string{s.NpmCmd, "run", "test:" + scope},
				Workspace: ws,
				Scope:     scope,
				Retry:     RetrySingle,
			}
		},
	},
	{
		match: func(_ string, ws workspace.Workspace) bool { return ws == workspace.Web },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			args := []string{s.NpmCmd, "--workspace=" + string(workspace.Web), "run", "test"}
			if scope != "" {
				args = append(args, "--", "--grep", scope)
			}
			// Playwright handles flaky reruns itself via this flag, so
			// the plan is single-attempt at the orchestrator level.
			args = append(args, "--", "--retries=1")
			return ExecutionPlan{Args: args, Workspace: ws, Scope: scope, Retry: RetryFramework}
		},
	},
	{
		match: func(_ string, ws workspace.Workspace) bool { return ws == workspace.SmartScreen },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			return ExecutionPlan{
				Args:      []string{s.NpmCmd, "--workspace=" + string(workspace.SmartScreen), "run", "test"},
				Workspace: ws,
				Scope:     scope,
				Retry:     RetryFramework,
			}
		},
	},
	{
		match: func(_ string, ws workspace.Workspace) bool { return ws == workspace.Mobile },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			return ExecutionPlan{
				Args:      []string{s.NpxCmd, "wdio", "run", "appium.config.ts"},
				Workspace: ws,
				Scope:     scope,
				Retry:     RetryFramework,
			}
		},
	},
	{
		match: func(scope string, _ workspace.Workspace) bool { return scope != "" },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			return ExecutionPlan{
				Args:      []string{s.NpmCmd, "run", "test:" + scope},
				Workspace: ws,
				Scope:     scope,
				Retry:     RetrySingle,
			}
		},
	},
	{
		match: func(string, workspace.Workspace) bool { return true },
		build: func(s *Selector, scope string, ws workspace.Workspace) ExecutionPlan {
			return ExecutionPlan{
				Args:      []string{s.NpmCmd, "run", "test:smoke"},
				Workspace: ws,
				Scope:     scope,
				Retry:     RetrySingle,
			}
		},
	},
}

// Resolve maps (scope, workspace) to an ExecutionPlan using the precedence
// table. It always succeeds; the final rule is a catch-all smoke run.
func (s *Selector) Resolve(scope string, ws workspace.Workspace) ExecutionPlan {
	for _, r := range rules {
		if r.match(scope, ws) {
			return r.build(s, scope, ws)
		}
	}
	// Unreachable: the last rule matches everything.
	return ExecutionPlan{Args: []string{s.NpmCmd, "run", "test:smoke"}}
}
