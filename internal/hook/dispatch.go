package hook

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/wingspanai/qaflow/internal/git"
	"github.com/wingspanai/qaflow/internal/plan"
	"github.com/wingspanai/qaflow/internal/workspace"
)

// Route says where a prompt was sent.
type Route int

const (
	// RoutePassThrough means no directive was detected; the prompt
	// proceeds through the host agent untouched (exit 0, no output).
	RoutePassThrough Route = iota
	// RouteTest means a trailing -t directive was detected.
	RouteTest
	// RouteIndex means a -i directive was detected.
	RouteIndex
)

// Dispatcher routes prompts to the test path, the index path, or back to
// the host agent. The collaborators are injectable for tests.
type Dispatcher struct {
	Selector *plan.Selector
	// FindRoot locates the project root for a working directory.
	FindRoot func(dir string) string
	// Changes lists changed files for workspace detection.
	Changes func(dir string) ([]string, error)
}

// NewDispatcher returns a Dispatcher wired to the real git collaborators.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Selector: plan.NewSelector(),
		FindRoot: git.FindProjectRoot,
		Changes:  git.ChangedFiles,
	}
}

// Dispatch inspects the prompt and builds the response envelope. A nil
// Output with RoutePassThrough means the prompt carries no directive. The
// test flag is checked before the index flag so "-t" prompts that also
// contain "-i" substrings route to the test path.
func (d *Dispatcher) Dispatch(in *Input) (*Output, Route) {
	scope, cleaned, ok := ParseTestFlag(in.Prompt)
	if ok {
		return d.dispatchTest(in, scope, cleaned), RouteTest
	}
	if HasIndexFlag(in.Prompt) {
		return d.dispatchIndex(), RouteIndex
	}
	return nil, RoutePassThrough
}

func (d *Dispatcher) dispatchTest(in *Input, scope, cleaned string) *Output {
	root := d.FindRoot(in.CWD)
	detector := &workspace.Detector{WorkDir: in.CWD}
	if d.Changes != nil {
		detector.Changes = func() ([]string, error) { return d.Changes(root) }
	}
	ws := detector.Detect()

	p := d.Selector.Resolve(scope, ws)
	rewritten := rewritePrompt(ws, scope, cleaned)

	return &Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:     EventUserPromptSubmit,
			AdditionalContext: testContext(root, ws, scope, p, rewritten),
			ReplacePrompt:     rewritten,
		},
	}
}

func (d *Dispatcher) dispatchIndex() *Output {
	return &Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName: EventUserPromptSubmit,
			AdditionalContext: "## Repo Index Activated\n\n" +
				"Use the repo indexing subagent to refresh the code index before answering.",
		},
	}
}

// rewritePrompt builds the replacement prompt instructing the downstream
// execution agent.
func rewritePrompt(ws workspace.Workspace, scope, cleaned string) string {
	var b strings.Builder
	b.WriteString("Execute QA tests")
	if ws.Known() {
		fmt.Fprintf(&b, " in %s", ws)
	}
	if scope != "" {
		fmt.Fprintf(&b, " with scope '%s'", scope)
	}
	fmt.Fprintf(&b, ". Original request: %s", cleaned)
	return b.String()
}

// testContext renders the additionalContext block: the chosen configuration
// plus line-level guidance on the prerequisite and retry policy the
// execution agent must follow.
func testContext(root string, ws workspace.Workspace, scope string, p plan.ExecutionPlan, rewritten string) string {
	scopeLabel := scope
	if scopeLabel == "" {
		scopeLabel = "default"
	}
	cmd := shellescape.QuoteCommand(p.Args)
	runnerCmd := shellescape.QuoteCommand([]string{
		"qaflow", "run", root, placeholderOr(string(ws)), placeholderOr(scope),
	})

	var b strings.Builder
	b.WriteString("## QA Test Runner Activated\n\n")
	b.WriteString("**Test Configuration:**\n")
	fmt.Fprintf(&b, "- Workspace: %s\n", ws)
	fmt.Fprintf(&b, "- Scope: %s\n", scopeLabel)
	fmt.Fprintf(&b, "- Command: `%s`\n\n", cmd)
	b.WriteString("**IMPORTANT**: Use the QA Test Runner subagent to execute tests. Launch it with this prompt:\n\n")
	fmt.Fprintf(&b, "%q\n\n", rewritten)
	b.WriteString("The subagent must run:\n\n")
	fmt.Fprintf(&b, "    %s\n\n", runnerCmd)
	b.WriteString("which will:\n")
	b.WriteString("1. Verify prerequisites (npm install, .env, mobile app paths)\n")
	fmt.Fprintf(&b, "2. Execute: `%s`\n", cmd)
	b.WriteString("3. Retry failed tests once before declaring failure\n")
	b.WriteString("4. Stream output and summarize results\n")
	b.WriteString("5. Provide report links\n\n")
	b.WriteString("**Policy for the subagent:**\n")
	fmt.Fprintf(&b, "- Project root: %s\n", root)
	fmt.Fprintf(&b, "- Target workspace: %s\n", ws)
	fmt.Fprintf(&b, "- Test scope: %s\n", scopeLabel)
	b.WriteString("- Set REPORT_ITERATION if not present\n")
	b.WriteString("- Check browser installation for Playwright tests\n\n")
	b.WriteString("DO NOT execute tests directly - use the specialized QA Test Runner subagent.\n")
	return b.String()
}

// placeholderOr maps an unset value to the positional placeholder the
// runner accepts.
func placeholderOr(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
