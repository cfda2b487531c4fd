// Package hook implements the UserPromptSubmit hook boundary: envelope
// decoding from stdin, trailing flag detection, and routing of test prompts
// to the runner. This is the only place that knows the host agent's JSON
// protocol.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// EventUserPromptSubmit is the hook event this binary handles.
const EventUserPromptSubmit = "UserPromptSubmit"

// Input is the envelope delivered on stdin by the host agent. Only the
// prompt field is load-bearing; cwd is used for workspace detection when
// present.
type Input struct {
	Prompt string `json:"prompt"`
	CWD    string `json:"cwd,omitempty"`
}

// Output is the envelope written back to the host agent.
type Output struct {
	HookSpecificOutput SpecificOutput `json:"hookSpecificOutput"`
}

// SpecificOutput carries the event acknowledgment. AdditionalContext is
// injected into the conversation; ReplacePrompt rewrites the user prompt for
// the downstream agent.
type SpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext,omitempty"`
	ReplacePrompt     string `json:"replacePrompt,omitempty"`
}

// ReadInput decodes a hook envelope from r.
func ReadInput(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decoding hook input: %w", err)
	}
	return &in, nil
}

// WriteOutput encodes an envelope to w on a single line, the way the host
// agent expects hook output.
func WriteOutput(w io.Writer, out *Output) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding hook output: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("writing hook output: %w", err)
	}
	return nil
}

// ErrorOutput builds the diagnostic envelope used when hook processing
// fails. It is delivered on stderr so the host agent never sees a raw
// stack trace on the success channel.
func ErrorOutput(err error) *Output {
	return &Output{
		HookSpecificOutput: SpecificOutput{
			HookEventName:     EventUserPromptSubmit,
			AdditionalContext: fmt.Sprintf("QA test runner hook error: %v", err),
		},
	}
}
