// Package runner executes resolved test commands as child processes with
// line-by-line output streaming and a bounded retry policy. The Executor
// interface is the seam for tests; SystemExecutor is the real thing.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// CommandSpec describes one child process invocation. Env holds extra
// variables layered over the parent environment at spawn time, so the
// orchestrator's own ambient state is never mutated to pass configuration.
type CommandSpec struct {
	Args []string
	Dir  string
	Env  []string
}

// ExecutionResult is the outcome of one invocation attempt. When the retry
// policy fires, the retry's result replaces the original.
type ExecutionResult struct {
	ExitCode int
	Lines    []string
	Retried  bool
}

// Executor runs external commands. Stream spawns the command with combined
// stdout/stderr forwarded line-by-line to out as it arrives; Run executes a
// short probe command and returns its buffered combined output.
type Executor interface {
	Stream(spec CommandSpec, out io.Writer) *ExecutionResult
	Run(spec CommandSpec) (exitCode int, output string, err error)
}

// SystemExecutor implements Executor with os/exec. A Timeout of zero means
// no deadline: timeouts are deliberately left to CI-level supervision and
// the frameworks' own per-test limits, with the knob here for callers that
// want one anyway.
type SystemExecutor struct {
	Timeout time.Duration
}

// maxLineLen caps how much of a single output line is retained. Reading
// never stops at the cap; the excess is drained and discarded so the child
// cannot block on a full pipe.
const maxLineLen = 1024 * 1024

// Stream runs the command, forwarding each combined stdout/stderr line to
// out as soon as it is read. The read loop doubles as pipe draining: it must
// consume everything until EOF, since a full pipe buffer would otherwise
// deadlock the child on Wait. Lines beyond maxLineLen are truncated with a
// marker rather than aborting the read. A spawn failure is folded into the
// result as exit code 1 with the error text as the sole output line; callers
// needing the distinction inspect the text.
func (s *SystemExecutor) Stream(spec CommandSpec, out io.Writer) *ExecutionResult {
	ctx, cancel := s.context()
	defer cancel()

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return spawnFailure(err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return spawnFailure(err)
	}

	lines := drainLines(stdout, out)

	result := &ExecutionResult{Lines: lines}
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Lines = append(result.Lines, err.Error())
		}
	}
	return result
}

// Run executes a probe command and returns its exit code and combined
// output. Unlike Stream, spawn errors are surfaced so capability probes can
// distinguish "tool missing" from "tool says no".
func (s *SystemExecutor) Run(spec CommandSpec) (int, string, error) {
	ctx, cancel := s.context()
	defer cancel()

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = append(os.Environ(), spec.Env...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), string(output), nil
		}
		return 1, string(output), err
	}
	return 0, string(output), nil
}

// drainLines reads r to EOF, emitting one entry per newline-delimited line.
// ReadSlice reports ErrBufferFull for lines longer than its buffer; the loop
// keeps consuming those chunks, recording up to maxLineLen and flagging the
// rest as truncated, so the reader reaches EOF no matter what the child
// writes.
func drainLines(r io.Reader, out io.Writer) []string {
	reader := bufio.NewReaderSize(r, 64*1024)
	var lines []string
	var cur []byte
	truncated := false

	emit := func() {
		line := string(cur)
		if truncated {
			line += " [line truncated]"
		}
		fmt.Fprintln(out, line)
		lines = append(lines, line)
		cur = cur[:0]
		truncated = false
	}

	for {
		chunk, err := reader.ReadSlice('\n')
		if n := len(chunk); n > 0 && chunk[n-1] == '\n' {
			chunk = chunk[:n-1]
		}
		if len(chunk) > 0 {
			if room := maxLineLen - len(cur); len(chunk) > room {
				chunk = chunk[:room]
				truncated = true
			}
			cur = append(cur, chunk...)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			if len(cur) > 0 || truncated {
				emit()
			}
			return lines
		}
		emit()
	}
}

func (s *SystemExecutor) context() (context.Context, context.CancelFunc) {
	if s.Timeout > 0 {
		return context.WithTimeout(context.Background(), s.Timeout)
	}
	return context.Background(), func() {}
}

func spawnFailure(err error) *ExecutionResult {
	return &ExecutionResult{ExitCode: 1, Lines: []string{err.Error()}}
}
