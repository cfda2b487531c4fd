// Package testutil provides test doubles and filesystem helpers shared by
// qaflow tests.
package testutil

import (
	"fmt"
	"io"
	"sync"

	"github.com/wingspanai/qaflow/internal/runner"
)

// Call records one executor invocation.
type Call struct {
	Method string
	Spec   runner.CommandSpec
}

// MockExecutor implements runner.Executor with queued canned responses.
// Responses are consumed in order across both Stream and Run; once the
// queue is exhausted every call succeeds with exit code 0.
type MockExecutor struct {
	mu        sync.Mutex
	responses []mockResponse
	next      int
	calls     []Call
}

type mockResponse struct {
	exitCode int
	output   []string
	err      error
}

// NewMockExecutor creates an empty mock.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// WithResult queues an exit code with output lines.
func (m *MockExecutor) WithResult(exitCode int, lines ...string) *MockExecutor {
	m.responses = append(m.responses, mockResponse{exitCode: exitCode, output: lines})
	return m
}

// WithSpawnError queues a spawn failure.
func (m *MockExecutor) WithSpawnError(err error) *MockExecutor {
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// Stream implements runner.Executor.
func (m *MockExecutor) Stream(spec runner.CommandSpec, out io.Writer) *runner.ExecutionResult {
	resp := m.take("Stream", spec)
	if resp.err != nil {
		return &runner.ExecutionResult{ExitCode: 1, Lines: []string{resp.err.Error()}}
	}
	for _, line := range resp.output {
		fmt.Fprintln(out, line)
	}
	return &runner.ExecutionResult{ExitCode: resp.exitCode, Lines: append([]string{}, resp.output...)}
}

// Run implements runner.Executor.
func (m *MockExecutor) Run(spec runner.CommandSpec) (int, string, error) {
	resp := m.take("Run", spec)
	var output string
	for _, line := range resp.output {
		output += line + "\n"
	}
	return resp.exitCode, output, resp.err
}

func (m *MockExecutor) take(method string, spec runner.CommandSpec) mockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Spec: spec})
	if m.next < len(m.responses) {
		resp := m.responses[m.next]
		m.next++
		return resp
	}
	return mockResponse{}
}

// Calls returns all recorded invocations.
func (m *MockExecutor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of invocations.
func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
