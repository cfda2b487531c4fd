package cli

import "fmt"

// Exit codes for the qaflow CLI. The runner contract is binary: 0 on
// overall pass, 1 otherwise.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates an error carrying the given exit code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode extracts the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitFailure
}
