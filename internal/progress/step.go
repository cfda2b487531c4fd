package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// StepIndicator shows a spinner for one in-flight step. When the terminal is
// not a TTY (or progress is disabled) it degrades to plain start/finish
// lines so CI logs stay readable.
type StepIndicator struct {
	enabled bool
	symbols Symbols
	spin    *spinner.Spinner
	message string
}

// NewStepIndicator builds an indicator honoring the show flag and terminal
// capabilities.
func NewStepIndicator(show bool) *StepIndicator {
	caps := DetectTerminalCapabilities()
	return &StepIndicator{
		enabled: show && caps.IsTTY,
		symbols: SelectSymbols(caps),
	}
}

// Start begins showing a step.
func (s *StepIndicator) Start(message string) {
	s.message = message
	if !s.enabled {
		fmt.Fprintf(os.Stderr, "%s...\n", message)
		return
	}
	s.spin = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], 100*time.Millisecond)
	s.spin.Writer = os.Stderr
	s.spin.Suffix = " " + message
	s.spin.Start()
}

// Done stops the step, printing the outcome glyph.
func (s *StepIndicator) Done(success bool) {
	if s.spin != nil {
		s.spin.Stop()
		s.spin = nil
	}
	symbol := s.symbols.Checkmark
	if !success {
		symbol = s.symbols.Failure
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", symbol, s.message)
}
