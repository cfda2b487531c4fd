// Package progress renders step indicators for long-running prerequisite
// work (dependency bootstrap, browser installs). Spinners write to stderr so
// they never interleave with the streamed test output on stdout.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// DetectTerminalCapabilities inspects stderr and the environment. NO_COLOR
// disables color, QAFLOW_ASCII=1 forces the ASCII symbol set.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && os.Getenv("NO_COLOR") == "",
		SupportsUnicode: isTTY && os.Getenv("QAFLOW_ASCII") != "1",
	}
}

// Symbols is the glyph set used for step outcomes.
type Symbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // index into spinner.CharSets
}

// SelectSymbols picks glyphs for the detected capabilities.
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
	}
	return Symbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
}
