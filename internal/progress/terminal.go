// Package progress shows a spinner on stderr while a long call is in flight.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the progress stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsSpinner bool
	SupportsUnicode bool
}

// DetectTerminalCapabilities inspects f and the NO_COLOR and GITLOGUE_ASCII variables.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))
	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("GITLOGUE_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsSpinner: isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// charSet picks a spinner character set from briandowns/spinner.CharSets.
func (c TerminalCapabilities) charSet() int {
	if c.SupportsUnicode {
		return 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	}
	return 9 // | / - \
}
