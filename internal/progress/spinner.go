package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Indicator reports that work is in progress.
type Indicator interface {
	Start(message string)
	Stop()
}

// New returns a spinner writing to stderr when stderr supports it, and a no-op otherwise.
func New() Indicator {
	caps := DetectTerminalCapabilities(os.Stderr)
	if !caps.SupportsSpinner {
		return Noop{}
	}
	return NewSpinner(os.Stderr, caps)
}

// Spinner wraps briandowns/spinner.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner that renders to w.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	s := spinner.New(spinner.CharSets[caps.charSet()], spinnerInterval, spinner.WithWriter(w))
	return &Spinner{s: s}
}

// Start begins animating with message as suffix.
func (p *Spinner) Start(message string) {
	p.s.Suffix = " " + message
	p.s.Start()
}

// Stop halts the animation and clears the line.
func (p *Spinner) Stop() {
	p.s.Stop()
}

// Noop satisfies Indicator without output.
type Noop struct{}

func (Noop) Start(string) {}
func (Noop) Stop()        {}
