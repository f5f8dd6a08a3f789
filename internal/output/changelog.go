// Package output prints generated changelogs and persists them to disk.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const (
	// Banner precedes the document on the console.
	Banner = "Generated Changelog:"
	// DefaultPath is the file written when no output path is configured.
	DefaultPath = "changelog.md"

	fileMode = 0o644
)

// ChangelogWriter emits a changelog document to a console stream and a file.
type ChangelogWriter struct {
	Out io.Writer
}

// NewChangelogWriter creates a writer that prints to out, or stdout when out is nil.
func NewChangelogWriter(out io.Writer) *ChangelogWriter {
	if out == nil {
		out = os.Stdout
	}
	return &ChangelogWriter{Out: out}
}

// Print writes the banner followed by the document.
func (w *ChangelogWriter) Print(doc string) error {
	if _, err := color.New(color.FgGreen, color.Bold).Fprintln(w.Out, Banner); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.Out, strings.TrimRight(doc, "\n"))
	return err
}

// Save writes the document verbatim to path, replacing any existing file.
func (w *ChangelogWriter) Save(doc, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.WriteFile(path, []byte(doc), fileMode); err != nil {
		return fmt.Errorf("failed to write changelog to %s: %w", path, err)
	}
	return nil
}

// Emit prints the document, saves it and confirms the saved location.
// Nothing is confirmed when saving fails.
func (w *ChangelogWriter) Emit(doc, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := w.Print(doc); err != nil {
		return err
	}
	if err := w.Save(doc, path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w.Out, "Changelog saved to %s\n", path)
	return err
}
