package errors

import (
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg   = color.New(color.FgRed).SprintFunc()
	kindFmt    = color.New(color.FgYellow).SprintFunc()
	fixLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet     = color.New(color.FgGreen).SprintFunc()
	usageLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText  = color.New(color.FgCyan).SprintFunc()
)

// Format renders err for the terminal. Colors follow color.NoColor.
func Format(err error) string {
	return format(err, !color.NoColor)
}

// FormatPlain renders err without colors.
func FormatPlain(err error) string {
	return format(err, false)
}

// format prints the outermost message so context added by callers is kept,
// while kind and remediation come from the classified error in the chain.
func format(err error, useColors bool) string {
	if err == nil {
		return ""
	}

	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(paint(errorLabel, "Error"))

	e, classified := As(err)
	if classified && e.Kind != Unknown {
		sb.WriteString(" [")
		sb.WriteString(paint(kindFmt, e.Kind.String()))
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	sb.WriteString(paint(errorMsg, err.Error()))
	sb.WriteString("\n")

	if classified && len(e.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range e.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "-"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatUsage renders the usage line of an argument error, or "" when there is none.
func FormatUsage(err error) string {
	e, ok := As(err)
	if !ok || e.Usage == "" {
		return ""
	}
	if color.NoColor {
		return "Usage: " + e.Usage + "\n"
	}
	return usageLabel("Usage: ") + usageText(e.Usage) + "\n"
}
