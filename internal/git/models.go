package git

import (
	"strings"
	"time"
)

// ShortHashLength is the abbreviated hash width used by the go-git engine.
const ShortHashLength = 7

// TimestampLayout is how commit timestamps appear in prompt lines.
const TimestampLayout = "2006-01-02 15:04:05 -0700"

// CommitRecord represents a single commit as listed by the log.
type CommitRecord struct {
	ShortHash string
	Subject   string
	When      time.Time // zero when the source did not report a timestamp
}

// NoRecentCommits is returned in place of an empty log.
var NoRecentCommits = CommitRecord{Subject: "No recent commits found"}

// IsSentinel reports whether the record is the empty-log placeholder.
func (c CommitRecord) IsSentinel() bool {
	return c == NoRecentCommits
}

// Line renders the record as a single prompt line.
func (c CommitRecord) Line() string {
	if c.IsSentinel() {
		return c.Subject
	}

	var b strings.Builder
	b.WriteString("- ")
	if !c.When.IsZero() {
		b.WriteString("**")
		b.WriteString(c.When.Format(TimestampLayout))
		b.WriteString("** | ")
	}
	if c.ShortHash != "" {
		b.WriteString("`")
		b.WriteString(c.ShortHash)
		b.WriteString("`: ")
	}
	b.WriteString(c.Subject)
	return b.String()
}

// Lines renders every record with Line, keeping order.
func Lines(records []CommitRecord) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Line())
	}
	return lines
}

// Engine selects the commit source implementation.
type Engine string

const (
	EngineCLI   Engine = "cli"
	EngineGoGit Engine = "go-git"
)

// ReadOptions configures a commit source.
type ReadOptions struct {
	RepoPath string
	Branch   string   // revision to list from; empty means HEAD
	Include  []string // Glob patterns a commit must touch
	Exclude  []string // Glob patterns ignored when matching paths

	// Warn receives non-fatal conditions such as an empty log.
	Warn func(msg string)
}

func (o ReadOptions) warn(msg string) {
	if o.Warn != nil {
		o.Warn(msg)
	}
}

func (o ReadOptions) revision() string {
	rev := strings.TrimSpace(o.Branch)
	if strings.EqualFold(rev, "HEAD") {
		return ""
	}
	return rev
}
