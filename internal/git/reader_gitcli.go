package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperr "github.com/masmgr/gitlogue/internal/errors"
)

// Fields are separated by 0x1f (unit separator); %s never contains a newline,
// so each commit is exactly one line.
const logFormat = "%h%x1f%s%x1f%cI"

const fieldSep = "\x1f"

// CLIReader lists commits by running the git executable.
type CLIReader struct {
	opts ReadOptions
	bin  string
}

// NewCLIReader creates a reader that shells out to git.
func NewCLIReader(opts ReadOptions) *CLIReader {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	return &CLIReader{opts: opts, bin: "git"}
}

// IsRepository runs `git rev-parse --is-inside-work-tree`.
func (r *CLIReader) IsRepository(ctx context.Context) bool {
	out, err := r.run(ctx, "rev-parse", "--is-inside-work-tree")
	result := err == nil && strings.TrimSpace(string(out)) == "true"
	logDebug("[git] IsRepository(%s): %v", r.opts.RepoPath, result)
	return result
}

// FetchCommits runs `git log -n <n>` and parses its delimited output.
func (r *CLIReader) FetchCommits(ctx context.Context, n int) ([]CommitRecord, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	rev := r.opts.revision()
	if rev == "" {
		born, err := r.hasHead(ctx)
		if err != nil {
			return nil, fetchFailure(err)
		}
		if !born {
			logDebug("[git] HEAD is unborn, repository has no commits")
			return emptyLog(r.opts), nil
		}
	}

	args := []string{
		"log",
		"-n", strconv.Itoa(n),
		"--no-color",
		"--pretty=format:" + logFormat,
	}
	if rev != "" {
		args = append(args, rev)
	}
	if specs := pathspecs(r.opts.Include, r.opts.Exclude); len(specs) > 0 {
		args = append(args, "--")
		args = append(args, specs...)
	}

	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, fetchFailure(err)
	}

	records, err := parseLogOutput(out)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CommitFetchFailure, "unexpected git log output")
	}
	logDebug("[git] git log returned %d commits", len(records))

	if len(records) == 0 {
		return emptyLog(r.opts), nil
	}
	return records, nil
}

// hasHead reports whether HEAD resolves to a commit. An unborn branch is not an error.
func (r *CLIReader) hasHead(ctx context.Context) (bool, error) {
	_, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	// --quiet exits 1 without output when the ref does not exist;
	// anything else (128: not a repository) is a real failure.
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}

func (r *CLIReader) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-C", r.opts.RepoPath}, args...)
	logDebug("[git] %s %s", r.bin, strings.Join(full, " "))

	cmd := exec.CommandContext(ctx, r.bin, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, &gitError{err: err, stderr: msg}
		}
		return out, err
	}
	return out, nil
}

// gitError keeps git's stderr next to the exit status.
type gitError struct {
	err    error
	stderr string
}

func (e *gitError) Error() string {
	return fmt.Sprintf("%v: %s", e.err, e.stderr)
}

func (e *gitError) Unwrap() error {
	return e.err
}

func fetchFailure(err error) error {
	return apperr.Wrap(err, apperr.CommitFetchFailure,
		"failed to retrieve commits",
		"make sure the directory is a Git repository",
		"make sure git is installed and on PATH")
}

func parseLogOutput(out []byte) ([]CommitRecord, error) {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	records := make([]CommitRecord, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, fieldSep, 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("unexpected git log line %q", line)
		}

		record := CommitRecord{
			ShortHash: fields[0],
			Subject:   fields[1],
		}
		if len(fields) == 3 && fields[2] != "" {
			when, err := time.Parse(time.RFC3339, fields[2])
			if err != nil {
				return nil, fmt.Errorf("parse committer date: %w", err)
			}
			record.When = when
		}

		records = append(records, record)
	}

	return records, nil
}

// pathspecs converts include/exclude globs into git magic pathspecs.
func pathspecs(include, exclude []string) []string {
	specs := make([]string, 0, len(include)+len(exclude))
	for _, p := range include {
		specs = append(specs, ":(glob)"+p)
	}
	for _, p := range exclude {
		specs = append(specs, ":(exclude,glob)"+p)
	}
	return specs
}
