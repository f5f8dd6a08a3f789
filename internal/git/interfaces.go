package git

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	apperr "github.com/masmgr/gitlogue/internal/errors"
)

// CommitSource lists recent commits of a repository.
// This abstraction allows for easier testing and alternative engines.
type CommitSource interface {
	// IsRepository reports whether the configured path is inside a work tree.
	IsRepository(ctx context.Context) bool
	// FetchCommits returns the last n commits, newest first.
	FetchCommits(ctx context.Context, n int) ([]CommitRecord, error)
}

// Compile-time interface conformance checks.
var (
	_ CommitSource = (*CLIReader)(nil)
	_ CommitSource = (*GoGitReader)(nil)
)

// NewCommitSource creates the commit source for the given engine.
func NewCommitSource(engine Engine, opts ReadOptions) (CommitSource, error) {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}

	switch engine {
	case EngineCLI, "":
		return NewCLIReader(opts), nil
	case EngineGoGit:
		return NewGoGitReader(opts), nil
	default:
		return nil, apperr.New(apperr.Configuration,
			fmt.Sprintf("unknown engine %q", engine),
			fmt.Sprintf("use one of: %s, %s", EngineCLI, EngineGoGit))
	}
}

func validatePatterns(groups ...[]string) error {
	for _, patterns := range groups {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return apperr.New(apperr.Configuration, fmt.Sprintf("invalid glob pattern %q", p))
			}
		}
	}
	return nil
}

func checkCount(n int) error {
	if n <= 0 {
		return apperr.New(apperr.InvalidArgument, fmt.Sprintf("commit count must be positive, got %d", n))
	}
	return nil
}

func emptyLog(opts ReadOptions) []CommitRecord {
	opts.warn("No recent commits found.")
	return []CommitRecord{NoRecentCommits}
}
