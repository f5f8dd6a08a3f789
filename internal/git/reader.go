package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitReader lists commits with go-git, without requiring the git executable.
type GoGitReader struct {
	opts ReadOptions
}

// NewGoGitReader creates a new go-git backed reader.
func NewGoGitReader(opts ReadOptions) *GoGitReader {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	return &GoGitReader{opts: opts}
}

// open finds the repository, walking up from RepoPath like git does.
func (r *GoGitReader) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(r.opts.RepoPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", r.opts.RepoPath, err)
	}
	return repo, nil
}

// IsRepository reports whether RepoPath is inside a non-bare repository.
func (r *GoGitReader) IsRepository(_ context.Context) bool {
	repo, err := r.open()
	if err != nil {
		logDebug("[go-git] IsRepository(%s): %v", r.opts.RepoPath, err)
		return false
	}
	_, err = repo.Worktree()
	result := err == nil
	logDebug("[go-git] IsRepository(%s): %v", r.opts.RepoPath, result)
	return result
}

// FetchCommits walks the log in committer-time order and keeps the first n commits.
func (r *GoGitReader) FetchCommits(ctx context.Context, n int) ([]CommitRecord, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	repo, err := r.open()
	if err != nil {
		return nil, fetchFailure(err)
	}

	from, err := r.resolveStart(repo)
	if errors.Is(err, plumbing.ErrReferenceNotFound) && r.opts.revision() == "" {
		logDebug("[go-git] HEAD is unborn, repository has no commits")
		return emptyLog(r.opts), nil
	}
	if err != nil {
		return nil, fetchFailure(err)
	}

	logOpts := &git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	}
	if len(r.opts.Include) > 0 || len(r.opts.Exclude) > 0 {
		logOpts.PathFilter = r.matchesFilters
	}

	cIter, err := repo.Log(logOpts)
	if err != nil {
		return nil, fetchFailure(err)
	}
	defer cIter.Close()

	records := make([]CommitRecord, 0, n)
	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Extract first line of commit message
		message := c.Message
		if idx := strings.IndexByte(message, '\n'); idx != -1 {
			message = message[:idx]
		}

		records = append(records, CommitRecord{
			ShortHash: c.Hash.String()[:ShortHashLength],
			Subject:   strings.TrimSpace(message),
			When:      c.Committer.When,
		})

		if len(records) >= n {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fetchFailure(err)
	}
	logDebug("[go-git] log returned %d commits", len(records))

	if len(records) == 0 {
		return emptyLog(r.opts), nil
	}
	return records, nil
}

func (r *GoGitReader) resolveStart(repo *git.Repository) (plumbing.Hash, error) {
	rev := r.opts.revision()
	if rev == "" {
		ref, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return ref.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return *hash, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *GoGitReader) matchesFilters(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range r.opts.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(r.opts.Include) == 0 {
		return true
	}

	for _, pattern := range r.opts.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
