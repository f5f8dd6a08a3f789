package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	apperr "github.com/masmgr/gitlogue/internal/errors"
	"github.com/masmgr/gitlogue/internal/git"
	"github.com/masmgr/gitlogue/internal/output"
)

const undefinedFlagPrefix = "flag provided but not defined: -"

// generateAction validates, fetches, condenses, requests and emits.
func generateAction(c *cli.Context, deps Dependencies) error {
	if c.Bool("verbose") {
		enableDebugLogging(deps.Stderr)
		defer disableDebugLogging()
	}

	ctx := c.Context
	cc, err := NewCommandContext(c, deps)
	if err != nil {
		return err
	}

	if !cc.Source.IsRepository(ctx) {
		return apperr.New(apperr.NotARepository,
			fmt.Sprintf("%s is not inside a Git repository", cc.RepoPath),
			"Run gitlogue from a Git working tree or pass --repo <path>",
		)
	}

	n, err := parseCommitCount(c.Args().Slice())
	if err != nil {
		return err
	}

	start := time.Now()
	commits, err := cc.Source.FetchCommits(ctx, n)
	if err != nil {
		return err
	}

	lines := git.Lines(commits)
	if cc.Config.Condense.Enabled {
		lines = cc.Config.Condenser().Condense(lines)
	}

	indicator := deps.Progress()
	indicator.Start("Generating changelog...")
	doc, err := cc.Requestor.RequestChangelog(ctx, lines)
	indicator.Stop()
	if err != nil {
		return err
	}

	if err := output.NewChangelogWriter(deps.Stdout).Emit(doc, cc.Config.Output); err != nil {
		return err
	}
	if c.Bool("verbose") {
		fmt.Fprintf(deps.Stderr, "\nCompleted in %s (%d commits, %d prompt lines)\n", time.Since(start), len(commits), len(lines))
	}
	return nil
}

// parseCommitCount requires exactly one argument holding a positive decimal integer.
func parseCommitCount(args []string) (int, error) {
	if len(args) != 1 {
		return 0, apperr.NewArgumentError(
			fmt.Sprintf("expected exactly one argument, got %d", len(args)), usageText)
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || n <= 0 {
		return 0, invalidCountError(args[0])
	}
	return n, nil
}

func invalidCountError(arg string) error {
	return apperr.NewArgumentError(
		fmt.Sprintf("please provide a valid positive integer for the number of commits, got %q", arg),
		usageText)
}

// usageError converts flag parsing failures into argument errors. A negative count
// such as -3 reaches the flag parser as an undefined flag.
func usageError(err error) error {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, undefinedFlagPrefix); ok {
		if _, convErr := strconv.Atoi(name); convErr == nil {
			return invalidCountError("-" + name)
		}
	}
	return apperr.NewArgumentError(msg, usageText)
}
