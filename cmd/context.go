package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlogue/config"
	apperr "github.com/masmgr/gitlogue/internal/errors"
	"github.com/masmgr/gitlogue/internal/git"
	"github.com/masmgr/gitlogue/internal/llm"
)

// CommandContext holds the state shared by a generate run.
// Building it fails before any repository or network access when configuration
// or the credential is missing.
type CommandContext struct {
	Config    *config.Config
	RepoPath  string
	Source    git.CommitSource
	Requestor *llm.Requestor
}

// NewCommandContext loads configuration, then builds the requestor and the commit source.
func NewCommandContext(c *cli.Context, deps Dependencies) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	warn := warnFunc(deps.Stderr)

	opts := []llm.Option{llm.WithWarn(warn)}
	if deps.HTTPClient != nil {
		opts = append(opts, llm.WithHTTPClient(deps.HTTPClient))
	}
	requestor, err := llm.NewRequestor(cfg.LLM(), opts...)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	source, err := deps.NewSource(git.Engine(cfg.Engine), git.ReadOptions{
		RepoPath: repoPath,
		Branch:   cfg.Branch,
		Include:  cfg.Filters.Include,
		Exclude:  cfg.Filters.Exclude,
		Warn:     warn,
	})
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:    cfg,
		RepoPath:  repoPath,
		Source:    source,
		Requestor: requestor,
	}, nil
}

// loadConfig loads configuration and applies flags that were set explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"engine": "engine",
		"branch": "branch",
		"output": "output",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.String(flag)
		}
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		overrides["filters.include"] = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		overrides["filters.exclude"] = excludes
	}
	if c.Bool("no-condense") {
		overrides["condense.enabled"] = false
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: c.String("config"),
		Overrides:  overrides,
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Configuration, "failed to load config",
			"Check .gitlogue.yml, the --config file and GITLOGUE_* variables")
	}
	return cfg, nil
}
