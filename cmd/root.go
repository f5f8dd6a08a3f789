package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	apperr "github.com/masmgr/gitlogue/internal/errors"
	"github.com/masmgr/gitlogue/internal/git"
	"github.com/masmgr/gitlogue/internal/llm"
	"github.com/masmgr/gitlogue/internal/progress"
)

const usageText = "gitlogue [flags] <number_of_commits>"

// Dependencies are the collaborators a run uses. Tests replace them.
type Dependencies struct {
	Stdout     io.Writer
	Stderr     io.Writer
	NewSource  func(engine git.Engine, opts git.ReadOptions) (git.CommitSource, error)
	HTTPClient *http.Client // nil uses a client built from config
	Progress   func() progress.Indicator
}

// DefaultDependencies wires the real git sources, stdout/stderr and the terminal spinner.
func DefaultDependencies() Dependencies {
	return Dependencies{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		NewSource: git.NewCommitSource,
		Progress:  progress.New,
	}
}

func (d Dependencies) withDefaults() Dependencies {
	def := DefaultDependencies()
	if d.Stdout == nil {
		d.Stdout = def.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = def.Stderr
	}
	if d.NewSource == nil {
		d.NewSource = def.NewSource
	}
	if d.Progress == nil {
		d.Progress = def.Progress
	}
	return d
}

// App creates the CLI application.
func App() *cli.App {
	return NewApp(DefaultDependencies())
}

// NewApp creates the CLI application around deps.
func NewApp(deps Dependencies) *cli.App {
	deps = deps.withDefaults()
	return &cli.App{
		Name:            "gitlogue",
		Usage:           "Generate a Markdown changelog from recent Git commits",
		UsageText:       usageText,
		ArgsUsage:       "<number_of_commits>",
		Version:         "1.0.0",
		HideHelpCommand: true,
		Writer:          deps.Stdout,
		ErrWriter:       deps.Stderr,
		Flags:           appFlags(),
		Action: func(c *cli.Context) error {
			return generateAction(c, deps)
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return usageError(err)
		},
		// Errors are reported once by run; urfave must not exit on its own.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Commit source (cli, go-git)",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Revision to read commits from (default: HEAD)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns a commit must touch (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to ignore (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Changelog file path (default: changelog.md)",
		},
		&cli.BoolFlag{
			Name:  "no-condense",
			Usage: "Send every commit individually even for long histories",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Print debug information to stderr",
		},
	}
}

// Run executes the CLI application and exits with its status.
func Run() {
	os.Exit(run(os.Args, DefaultDependencies()))
}

// run is the single boundary where failures are printed and turned into an exit status.
func run(args []string, deps Dependencies) int {
	deps = deps.withDefaults()

	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewApp(deps).RunContext(ctx, args); err != nil {
		reportError(deps, err)
		return 1
	}
	return 0
}

func reportError(deps Dependencies, err error) {
	fmt.Fprint(deps.Stderr, apperr.Format(err))
	if usage := apperr.FormatUsage(err); usage != "" {
		fmt.Fprint(deps.Stdout, usage)
	}
}

func enableDebugLogging(w io.Writer) {
	debug := color.New(color.FgHiBlack)
	logger := func(format string, args ...any) {
		debug.Fprintf(w, "[debug] "+format+"\n", args...)
	}
	git.SetDebugLogger(logger)
	llm.SetDebugLogger(logger)
}

func disableDebugLogging() {
	git.SetDebugLogger(nil)
	llm.SetDebugLogger(nil)
}

func warnFunc(w io.Writer) func(string) {
	warn := color.New(color.FgYellow)
	return func(msg string) {
		warn.Fprintf(w, "Warning: %s\n", msg)
	}
}
