package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/masmgr/gitcorpus/internal/extract"
	"github.com/masmgr/gitcorpus/internal/git"
	"github.com/masmgr/gitcorpus/internal/output"
	"github.com/masmgr/gitcorpus/internal/repo"
)

// ErrNoRepositories is returned when no valid repository was found in the inputs.
var ErrNoRepositories = errors.New("no repositories provided; use --repos and/or --parent-dir")

// ExtractCmd creates the extract command.
func ExtractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Write one JSON record per commit of every repository to a gzip corpus",
		ArgsUsage: "[repository path...]",
		Flags:     append(extractFlags(), configFlag()),
		Action:    extractAction,
	}
}

func extractAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	stderr := c.App.ErrWriter
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := newLogger(stderr, c.Bool("verbose"))

	filter, err := newPathFilter(cfg)
	if err != nil {
		return err
	}

	repos := openRepositories(append(c.StringSlice("repos"), c.Args().Slice()...), c.StringSlice("parent-dir"), stderr)
	if len(repos) == 0 {
		return ErrNoRepositories
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dst, err := output.OpenOutput(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer dst.Close()

	writer, err := output.NewBatchWriter(dst, output.BatchWriterOptions{
		BatchSize:        cfg.Output.BatchSize,
		CompressionLevel: cfg.Output.CompressionLevel,
		OnFlush: func(total int) {
			logger.Info("batch written", "records", total, "output", cfg.Output.Path)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	workers := cfg.Extract.WorkerCount(runtime.NumCPU())
	fmt.Fprintf(stderr, "Processing %d repositories (batch size: %d, workers: %d)...\n",
		len(repos), cfg.Output.BatchSize, workers)

	client := git.NewClient(git.NewCLIRunner(cfg.Git.Binary))
	summary, err := extract.Run(ctx, client, repos, writer, extract.Options{
		Workers:   workers,
		QueueSize: cfg.Extract.QueueSize,
		Filter:    filter,
		Logger:    logger,
		Progress:  !c.Bool("no-progress") && term.IsTerminal(int(os.Stderr.Fd())),
		Status:    stderr,
	})
	if err != nil {
		return err
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	if summary.Interrupted {
		color.New(color.FgYellow).Fprintln(stderr, "Interrupted; records extracted so far were written.")
	}
	return printSummary(stderr, summary, cfg.Output.Path)
}

// openRepositories resolves and validates the inputs, warning about anything skipped.
func openRepositories(paths, parentDirs []string, warn io.Writer) []repo.Repository {
	var repos []repo.Repository
	for _, p := range repo.Resolve(paths, parentDirs, warn) {
		r, err := repo.Open(p)
		if err != nil {
			color.New(color.FgYellow).Fprintf(warn, "Warning: %s is not a git repository. Skipping.\n", p)
			continue
		}
		repos = append(repos, r)
	}
	return repos
}
