package cmd

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitcorpus/internal/git"
	"github.com/masmgr/gitcorpus/internal/output"
	"github.com/masmgr/gitcorpus/internal/repo"
)

// ShowCmd creates the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the record of a single commit as indented JSON",
		ArgsUsage: "<commit>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Glob patterns to include (can be specified multiple times)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob patterns to exclude (can be specified multiple times)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			configFlag(),
		},
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one commit, got %d arguments", c.NArg())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	filter, err := newPathFilter(cfg)
	if err != nil {
		return err
	}

	paths := repo.Resolve([]string{c.String("repo")}, nil, io.Discard)
	r, err := repo.Open(paths[0])
	if err != nil {
		return err
	}

	hash, err := r.ResolveRevision(c.Args().First())
	if err != nil {
		return err
	}

	client := git.NewClient(git.NewCLIRunner(cfg.Git.Binary))
	raw, err := client.ShowCommit(c.Context, r.Path, hash)
	if err != nil {
		return err
	}

	rec, err := git.ParseCommit(hash, raw, r.Meta, git.ParseOptions{
		Filter: filter,
		Logger: newLogger(c.App.ErrWriter, c.Bool("verbose")),
	})
	if err != nil {
		return err
	}
	return output.WriteRecordJSON(c.App.Writer, rec)
}
