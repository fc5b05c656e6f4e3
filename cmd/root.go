package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitcorpus",
		Usage:   "Extract per-commit diff statistics from Git repositories into a gzip JSON-lines corpus",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ExtractCmd(),
			ShowCmd(),
		},
		Flags:  append([]cli.Flag{configFlag()}, extractFlags()...),
		Action: defaultAction,
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
	}
}

// extractFlags are shared by the extract command and the root command.
func extractFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "repos",
			Usage: "Repository path (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "parent-dir",
			Usage: "Directory whose git subdirectories are processed (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file, gzip-compressed JSON lines (\"-\" for stdout) (default: commits.json.gz)",
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of commits written per batch (default: 10000)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of concurrent commit workers (default: 10 x CPUs)",
		},
		&cli.IntFlag{
			Name:  "queue-size",
			Usage: "Maximum number of records waiting to be written (default: 4096)",
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
			Name:  "no-progress",
			Usage: "Disable progress bars",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// defaultAction runs extract when repositories are given on the root command.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 && len(c.StringSlice("repos")) == 0 && len(c.StringSlice("parent-dir")) == 0 {
		return cli.ShowAppHelp(c)
	}
	return extractAction(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
