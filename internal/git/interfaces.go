package git

import (
	"context"
	"io"
	"log/slog"
)

// CommandRunner executes git against a repository.
// This abstraction allows the extraction pipeline to be tested without a git binary.
type CommandRunner interface {
	// Run executes git with args in repoPath and returns its standard output.
	// A non-zero exit status is reported as an error wrapping ErrCommandFailed.
	Run(ctx context.Context, repoPath string, args ...string) (string, error)
}

// CommitSource lists and shows commits of a repository.
type CommitSource interface {
	ListCommits(ctx context.Context, repoPath string) ([]string, error)
	ShowCommit(ctx context.Context, repoPath, hash string) (string, error)
}

// Compile-time interface conformance checks.
var (
	_ CommandRunner = (*CLIRunner)(nil)
	_ CommandRunner = (*MockRunner)(nil)
	_ CommitSource  = (*Client)(nil)
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
