package git

import (
	"context"
	"fmt"
	"strings"
)

// Client issues the two history queries the extractor needs.
type Client struct {
	runner CommandRunner
}

// NewClient wraps a CommandRunner.
func NewClient(runner CommandRunner) *Client {
	return &Client{runner: runner}
}

// ListCommitsArgs lists every commit hash, oldest first, merges included.
var ListCommitsArgs = []string{"log", "--reverse", "--pretty=%H"}

// ShowCommitArgs returns the arguments printing the header, raw change listing and
// zero-context patch of one commit.
func ShowCommitArgs(hash string) []string {
	return []string{
		"show",
		"--raw",
		"--pretty=" + ShowFormat,
		"--patch",
		"--unified=0",
		hash,
	}
}

// ListCommits returns all commit hashes of the repository, oldest first.
func (c *Client) ListCommits(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.runner.Run(ctx, repoPath, ListCommitsArgs...)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}

	var hashes []string
	for _, line := range strings.Split(out, "\n") {
		if h := strings.TrimSpace(line); h != "" {
			hashes = append(hashes, h)
		}
	}
	return hashes, nil
}

// ShowCommit returns the raw output describing one commit.
func (c *Client) ShowCommit(ctx context.Context, repoPath, hash string) (string, error) {
	out, err := c.runner.Run(ctx, repoPath, ShowCommitArgs(hash)...)
	if err != nil {
		return "", fmt.Errorf("show %s: %w", hash, err)
	}
	if out == "" {
		return "", fmt.Errorf("show %s: %w", hash, ErrEmptyOutput)
	}
	return out, nil
}
