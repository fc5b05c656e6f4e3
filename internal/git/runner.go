package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// CLIRunner runs the git executable found on PATH (or Binary, when set).
type CLIRunner struct {
	Binary string
}

// NewCLIRunner creates a runner for the given git binary; "" means "git".
func NewCLIRunner(binary string) *CLIRunner {
	return &CLIRunner{Binary: binary}
}

func (r *CLIRunner) binary() string {
	if r.Binary == "" {
		return "git"
	}
	return r.Binary
}

// Run executes git and returns stdout. Invalid UTF-8 is replaced, never rejected,
// so commits touching binary or legacy-encoded content still parse.
func (r *CLIRunner) Run(ctx context.Context, repoPath string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath, "-c", "core.quotePath=false"}, args...)
	cmd := exec.CommandContext(ctx, r.binary(), fullArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: git %s: %s", ErrCommandFailed, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%w: could not execute git (is git installed and in PATH?): %v", ErrCommandFailed, err)
	}

	return toValidUTF8(out), nil
}

func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
}
