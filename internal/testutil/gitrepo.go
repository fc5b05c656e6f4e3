// Package testutil builds throwaway git repositories for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a go-git repository rooted in a test temp dir.
type Repo struct {
	Dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	tb   testing.TB
}

// RequireGit skips the test when no git executable is available.
func RequireGit(tb testing.TB) {
	tb.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		tb.Skip("git executable not found in PATH")
	}
}

// NewRepo initializes an empty repository in dir, or in a fresh temp dir when dir is "".
func NewRepo(tb testing.TB, dir string) *Repo {
	tb.Helper()

	if dir == "" {
		dir = tb.TempDir()
	}
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &Repo{Dir: dir, repo: repo, wt: wt, tb: tb}
}

// Write creates or overwrites rel with content and stages it.
func (r *Repo) Write(rel, content string) {
	r.tb.Helper()
	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

// Remove deletes rel from the worktree and the index.
func (r *Repo) Remove(rel string) {
	r.tb.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.tb.Fatalf("Remove: %v", err)
	}
}

// Commit records the staged changes and returns the commit hash.
func (r *Repo) Commit(msg, author string, when time.Time) string {
	r.tb.Helper()
	sig := &object.Signature{Name: author, Email: "test@example.com", When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

// SetOrigin adds an "origin" remote with the given URL.
func (r *Repo) SetOrigin(url string) {
	r.tb.Helper()
	if _, err := r.repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{url}}); err != nil {
		r.tb.Fatalf("CreateRemote: %v", err)
	}
}
