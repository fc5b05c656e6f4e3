package repo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gitcorpus/internal/git"
)

// Repository is a validated repository ready for extraction.
type Repository struct {
	Path string
	Meta git.RepoMeta
}

// Name returns "org/repo" for display.
func (r Repository) Name() string {
	return r.Meta.Org + "/" + r.Meta.Repo
}

// Resolve turns explicit repository paths and parent directories into a
// deduplicated list of absolute paths. Explicit paths come first, in the
// order given; children of each parent directory follow in name order.
// Problems with parent directories are reported to warn and skipped.
func Resolve(repos, parentDirs []string, warn io.Writer) []string {
	var (
		paths []string
		seen  = make(map[string]bool)
	)

	add := func(p string) {
		resolved := canonicalPath(p)
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		paths = append(paths, resolved)
	}

	for _, p := range repos {
		add(expandHome(p))
	}

	for _, parent := range parentDirs {
		dir := canonicalPath(expandHome(parent))
		info, err := os.Stat(dir)
		if err != nil {
			fmt.Fprintf(warn, "Warning: parent directory '%s' does not exist. Skipping.\n", parent)
			continue
		}
		if !info.IsDir() {
			fmt.Fprintf(warn, "Warning: '%s' is not a directory. Skipping.\n", parent)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Fprintf(warn, "Warning: cannot read '%s': %v. Skipping.\n", parent, err)
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, e := range entries {
			child := filepath.Join(dir, e.Name())
			if isDir(filepath.Join(child, ".git")) {
				add(child)
			}
		}
	}

	return paths
}

// Open validates path as a git repository and identifies it.
func Open(path string) (Repository, error) {
	r, err := gogit.PlainOpen(path)
	if err != nil {
		return Repository{}, fmt.Errorf("open repository %s: %w", path, err)
	}
	return Repository{Path: path, Meta: identify(r, path)}, nil
}

// canonicalPath makes p absolute and resolves symlinks when possible.
func canonicalPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// ResolveRevision expands rev (an abbreviated hash, branch or tag) to a full commit hash.
func (r Repository) ResolveRevision(rev string) (string, error) {
	gr, err := gogit.PlainOpen(r.Path)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", r.Path, err)
	}
	hash, err := gr.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", rev, err)
	}
	return hash.String(), nil
}
