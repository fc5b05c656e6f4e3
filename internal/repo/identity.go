package repo

import (
	"path/filepath"
	"regexp"

	gogit "github.com/go-git/go-git/v5"

	"github.com/masmgr/gitcorpus/internal/git"
)

const unknownOrg = "unknown"

// hostPatterns extract org and repo from https and scp-style remote URLs.
var hostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`gitlab\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`bitbucket\.org[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`),
}

// ParseRemoteURL returns the org and repo of a hosted remote URL.
func ParseRemoteURL(url string) (org, name string, ok bool) {
	for _, p := range hostPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}

// identify reads the origin remote and falls back to the directory layout.
func identify(r *gogit.Repository, path string) git.RepoMeta {
	if remote, err := r.Remote("origin"); err == nil {
		for _, url := range remote.Config().URLs {
			if org, name, ok := ParseRemoteURL(url); ok {
				return git.RepoMeta{Path: path, Org: org, Repo: name}
			}
		}
	}
	return metaFromPath(path)
}

// metaFromPath uses the parent directory as org and the directory as repo.
func metaFromPath(path string) git.RepoMeta {
	clean := filepath.Clean(path)
	name := filepath.Base(clean)
	parent := filepath.Dir(clean)

	org := filepath.Base(parent)
	if parent == clean || org == string(filepath.Separator) || org == "." || org == "" {
		org = unknownOrg
	}
	return git.RepoMeta{Path: path, Org: org, Repo: name}
}
