package repo

import "testing"

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		url      string
		wantOrg  string
		wantRepo string
		wantOK   bool
	}{
		{"https://github.com/acme/widgets.git", "acme", "widgets", true},
		{"https://github.com/acme/widgets", "acme", "widgets", true},
		{"https://github.com/acme/widgets/", "acme", "widgets", true},
		{"git@github.com:acme/widgets.git", "acme", "widgets", true},
		{"git@gitlab.com:group/project", "group", "project", true},
		{"https://bitbucket.org/team/tool.git", "team", "tool", true},
		{"https://github.com/acme/digit", "acme", "digit", true},
		{"https://example.com/acme/widgets.git", "", "", false},
		{"/srv/git/widgets.git", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			org, name, ok := ParseRemoteURL(tt.url)
			if ok != tt.wantOK || org != tt.wantOrg || name != tt.wantRepo {
				t.Errorf("ParseRemoteURL(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.url, org, name, ok, tt.wantOrg, tt.wantRepo, tt.wantOK)
			}
		})
	}
}

func TestMetaFromPath(t *testing.T) {
	tests := []struct {
		path     string
		wantOrg  string
		wantRepo string
	}{
		{"/home/dev/acme/widgets", "acme", "widgets"},
		{"/home/dev/acme/widgets/", "acme", "widgets"},
		{"/widgets", "unknown", "widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			meta := metaFromPath(tt.path)
			if meta.Org != tt.wantOrg || meta.Repo != tt.wantRepo {
				t.Errorf("metaFromPath(%q) = %s/%s, want %s/%s", tt.path, meta.Org, meta.Repo, tt.wantOrg, tt.wantRepo)
			}
		})
	}
}
