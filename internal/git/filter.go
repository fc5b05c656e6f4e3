package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter restricts which file changes are kept in a commit record.
// An empty filter keeps everything.
type PathFilter struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}

// NewPathFilter validates the patterns and returns a filter.
func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &PathFilter{Include: include, Exclude: exclude}, nil
}

// Empty reports whether the filter keeps every path.
func (f *PathFilter) Empty() bool {
	return f == nil || (len(f.Include) == 0 && len(f.Exclude) == 0)
}

// Match checks if a path matches the include/exclude filters.
func (f *PathFilter) Match(path string) bool {
	if f.Empty() {
		return true
	}

	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

// Apply returns the changes whose final or previous path passes the filter.
func (f *PathFilter) Apply(changes []FileChange) []FileChange {
	if f.Empty() {
		return changes
	}
	kept := changes[:0]
	for _, fc := range changes {
		if f.Match(fc.Path) || (fc.OldPath != nil && f.Match(*fc.OldPath)) {
			kept = append(kept, fc)
		}
	}
	return kept
}
