package git

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// rawChangePattern matches one git --raw descriptor (without -z):
// :old_mode new_mode old_sha new_sha status[score]<ws>path[\tnew_path]
// Older git versions append "..." to abbreviated object names.
var rawChangePattern = regexp.MustCompile(
	`^:([0-7]+)\s+([0-7]+)\s+([0-9a-f]+)(?:\.\.\.)?\s+([0-9a-f]+)(?:\.\.\.)?\s+([A-Z])(\d*)\s+(.+)$`)

// ChangeSet holds a commit's file changes in first-seen order.
// Each entry is stored once; byPath and byOldPath map paths to its index.
type ChangeSet struct {
	entries   []FileChange
	analyzed  []bool
	byPath    map[string]int
	byOldPath map[string]int
}

func newChangeSet() *ChangeSet {
	return &ChangeSet{
		byPath:    make(map[string]int),
		byOldPath: make(map[string]int),
	}
}

// add registers fc unless its final path is already present.
func (s *ChangeSet) add(fc FileChange) bool {
	if _, exists := s.byPath[fc.Path]; exists {
		return false
	}
	id := len(s.entries)
	s.entries = append(s.entries, fc)
	s.analyzed = append(s.analyzed, false)
	s.byPath[fc.Path] = id
	if old := fc.OldPathOrEmpty(); old != "" {
		if _, exists := s.byOldPath[old]; !exists {
			s.byOldPath[old] = id
		}
	}
	return true
}

// lookup finds the entry whose final path, or failing that whose old path, equals p.
func (s *ChangeSet) lookup(p string) (int, bool) {
	if id, ok := s.byPath[p]; ok {
		return id, true
	}
	id, ok := s.byOldPath[p]
	return id, ok
}

// Len returns the number of file changes.
func (s *ChangeSet) Len() int {
	return len(s.entries)
}

// Changes returns a copy of the file changes in first-seen order.
func (s *ChangeSet) Changes() []FileChange {
	out := make([]FileChange, len(s.entries))
	copy(out, s.entries)
	return out
}

// ExtractChanges parses the raw change listing at the start of a commit body.
// Parsing stops at the first diff section. Descriptors that do not match the
// expected grammar are counted in skipped and otherwise ignored.
func ExtractChanges(body string) (set *ChangeSet, skipped int) {
	set = newChangeSet()
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "diff ") {
			break
		}
		if !strings.HasPrefix(line, ":") {
			continue
		}
		fc, ok := parseChangeLine(strings.TrimRight(line, "\r"))
		if !ok {
			skipped++
			continue
		}
		set.add(fc)
	}
	return set, skipped
}

// parseChangeLine converts one descriptor into a FileChange skeleton.
func parseChangeLine(line string) (FileChange, bool) {
	m := rawChangePattern.FindStringSubmatch(line)
	if m == nil {
		return FileChange{}, false
	}

	status := m[5][0]
	paths := strings.Split(m[7], "\t")

	var oldPath, newPath string
	if len(paths) >= 2 {
		oldPath = unquotePath(paths[0])
		newPath = unquotePath(paths[1])
	} else {
		newPath = unquotePath(paths[0])
	}

	fc := FileChange{
		ChangeType: changeTypeFromStatus(status),
		Path:       newPath,
	}
	if fc.Path == "" {
		fc.Path = oldPath
	}
	if oldPath != "" && oldPath != fc.Path {
		old := oldPath
		fc.OldPath = &old
	}

	fc.Extension = fileExtension(newPath)
	if newPath == "" {
		fc.Extension = fileExtension(oldPath)
	}
	return fc, fc.Path != ""
}

// fileExtension returns the suffix of the last path element, including the dot.
// Names whose only dot is leading or trailing have no extension.
func fileExtension(p string) string {
	if p == "" {
		return ""
	}
	name := path.Base(p)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// unquotePath undoes git's C-style quoting of unusual path names.
func unquotePath(p string) string {
	if len(p) < 2 || p[0] != '"' || p[len(p)-1] != '"' {
		return p
	}
	if s, err := strconv.Unquote(p); err == nil {
		return s
	}
	return p
}
