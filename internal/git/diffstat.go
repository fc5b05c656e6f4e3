package git

import (
	"regexp"
	"strings"
)

const devNull = "/dev/null"

var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// AnalysisReport summarizes how diff sections were attributed.
type AnalysisReport struct {
	Sections  int
	Matched   int
	Unmatched []string // attribution paths with no file change
	Repeated  []string // paths whose file change already had statistics
}

// hunkStats accumulates counts for one diff section.
type hunkStats struct {
	linesAdded   int
	linesDeleted int
	hunksAdded   int
	hunksRemoved int
	hunksChanged int

	inHunk      bool
	hunkAdded   bool
	hunkDeleted bool
}

func (h *hunkStats) startHunk() {
	h.closeHunk()
	h.inHunk = true
}

// closeHunk classifies the open hunk, if any. Hunks with neither additions
// nor deletions are not counted.
func (h *hunkStats) closeHunk() {
	if !h.inHunk {
		return
	}
	switch {
	case h.hunkAdded && h.hunkDeleted:
		h.hunksChanged++
	case h.hunkAdded:
		h.hunksAdded++
	case h.hunkDeleted:
		h.hunksRemoved++
	}
	h.inHunk = false
	h.hunkAdded = false
	h.hunkDeleted = false
}

func (h *hunkStats) line(l string) {
	if !h.inHunk || l == "" {
		return
	}
	switch l[0] {
	case '+':
		h.linesAdded++
		h.hunkAdded = true
	case '-':
		h.linesDeleted++
		h.hunkDeleted = true
	}
}

func (h *hunkStats) applyTo(fc *FileChange) {
	fc.LinesAdded = h.linesAdded
	fc.LinesDeleted = h.linesDeleted
	fc.HunksAdded = h.hunksAdded
	fc.HunksRemoved = h.hunksRemoved
	fc.HunksChanged = h.hunksChanged
}

// AnalyzeDiff scans the unified-diff part of a commit body and writes line and
// hunk statistics into the matching entries of set. Each entry receives
// statistics at most once; sections that match no entry are reported and dropped.
func AnalyzeDiff(body string, set *ChangeSet) AnalysisReport {
	var (
		report  AnalysisReport
		current *hunkStats
		target  string
	)

	finish := func() {
		if current == nil {
			return
		}
		current.closeHunk()
		id, ok := set.lookup(target)
		switch {
		case !ok:
			report.Unmatched = append(report.Unmatched, target)
		case set.analyzed[id]:
			report.Repeated = append(report.Repeated, target)
		default:
			current.applyTo(&set.entries[id])
			set.analyzed[id] = true
			report.Matched++
		}
		current = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, "diff ") {
			finish()
			report.Sections++
			if p, ok := attributionPath(line); ok {
				current = &hunkStats{}
				target = p
			}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "@@") {
			if hunkHeaderPattern.MatchString(line) {
				current.startHunk()
			}
			continue
		}
		current.line(line)
	}
	finish()

	return report
}

// attributionPath returns the path a diff section is credited to: the "b" path
// unless it denotes no file, else the "a" path.
func attributionPath(marker string) (string, bool) {
	a, b, ok := parseSectionMarker(marker)
	if !ok {
		return "", false
	}
	if b != "" && b != devNull {
		return b, true
	}
	if a != "" && a != devNull {
		return a, true
	}
	return "", false
}

// parseSectionMarker splits "diff --git a/<old> b/<new>" into its two paths.
// Unprefixed "/dev/null" tokens are returned as-is. Combined diffs
// ("diff --cc") are not attributed.
func parseSectionMarker(marker string) (a, b string, ok bool) {
	rest, found := strings.CutPrefix(marker, "diff --git ")
	if !found {
		return "", "", false
	}

	if strings.HasPrefix(rest, `"`) || strings.HasSuffix(rest, `"`) {
		tokens, tok := splitQuotedTokens(rest)
		if !tok || len(tokens) != 2 {
			return "", "", false
		}
		return stripSidePrefix(tokens[0], "a/"), stripSidePrefix(tokens[1], "b/"), true
	}

	// Paths may contain spaces; prefer the split where both sides agree.
	var first = -1
	for i := 0; i+1 < len(rest); i++ {
		if rest[i] != ' ' {
			continue
		}
		left, right := rest[:i], rest[i+1:]
		if !isSideToken(left, "a/") || !isSideToken(right, "b/") {
			continue
		}
		if first == -1 {
			first = i
		}
		if stripSidePrefix(left, "a/") == stripSidePrefix(right, "b/") {
			return stripSidePrefix(left, "a/"), stripSidePrefix(right, "b/"), true
		}
	}
	if first == -1 {
		return "", "", false
	}
	return stripSidePrefix(rest[:first], "a/"), stripSidePrefix(rest[first+1:], "b/"), true
}

func isSideToken(tok, prefix string) bool {
	return strings.HasPrefix(tok, prefix) || tok == devNull
}

func stripSidePrefix(tok, prefix string) string {
	if tok == devNull {
		return tok
	}
	return strings.TrimPrefix(tok, prefix)
}

// splitQuotedTokens splits a marker tail where either side may be C-quoted.
func splitQuotedTokens(s string) ([]string, bool) {
	var tokens []string
	for len(s) > 0 {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			break
		}
		if s[0] == '"' {
			end := closingQuote(s)
			if end == -1 {
				return nil, false
			}
			tokens = append(tokens, unquotePath(s[:end+1]))
			s = s[end+1:]
			continue
		}
		end := strings.IndexByte(s, ' ')
		if end == -1 {
			end = len(s)
		}
		tokens = append(tokens, s[:end])
		s = s[end:]
	}
	return tokens, true
}

func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
