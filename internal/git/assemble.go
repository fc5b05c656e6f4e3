package git

import (
	"fmt"
	"log/slog"
	"time"
)

// ParseOptions controls how raw commit output becomes a CommitRecord.
type ParseOptions struct {
	Location *time.Location // defaults to time.Local
	Filter   *PathFilter
	Logger   *slog.Logger
}

func (o ParseOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

// ParseCommit turns the raw `git show` output of one commit into a record.
// It fails only when the header cannot be parsed; malformed change lines and
// unattributable diff sections are logged and skipped.
func ParseCommit(hash string, raw string, meta RepoMeta, opts ParseOptions) (*CommitRecord, error) {
	headerLine, body := SplitHeader(raw)
	header, err := ParseHeader(headerLine)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}

	log := opts.logger()

	set, skipped := ExtractChanges(body)
	if skipped > 0 {
		log.Debug("skipped unrecognized change lines", "commit", hash, "count", skipped)
	}

	report := AnalyzeDiff(body, set)
	for _, p := range report.Unmatched {
		log.Debug("diff section matches no file change", "commit", hash, "path", p)
	}
	for _, p := range report.Repeated {
		log.Debug("diff section for already analyzed file", "commit", hash, "path", p)
	}

	changes := opts.Filter.Apply(set.Changes())
	return Assemble(hash, meta, header, changes, opts.Location), nil
}

// Assemble builds the immutable record for one commit. Per-type file counts and
// line/hunk totals are sums over changes, which are kept in the given order.
func Assemble(hash string, meta RepoMeta, header CommitHeader, changes []FileChange, loc *time.Location) *CommitRecord {
	rec := &CommitRecord{
		Hash:        hash,
		Org:         meta.Org,
		Repo:        meta.Repo,
		Author:      header.Author,
		Time:        FormatTime(header.Timestamp, loc),
		Message:     header.Subject,
		Merge:       header.Merge(),
		FileChanges: make([]FileChange, len(changes)),
	}
	copy(rec.FileChanges, changes)

	for _, fc := range rec.FileChanges {
		switch fc.ChangeType {
		case ChangeTypeAdd:
			rec.FilesAdded++
		case ChangeTypeDelete:
			rec.FilesDeleted++
		case ChangeTypeRename:
			rec.FilesRenamed++
		case ChangeTypeModify:
			rec.FilesModified++
		}
		rec.LinesAdded += fc.LinesAdded
		rec.LinesDeleted += fc.LinesDeleted
		rec.HunksAdded += fc.HunksAdded
		rec.HunksRemoved += fc.HunksRemoved
		rec.HunksChanged += fc.HunksChanged
	}

	return rec
}
