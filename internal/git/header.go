package git

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrCommandFailed is returned when git exits non-zero or cannot be started.
	ErrCommandFailed = errors.New("git command failed")
	// ErrEmptyOutput is returned when git succeeds but prints nothing.
	ErrEmptyOutput = errors.New("git command produced no output")
	// ErrHeaderParse is returned when a commit header lacks the expected fields.
	ErrHeaderParse = errors.New("malformed commit header")
)

const (
	headerFieldSep = "\x00"
	headerFields   = 4

	// TimeLayout is the layout of CommitRecord.Time.
	TimeLayout = "2006-01-02 15:04:05"
)

// ShowFormat is the --pretty format whose output ParseHeader understands.
const ShowFormat = "format:%ct%x00%aN%x00%P%x00%s%x00"

// SplitHeader separates the header line from the rest of a commit's raw output.
func SplitHeader(raw string) (header, body string) {
	if idx := strings.IndexByte(raw, '\n'); idx != -1 {
		return raw[:idx], raw[idx+1:]
	}
	return raw, ""
}

// ParseHeader parses the NUL-delimited header line:
// epoch seconds, author, space-separated parents, subject.
func ParseHeader(line string) (CommitHeader, error) {
	fields := strings.Split(line, headerFieldSep)
	if len(fields) < headerFields {
		return CommitHeader{}, fmt.Errorf("%w: %d fields, expected %d", ErrHeaderParse, len(fields), headerFields)
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return CommitHeader{}, fmt.Errorf("%w: timestamp %q: %v", ErrHeaderParse, fields[0], err)
	}

	return CommitHeader{
		Timestamp: ts,
		Author:    fields[1],
		Parents:   strings.Fields(fields[2]),
		Subject:   fields[3],
	}, nil
}

// FormatTime renders a unix timestamp in loc using TimeLayout.
// A nil location means time.Local.
func FormatTime(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format(TimeLayout)
}
