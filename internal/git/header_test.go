package git

import (
	"errors"
	"testing"
	"time"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantAuthor  string
		wantParents int
		wantMerge   bool
		wantSubject string
	}{
		{name: "Root commit", line: "1700000000\x00Alice\x00\x00Initial\x00", wantAuthor: "Alice", wantParents: 0, wantSubject: "Initial"},
		{name: "Single parent", line: "1700000000\x00Bob Smith\x00aaa\x00Fix bug\x00", wantAuthor: "Bob Smith", wantParents: 1, wantSubject: "Fix bug"},
		{name: "Merge", line: "1700000000\x00Carol\x00aaa bbb\x00Merge branch 'x'\x00", wantAuthor: "Carol", wantParents: 2, wantMerge: true, wantSubject: "Merge branch 'x'"},
		{name: "Octopus merge", line: "1700000000\x00Dan\x00a b c\x00Octopus\x00", wantAuthor: "Dan", wantParents: 3, wantMerge: true, wantSubject: "Octopus"},
		{name: "No trailing separator", line: "1700000000\x00Eve\x00aaa\x00Subject", wantAuthor: "Eve", wantParents: 1, wantSubject: "Subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseHeader(tt.line)
			if err != nil {
				t.Fatalf("ParseHeader: %v", err)
			}
			if h.Timestamp != 1700000000 {
				t.Errorf("Timestamp = %d, want 1700000000", h.Timestamp)
			}
			if h.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", h.Author, tt.wantAuthor)
			}
			if len(h.Parents) != tt.wantParents {
				t.Errorf("Parents = %v, want %d entries", h.Parents, tt.wantParents)
			}
			if h.Merge() != tt.wantMerge {
				t.Errorf("Merge() = %v, want %v", h.Merge(), tt.wantMerge)
			}
			if h.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", h.Subject, tt.wantSubject)
			}
		})
	}
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "Empty", line: ""},
		{name: "Three fields", line: "1700000000\x00Alice\x00aaa"},
		{name: "Non numeric timestamp", line: "yesterday\x00Alice\x00aaa\x00Subject\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.line)
			if !errors.Is(err, ErrHeaderParse) {
				t.Fatalf("ParseHeader(%q) error = %v, want ErrHeaderParse", tt.line, err)
			}
		})
	}
}

func TestSplitHeader(t *testing.T) {
	header, body := SplitHeader("h\x00a\x00\x00s\x00\n:100644 100644 a b M\tx.go\n")
	if header != "h\x00a\x00\x00s\x00" {
		t.Errorf("header = %q", header)
	}
	if body != ":100644 100644 a b M\tx.go\n" {
		t.Errorf("body = %q", body)
	}

	header, body = SplitHeader("only-header")
	if header != "only-header" || body != "" {
		t.Errorf("SplitHeader(no newline) = (%q, %q)", header, body)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(0, time.UTC); got != "1970-01-01 00:00:00" {
		t.Errorf("FormatTime(0, UTC) = %q", got)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	if got := FormatTime(1700000000, tokyo); got != "2023-11-15 07:13:20" {
		t.Errorf("FormatTime(1700000000, JST) = %q", got)
	}

	want := time.Unix(1700000000, 0).In(time.Local).Format(TimeLayout)
	if got := FormatTime(1700000000, nil); got != want {
		t.Errorf("FormatTime(nil location) = %q, want %q", got, want)
	}
}
