package git

import "encoding/json"

// ChangeType represents how a file changed within a commit.
type ChangeType int

const (
	ChangeTypeModify ChangeType = iota
	ChangeTypeAdd
	ChangeTypeDelete
	ChangeTypeRename
	ChangeTypeCopy
	ChangeTypeType
)

// String returns the name used in the output corpus.
func (t ChangeType) String() string {
	switch t {
	case ChangeTypeAdd:
		return "Add"
	case ChangeTypeDelete:
		return "Delete"
	case ChangeTypeModify:
		return "Modify"
	case ChangeTypeRename:
		return "Rename"
	case ChangeTypeCopy:
		return "Copy"
	case ChangeTypeType:
		return "Type"
	default:
		return "Modify"
	}
}

// MarshalJSON encodes the change type by name.
func (t ChangeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a change type name. Unknown names decode as Modify.
func (t *ChangeType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = changeTypeFromName(s)
	return nil
}

func changeTypeFromName(s string) ChangeType {
	switch s {
	case "Add":
		return ChangeTypeAdd
	case "Delete":
		return ChangeTypeDelete
	case "Rename":
		return ChangeTypeRename
	case "Copy":
		return ChangeTypeCopy
	case "Type":
		return ChangeTypeType
	default:
		return ChangeTypeModify
	}
}

// changeTypeFromStatus maps a git --raw status letter to a ChangeType.
func changeTypeFromStatus(status byte) ChangeType {
	switch status {
	case 'A':
		return ChangeTypeAdd
	case 'D':
		return ChangeTypeDelete
	case 'R':
		return ChangeTypeRename
	case 'C':
		return ChangeTypeCopy
	case 'T':
		return ChangeTypeType
	default:
		return ChangeTypeModify
	}
}

// FileChange represents one file's modification within a commit.
type FileChange struct {
	ChangeType   ChangeType `json:"change_type"`
	Path         string     `json:"path"`
	OldPath      *string    `json:"old_path"` // set only for renames and copies
	Extension    string     `json:"file_extension"`
	LinesAdded   int        `json:"lines_added"`
	LinesDeleted int        `json:"lines_deleted"`
	HunksAdded   int        `json:"hunks_added"`
	HunksRemoved int        `json:"hunks_removed"`
	HunksChanged int        `json:"hunks_changed"`
}

// OldPathOrEmpty returns the previous path, or "" when the file kept its path.
func (f FileChange) OldPathOrEmpty() string {
	if f.OldPath == nil {
		return ""
	}
	return *f.OldPath
}

// Churn returns total lines changed (added + deleted).
func (f FileChange) Churn() int {
	return f.LinesAdded + f.LinesDeleted
}

// CommitHeader holds the fixed fields printed ahead of a commit's change listing.
type CommitHeader struct {
	Timestamp int64
	Author    string
	Parents   []string
	Subject   string
}

// Merge reports whether the commit has more than one parent.
func (h CommitHeader) Merge() bool {
	return len(h.Parents) > 1
}

// RepoMeta identifies the repository a record was extracted from.
type RepoMeta struct {
	Path string
	Org  string
	Repo string
}

// CommitRecord is the immutable per-commit output unit.
type CommitRecord struct {
	Hash          string       `json:"hash"`
	Org           string       `json:"org"`
	Repo          string       `json:"repo"`
	Author        string       `json:"author"`
	Time          string       `json:"time"`
	Message       string       `json:"message"`
	Merge         bool         `json:"merge"`
	FilesAdded    int          `json:"files_added"`
	FilesDeleted  int          `json:"files_deleted"`
	FilesRenamed  int          `json:"files_renamed"`
	FilesModified int          `json:"files_modified"`
	LinesAdded    int          `json:"lines_added"`
	LinesDeleted  int          `json:"lines_deleted"`
	HunksAdded    int          `json:"hunks_added"`
	HunksRemoved  int          `json:"hunks_removed"`
	HunksChanged  int          `json:"hunks_changed"`
	FileChanges   []FileChange `json:"file_changes"`
}
