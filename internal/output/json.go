package output

import (
	"encoding/json"
	"io"

	"github.com/masmgr/gitcorpus/internal/git"
)

// WriteRecordJSON writes a single record as indented JSON.
func WriteRecordJSON(w io.Writer, rec *git.CommitRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rec)
}
