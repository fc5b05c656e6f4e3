package output

import (
	"io"
	"os"
)

// nopCloser keeps stdout open when the writer is closed.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput creates the corpus file at outputPath. An empty path or "-" selects stdout.
func OpenOutput(outputPath string) (io.WriteCloser, error) {
	if outputPath == "" || outputPath == "-" {
		return nopCloser{os.Stdout}, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, err
	}
	return file, nil
}
