package cmd

import (
	"io"

	"github.com/masmgr/gitcorpus/internal/extract"
	"github.com/masmgr/gitcorpus/internal/output"
)

func printSummary(w io.Writer, summary *extract.Summary, outputPath string) error {
	rows := make([]output.SummaryRow, 0, len(summary.Repos))
	for _, r := range summary.Repos {
		rows = append(rows, output.SummaryRow{
			Repository: r.Repository,
			Commits:    r.Commits,
			Records:    r.Records,
			Dropped:    r.Dropped,
			Elapsed:    r.Elapsed,
		})
	}
	return output.PrintSummary(w, rows, summary.Written, outputPath)
}
