package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SummaryRow is one repository line of the end-of-run table.
type SummaryRow struct {
	Repository string
	Commits    int
	Records    int
	Dropped    int
	Elapsed    time.Duration
}

// PrintSummary renders the per-repository table followed by a totals line.
func PrintSummary(w io.Writer, rows []SummaryRow, written int, outputPath string) error {
	p := message.NewPrinter(language.English)
	bold := color.New(color.Bold)
	bold.Fprintln(w, "\nExtraction summary")

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Repository", "Commits", "Records", "Dropped", "Duration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft}
	})

	var data [][]string
	var dropped int
	for _, r := range rows {
		dropped += r.Dropped
		data = append(data, []string{
			r.Repository,
			p.Sprintf("%d", r.Commits),
			p.Sprintf("%d", r.Records),
			p.Sprintf("%d", r.Dropped),
			r.Elapsed.Round(time.Millisecond).String(),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	p.Fprintf(w, "Wrote %d records to %s", written, outputPath)
	if dropped > 0 {
		color.New(color.FgYellow).Fprint(w, p.Sprintf(" (%d commits dropped)", dropped))
	}
	fmt.Fprintln(w)
	return nil
}
