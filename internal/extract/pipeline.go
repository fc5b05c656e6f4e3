package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/masmgr/gitcorpus/internal/git"
	"github.com/masmgr/gitcorpus/internal/repo"
)

// Sink is the single consumer of the record queue. Consume returns once the
// queue is closed and everything received has been written, or on the first
// write error.
type Sink interface {
	Consume(records <-chan *git.CommitRecord) error
	Total() int
}

// Summary is the outcome of a pipeline run.
type Summary struct {
	Repos       []RepoStats
	Written     int
	Interrupted bool
}

// Dropped returns the number of dropped commits across repositories.
func (s *Summary) Dropped() int {
	n := 0
	for _, r := range s.Repos {
		n += r.Dropped
	}
	return n
}

// Run extracts repos one after another into sink. Records flow through a
// bounded queue; closing it tells the sink the stream is complete. A sink
// failure stops extraction and is returned. Cancellation of ctx stops
// extraction, but records already queued are still written.
func Run(ctx context.Context, source git.CommitSource, repos []repo.Repository, sink Sink, opts Options) (*Summary, error) {
	log := opts.logger()
	status := opts.status()

	extractCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	queue := make(chan *git.CommitRecord, opts.queueSize())
	writerDone := make(chan error, 1)
	go func() {
		err := sink.Consume(queue)
		if err != nil {
			cancel(err)
		}
		writerDone <- err
	}()

	scheduler := NewScheduler(source, opts)
	summary := &Summary{}

	for i, r := range repos {
		if extractCtx.Err() != nil {
			break
		}
		color.New(color.FgGreen).Fprintf(status, "[%d/%d] Processing %s (%s)\n", i+1, len(repos), r.Name(), r.Path)

		stats, err := scheduler.ExtractRepo(extractCtx, r, queue)
		summary.Repos = append(summary.Repos, stats)
		if err != nil {
			if extractCtx.Err() != nil {
				break
			}
			color.New(color.FgYellow).Fprintf(status, "Warning: skipping %s: %v\n", r.Path, err)
			log.Warn("repository skipped", "repo", r.Name(), "error", err)
		}
	}

	close(queue)
	writeErr := <-writerDone
	summary.Written = sink.Total()

	if writeErr != nil {
		return summary, fmt.Errorf("write output: %w", writeErr)
	}
	if err := ctx.Err(); err != nil {
		summary.Interrupted = true
		if !errors.Is(err, context.Canceled) {
			return summary, err
		}
	}
	return summary, nil
}
