package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/masmgr/gitcorpus/internal/git"
	"github.com/masmgr/gitcorpus/internal/progress"
	"github.com/masmgr/gitcorpus/internal/repo"
)

// RepoStats describes the extraction of one repository.
type RepoStats struct {
	Repository string
	Path       string
	Commits    int // hashes listed
	Records    int // records handed to the queue
	Dropped    int // commits that produced no record
	Elapsed    time.Duration
	Err        error // set when the repository could not be processed
}

// Scheduler fans the commits of one repository out to a bounded worker pool.
type Scheduler struct {
	source git.CommitSource
	opts   Options
	log    *slog.Logger
}

// NewScheduler creates a scheduler reading commits from source.
func NewScheduler(source git.CommitSource, opts Options) *Scheduler {
	return &Scheduler{source: source, opts: opts, log: opts.logger()}
}

// ExtractRepo lists every commit of r and sends one record per successfully
// parsed commit to out, in completion order. Sends block while out is full.
// A failed commit is logged and dropped; only listing failures and context
// cancellation are returned as errors.
func (s *Scheduler) ExtractRepo(ctx context.Context, r repo.Repository, out chan<- *git.CommitRecord) (RepoStats, error) {
	start := time.Now()
	stats := RepoStats{Repository: r.Name(), Path: r.Path}

	hashes, err := s.source.ListCommits(ctx, r.Path)
	if err != nil {
		stats.Err = err
		stats.Elapsed = time.Since(start)
		return stats, fmt.Errorf("list commits of %s: %w", r.Path, err)
	}
	stats.Commits = len(hashes)

	parseOpts := git.ParseOptions{
		Location: s.opts.Location,
		Filter:   s.opts.Filter,
		Logger:   s.log,
	}

	tracker := progress.NewTracker(r.Name(), len(hashes), s.opts.Progress)

	var records, dropped atomic.Int64
	p := pool.New().WithMaxGoroutines(s.opts.workers()).WithContext(ctx)
	for _, hash := range hashes {
		p.Go(func(ctx context.Context) error {
			defer tracker.Tick()

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := s.extractCommit(ctx, r, hash, parseOpts)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				dropped.Add(1)
				s.log.Warn("dropping commit", "repo", r.Name(), "commit", hash, "error", err)
				return nil
			}

			select {
			case out <- rec:
				records.Add(1)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	waitErr := p.Wait()

	stats.Records = int(records.Load())
	stats.Dropped = int(dropped.Load())
	stats.Elapsed = time.Since(start)

	if ctx.Err() != nil {
		tracker.FinishError(ctx.Err())
		stats.Err = ctx.Err()
		return stats, ctx.Err()
	}
	tracker.FinishSuccess()

	if waitErr != nil {
		stats.Err = waitErr
		return stats, waitErr
	}

	s.log.Debug("repository extracted",
		"repo", r.Name(),
		"commits", stats.Commits,
		"records", stats.Records,
		"dropped", stats.Dropped,
		"elapsed", stats.Elapsed)
	return stats, nil
}

func (s *Scheduler) extractCommit(ctx context.Context, r repo.Repository, hash string, opts git.ParseOptions) (*git.CommitRecord, error) {
	raw, err := s.source.ShowCommit(ctx, r.Path, hash)
	if err != nil {
		return nil, err
	}
	return git.ParseCommit(hash, raw, r.Meta, opts)
}
