package extract

import (
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/masmgr/gitcorpus/internal/git"
)

const (
	// DefaultWorkerMultiplier scales the worker count with the number of CPUs.
	// Workers mostly wait on git subprocesses, so the pool is oversubscribed.
	DefaultWorkerMultiplier = 10
	// DefaultQueueSize bounds the number of records waiting for the writer.
	DefaultQueueSize = 4096
)

// Options configures extraction.
type Options struct {
	Workers   int // 0 means DefaultWorkerMultiplier * NumCPU
	QueueSize int // 0 means DefaultQueueSize

	Location *time.Location
	Filter   *git.PathFilter
	Logger   *slog.Logger

	// Progress enables a per-repository progress bar on stderr.
	Progress bool
	// Status receives human-readable status lines; nil discards them.
	Status io.Writer
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return DefaultWorkerMultiplier * runtime.NumCPU()
}

func (o Options) queueSize() int {
	if o.QueueSize > 0 {
		return o.QueueSize
	}
	return DefaultQueueSize
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) status() io.Writer {
	if o.Status != nil {
		return o.Status
	}
	return io.Discard
}
