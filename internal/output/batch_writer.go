package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/gzip"

	"github.com/masmgr/gitcorpus/internal/git"
)

// DefaultBatchSize is the number of records buffered between flushes.
const DefaultBatchSize = 10000

// BatchWriterOptions configures a BatchWriter.
type BatchWriterOptions struct {
	BatchSize        int
	CompressionLevel int // gzip level; 0 selects gzip.DefaultCompression
	// OnFlush is called after every flush with the cumulative record count.
	OnFlush func(total int)
	Logger  *slog.Logger
}

// syncer is implemented by *os.File.
type syncer interface {
	Sync() error
}

// BatchWriter is the single consumer of completed records. It buffers records
// and writes them as gzip-compressed JSON lines, one batch at a time. After a
// batch the gzip stream is flushed, so a crash loses at most the records of the
// batch being built.
type BatchWriter struct {
	dst     io.Writer
	gz      *gzip.Writer
	enc     *json.Encoder
	opts    BatchWriterOptions
	buf     []*git.CommitRecord
	total   int
	closed  bool
	failure error
}

// NewBatchWriter wraps dst in a gzip stream.
func NewBatchWriter(dst io.Writer, opts BatchWriterOptions) (*BatchWriter, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	level := opts.CompressionLevel
	if level == 0 {
		level = gzip.DefaultCompression
	}

	gz, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}

	enc := json.NewEncoder(gz)
	enc.SetEscapeHTML(false)

	return &BatchWriter{
		dst:  dst,
		gz:   gz,
		enc:  enc,
		opts: opts,
		buf:  make([]*git.CommitRecord, 0, min(opts.BatchSize, 1024)),
	}, nil
}

// Add buffers rec and flushes when the batch is full.
func (w *BatchWriter) Add(rec *git.CommitRecord) error {
	if w.failure != nil {
		return w.failure
	}
	w.buf = append(w.buf, rec)
	if len(w.buf) >= w.opts.BatchSize {
		return w.Flush()
	}
	return nil
}

// Flush writes every buffered record and pushes the compressed bytes to the destination.
func (w *BatchWriter) Flush() error {
	if w.failure != nil {
		return w.failure
	}
	if len(w.buf) == 0 {
		return nil
	}

	for _, rec := range w.buf {
		if err := w.enc.Encode(rec); err != nil {
			return w.fail(fmt.Errorf("write record %s: %w", rec.Hash, err))
		}
	}
	if err := w.gz.Flush(); err != nil {
		return w.fail(fmt.Errorf("flush gzip stream: %w", err))
	}
	if s, ok := w.dst.(syncer); ok {
		if err := s.Sync(); err != nil {
			return w.fail(fmt.Errorf("sync output: %w", err))
		}
	}

	w.total += len(w.buf)
	clear(w.buf)
	w.buf = w.buf[:0]

	if w.opts.OnFlush != nil {
		w.opts.OnFlush(w.total)
	}
	return nil
}

// Consume drains records until the channel is closed, then flushes the
// remainder and closes the gzip stream. The first write error is returned; the
// caller is expected to stop producers when that happens.
func (w *BatchWriter) Consume(records <-chan *git.CommitRecord) error {
	for rec := range records {
		if err := w.Add(rec); err != nil {
			return err
		}
	}
	return w.Close()
}

// Close flushes buffered records and terminates the gzip stream.
// It does not close the destination.
func (w *BatchWriter) Close() error {
	if w.closed {
		return w.failure
	}
	w.closed = true
	if err := w.Flush(); err != nil {
		return err
	}
	if err := w.gz.Close(); err != nil {
		return w.fail(fmt.Errorf("close gzip stream: %w", err))
	}
	if w.opts.Logger != nil {
		w.opts.Logger.Debug("output stream closed", "records", w.total)
	}
	return nil
}

// Total returns the number of records written so far.
func (w *BatchWriter) Total() int {
	return w.total
}

// Pending returns the number of buffered, unwritten records.
func (w *BatchWriter) Pending() int {
	return len(w.buf)
}

func (w *BatchWriter) fail(err error) error {
	w.failure = err
	return err
}
