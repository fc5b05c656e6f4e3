package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Tracker shows per-repository commit progress. A disabled tracker does nothing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	out   io.Writer
	label string
}

// NewTracker creates a progress bar on stderr with the given label and total count.
func NewTracker(label string, total int, enabled bool) *Tracker {
	return newTracker(os.Stderr, label, total, enabled)
}

func newTracker(out io.Writer, label string, total int, enabled bool) *Tracker {
	t := &Tracker{out: out, label: label}
	if !enabled {
		return t
	}
	t.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return t
}

// Tick increments the progress by 1. Safe for concurrent use.
func (t *Tracker) Tick() {
	if t == nil || t.bar == nil {
		return
	}
	_ = t.bar.Add(1)
}

// FinishSuccess clears the bar.
func (t *Tracker) FinishSuccess() {
	if t == nil || t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}

// FinishError clears the bar and prints an error message.
func (t *Tracker) FinishError(err error) {
	if t == nil {
		return
	}
	if t.bar != nil {
		_ = t.bar.Finish()
		_ = t.bar.Clear()
	}
	fmt.Fprintf(t.out, "  %s error: %v\n", t.label, err)
}
