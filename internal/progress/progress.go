// Package progress reports file-generation progress to the terminal using
// a schollz/progressbar/v3 bar, disabled automatically when stderr is not
// a TTY (piped output, CI). It mirrors the shape of internal/logutil's
// ProgressOutput interface, generalized from "models processed" to "files
// generated".
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter reports the progress of one Orchestrator.Run call.
type Reporter interface {
	Start(total int)
	FileCompleted(path string)
	FileFailed(index int, cause error)
	Finish()
}

// Config controls whether and where a Reporter renders.
type Config struct {
	Enabled bool
	Writer  io.Writer
	NoColor bool
}

// NewConfig derives a Config from the interactive flag and TTY detection;
// progress is disabled outright when quiet is requested or stderr is not a
// terminal.
func NewConfig(quiet bool) Config {
	enabled := !quiet && isatty.IsTerminal(os.Stderr.Fd())
	return Config{Enabled: enabled, Writer: os.Stderr}
}

// barReporter renders a determinate progress bar via progressbar/v3.
type barReporter struct {
	cfg Config
	bar *progressbar.ProgressBar
}

// New returns a Reporter for cfg. When cfg.Enabled is false, the returned
// Reporter is a no-op so callers never need a nil check.
func New(cfg Config) Reporter {
	if !cfg.Enabled {
		return noopReporter{}
	}
	return &barReporter{cfg: cfg}
}

func (r *barReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("generating files"),
		progressbar.OptionSetWriter(r.cfg.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(!r.cfg.NoColor),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *barReporter) FileCompleted(string) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *barReporter) FileFailed(int, error) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *barReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(r.cfg.Writer)
	}
}

// noopReporter discards all progress events; used when progress is disabled.
type noopReporter struct{}

func (noopReporter) Start(int)            {}
func (noopReporter) FileCompleted(string)  {}
func (noopReporter) FileFailed(int, error) {}
func (noopReporter) Finish()               {}
