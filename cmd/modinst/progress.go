package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/project-echo/mod-installer/internal/terminal"
)

const (
	progressFallbackWidth = 80
	progressMaxWidth      = 60
	progressMinWidth      = 10
	// progressMargin leaves room for the percentage printed after the bar.
	progressMargin = 8
)

// downloadProgress redraws a single-line progress bar while an archive downloads.
// A nil *downloadProgress draws nothing.
type downloadProgress struct {
	out   io.Writer
	bar   progress.Model
	drawn bool
}

func newDownloadProgress(out io.Writer) *downloadProgress {
	return &downloadProgress{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth(out))),
	}
}

// progressWidth sizes the bar to the terminal behind out.
func progressWidth(out io.Writer) int {
	width := terminal.Width(out, progressFallbackWidth) - progressMargin
	return min(max(width, progressMinWidth), progressMaxWidth)
}

func (p *downloadProgress) update(complete int64, total int64) {
	if p == nil || total <= 0 {
		return
	}
	percent := float64(complete) / float64(total)
	_, _ = fmt.Fprintf(p.out, "\r%s", p.bar.ViewAs(min(percent, 1)))
	p.drawn = true
}

// finish ends the bar's line so later output starts on a fresh one.
func (p *downloadProgress) finish() {
	if p == nil || !p.drawn {
		return
	}
	_, _ = fmt.Fprintln(p.out)
	p.drawn = false
}
