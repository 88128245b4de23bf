// Package preview holds the optional observers of a run: a terminal
// progress bar and an HTTP endpoint serving the art in progress.
package preview

import (
	"io"

	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/sampler"
	"github.com/schollz/progressbar/v3"
)

// Progress draws one tick per written column.
type Progress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewProgress draws to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

func (p *Progress) Start(columns int) {
	p.bar = progressbar.NewOptions(columns,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)
}

func (p *Progress) Observe(sampler.Sample, *art.Canvas) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *Progress) Finish(*art.Canvas) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	io.WriteString(p.w, "\n")
}
