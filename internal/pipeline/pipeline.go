// Package pipeline drives one movie through sampling, reduction and
// assembly, and writes the resulting art.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/grocky/movie-wall-art/internal/art"
	"github.com/grocky/movie-wall-art/internal/logger"
	"github.com/grocky/movie-wall-art/internal/sampler"
)

// ErrSourceOpen marks a movie that could not be opened. The run still
// writes an empty canvas.
var ErrSourceOpen = errors.New("pipeline: error opening video file")

// Opener opens a video source by path.
type Opener interface {
	Open(path string) (sampler.Source, error)
}

// ImageWriter persists the finished art.
type ImageWriter interface {
	Write(img image.Image, path string) error
}

// Observer watches the run without influencing it.
type Observer interface {
	// Start is called once sampling begins with the expected column count.
	Start(columns int)
	// Observe is called after every column is written.
	Observe(s sampler.Sample, canvas *art.Canvas)
	// Finish is called once sampling is over, before the art is written.
	Finish(canvas *art.Canvas)
}

// Config is one run.
type Config struct {
	MoviePath string
	ArtPath   string
	Width     int
	Height    int
	Style     art.Style
}

// Report summarises a run.
type Report struct {
	Canvas *art.Canvas
	// Total is the frame count the source reported.
	Total  int
	Stride int
	// Columns is the number of frames sampled.
	Columns int
	// Skipped counts sampled frames whose column could not be reduced.
	Skipped   int
	Exhausted bool
	OpenErr   error
	Elapsed   time.Duration
}

// Pipeline renders movies into art.
type Pipeline struct {
	cfg       Config
	opener    Opener
	writer    ImageWriter
	observers []Observer
	logger    *logger.Logger
}

// New wires a pipeline.
func New(cfg Config, opener Opener, writer ImageWriter, log *logger.Logger, observers ...Observer) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		opener:    opener,
		writer:    writer,
		observers: observers,
		logger:    log.With("movie", cfg.MoviePath, "style", string(cfg.Style)),
	}
}

// Run renders the movie and writes the art. Only a failed write is returned
// as an error; open and per-column failures end up in the report.
func (p *Pipeline) Run() (*Report, error) {
	report := p.Render()

	if err := p.writer.Write(report.Canvas.Image(), p.cfg.ArtPath); err != nil {
		p.logger.Error("Error writing art", "path", p.cfg.ArtPath, "error", err)
		return report, fmt.Errorf("write art %s: %w", p.cfg.ArtPath, err)
	}
	p.logger.Info("Art written",
		"path", p.cfg.ArtPath,
		"columns", report.Columns,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// Render samples the movie into a fresh canvas.
func (p *Pipeline) Render() *Report {
	start := time.Now()
	canvas := art.NewCanvas(p.cfg.Width, p.cfg.Height)
	report := &Report{Canvas: canvas}
	defer func() {
		report.Elapsed = time.Since(start)
		for _, o := range p.observers {
			o.Finish(canvas)
		}
	}()

	src, err := p.opener.Open(p.cfg.MoviePath)
	if err != nil {
		report.OpenErr = fmt.Errorf("%w: %v", ErrSourceOpen, err)
		p.logger.Error("Error opening video file", "error", err)
		return report
	}
	defer src.Close()

	reducer, styleErr := art.ReducerFor(p.cfg.Style)
	if styleErr != nil {
		p.logger.Warn("Unknown art style, columns will be left empty", "error", styleErr)
	}

	s := sampler.New(src, p.cfg.Width)
	report.Total = s.Total()
	report.Stride = s.Stride()
	width, height := src.Size()
	p.logger.Info("Start sampling frames",
		"frames", report.Total,
		"stride", report.Stride,
		"frame_width", width,
		"frame_height", height,
	)

	expected := report.Total
	if expected > p.cfg.Width {
		expected = p.cfg.Width
	}
	for _, o := range p.observers {
		o.Start(expected)
	}

	for {
		sample, ok := s.Next()
		if !ok {
			break
		}
		report.Columns++

		if err := p.writeColumn(canvas, reducer, styleErr, sample); err != nil {
			report.Skipped++
			p.logger.Warn("Column skipped", "column", sample.Column, "frame", sample.Index, "error", err)
		}
		for _, o := range p.observers {
			o.Observe(sample, canvas)
		}
	}

	report.Exhausted = s.Exhausted()
	if err := s.Err(); err != nil {
		p.logger.Warn("Sampling stopped early", "error", err)
	} else if report.Exhausted {
		p.logger.Info("Video stream complete", "frames", report.Columns)
	}
	return report
}

func (p *Pipeline) writeColumn(canvas *art.Canvas, reducer art.Reducer, styleErr error, sample sampler.Sample) error {
	if styleErr != nil {
		return styleErr
	}
	col, err := reducer.Reduce(sample.Frame, p.cfg.Height)
	if err != nil {
		return err
	}
	canvas.SetColumn(sample.Column, col)
	return nil
}
